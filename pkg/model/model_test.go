package model

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/data"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/pipeline"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/schema"
)

var _ Classifier = (*LogisticRegression)(nil)

// separable returns one-feature data labelled Good exactly when x > 0.
func separable() (*mat.Dense, []float64) {
	xs := []float64{-3, -2.5, -2, -1.5, -1, -0.5, 0.5, 1, 1.5, 2, 2.5, 3}
	y := make([]float64, len(xs))
	for i, x := range xs {
		if x > 0 {
			y[i] = 1
		}
	}
	return mat.NewDense(len(xs), 1, xs), y
}

func TestSigmoid(t *testing.T) {
	assert.Equal(t, 0.5, Sigmoid(0))
	assert.InDelta(t, 1.0, Sigmoid(800), 1e-12)
	assert.InDelta(t, 0.0, Sigmoid(-800), 1e-12)
	assert.False(t, math.IsNaN(Sigmoid(-800)))
	assert.InDelta(t, 1.0, Sigmoid(2)+Sigmoid(-2), 1e-15)
}

func TestLogisticRegression_Fit(t *testing.T) {
	X, y := separable()
	m := NewLogisticRegression(1, WithEpochs(300), WithBatchSize(4), WithLearningRate(0.5), WithSeed(7))
	require.NoError(t, m.Fit(context.Background(), X, y))

	pred, err := m.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, 1.0, Accuracy(Labels(y), pred))
	assert.Greater(t, m.W[0], 0.0)

	require.Len(t, m.History, 300)
	assert.Less(t, m.History[299], m.History[0])
}

func TestLogisticRegression_Reproducible(t *testing.T) {
	X, y := separable()
	a := NewLogisticRegression(1, WithEpochs(20), WithBatchSize(5), WithSeed(3))
	b := NewLogisticRegression(1, WithEpochs(20), WithBatchSize(5), WithSeed(3))
	require.NoError(t, a.Fit(context.Background(), X, y))
	require.NoError(t, b.Fit(context.Background(), X, y))
	assert.Equal(t, a.W, b.W)
	assert.Equal(t, a.B, b.B)
}

func TestPredictProba_Valid(t *testing.T) {
	m := NewLogisticRegression(3)
	m.W = []float64{0.4, -1.2, 2.5}
	m.B = -0.3
	X := mat.NewDense(4, 3, []float64{
		0, 0, 0,
		1, 2, 3,
		-5, 4, -2,
		100, -100, 100,
	})

	proba, err := m.PredictProba(X)
	require.NoError(t, err)
	require.Len(t, proba, 4)
	for i, p := range proba {
		assert.GreaterOrEqual(t, p[Bad], 0.0, "row %d", i)
		assert.LessOrEqual(t, p[Good], 1.0, "row %d", i)
		assert.InDelta(t, 1.0, p[Bad]+p[Good], 1e-6, "row %d", i)
	}
}

func TestPredict_Threshold(t *testing.T) {
	m := NewLogisticRegression(1, WithThreshold(0.7))
	m.W = []float64{1}
	X := mat.NewDense(3, 1, []float64{0, 0.5, 1})

	pred, err := m.Predict(X)
	require.NoError(t, err)
	// Sigmoid(0.5) is about 0.62 and Sigmoid(1) about 0.73.
	assert.Equal(t, []int{Bad, Bad, Good}, pred)
}

func TestLogisticRegression_WidthMismatch(t *testing.T) {
	m := NewLogisticRegression(19)
	X := mat.NewDense(1, 18, nil)

	_, err := m.PredictProba(X)
	assert.ErrorIs(t, err, ErrModelArtifact)
	_, err = m.Predict(X)
	assert.ErrorIs(t, err, ErrModelArtifact)

	assert.Error(t, m.Fit(context.Background(), X, []float64{1}))
}

func TestLogisticRegression_FitCancelled(t *testing.T) {
	X, y := separable()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewLogisticRegression(1)
	assert.ErrorIs(t, m.Fit(ctx, X, y), context.Canceled)
}

func TestMetrics(t *testing.T) {
	yTrue := []int{1, 1, 0, 0, 1}
	yPred := []int{1, 0, 0, 1, 1}

	assert.InDelta(t, 0.6, Accuracy(yTrue, yPred), 1e-12)
	prec, rec, f1 := PrecisionRecallF1(yTrue, yPred)
	assert.InDelta(t, 2.0/3, prec, 1e-12)
	assert.InDelta(t, 2.0/3, rec, 1e-12)
	assert.InDelta(t, 2.0/3, f1, 1e-12)

	proba := [][2]float64{{0.5, 0.5}, {0.5, 0.5}}
	assert.InDelta(t, math.Ln2, LogLoss([]int{0, 1}, proba), 1e-12)

	assert.Equal(t, []int{0, 1, 1}, Labels([]float64{0, 1, 0.9}))
	assert.Equal(t, []int{Bad, Good, Good}, BinaryPredFromProba([]float64{0.2, 0.5, 0.9}, 0.5))
	assert.Equal(t, 0.0, Accuracy(nil, nil))
}

func trainedArtifact(t *testing.T) (*Artifact, *pipeline.ColumnTransformer, *LogisticRegression) {
	t.Helper()
	purposes := []string{"radio/TV", "furniture/equipment", "car", "business", "domestic appliances", "repairs", "vacation/others", "education"}
	sexes := []string{"female", "male"}
	housings := []string{"own", "free", "rent"}
	savings := []string{"little", "moderate", "quite rich", "rich"}
	checkings := []string{"little", "moderate", "rich"}

	var recs []data.Record
	var y []float64
	for i, p := range purposes {
		recs = append(recs, data.Record{
			schema.Age:             strconv.Itoa(22 + 4*i),
			schema.Sex:             sexes[i%2],
			schema.Job:             strconv.Itoa(i % 4),
			schema.Housing:         housings[i%3],
			schema.SavingAccounts:  savings[i%4],
			schema.CheckingAccount: checkings[i%3],
			schema.CreditAmount:    strconv.Itoa(1500 + 900*i),
			schema.Duration:        strconv.Itoa(6 + 5*i),
			schema.Purpose:         p,
		})
		y = append(y, float64(i%2))
	}
	tbl, err := data.FromRecords(recs...)
	require.NoError(t, err)

	ct := pipeline.Build()
	X, err := ct.FitTransform(tbl)
	require.NoError(t, err)

	m := NewLogisticRegression(ct.Width(), WithEpochs(50), WithBatchSize(4))
	require.NoError(t, m.Fit(context.Background(), X, y))

	a, err := NewArtifact(ct, m, map[string]float64{"accuracy": 1})
	require.NoError(t, err)
	return a, ct, m
}

func TestArtifact_SaveLoad(t *testing.T) {
	a, ct, m := trainedArtifact(t)
	path := filepath.Join(t.TempDir(), "models", "credit_risk.json")
	require.NoError(t, SaveArtifact(path, a))

	ct2, m2, err := LoadArtifact(path)
	require.NoError(t, err)
	assert.Equal(t, ct.FeatureNames(), ct2.FeatureNames())
	assert.Equal(t, m.W, m2.W)
	assert.Equal(t, m.B, m2.B)
	assert.Equal(t, m.Threshold, m2.Threshold)

	rec := data.Record{
		schema.Age: "35", schema.Sex: "male", schema.Job: "2", schema.Housing: "own",
		schema.SavingAccounts: "moderate", schema.CheckingAccount: "moderate",
		schema.CreditAmount: "4000", schema.Duration: "24", schema.Purpose: "car",
	}
	r1, err := ct.TransformRecord(rec)
	require.NoError(t, err)
	r2, err := ct2.TransformRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	p1, err := m.PredictProba(mat.NewDense(1, len(r1), r1))
	require.NoError(t, err)
	p2, err := m2.PredictProba(mat.NewDense(1, len(r2), r2))
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}

func TestArtifact_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Artifact)
	}{
		{"coefficient count", func(a *Artifact) { a.Coefficients = a.Coefficients[:len(a.Coefficients)-1] }},
		{"model type", func(a *Artifact) { a.ModelType = "random_forest" }},
		{"version", func(a *Artifact) { a.Version = "0" }},
		{"threshold", func(a *Artifact) { a.Threshold = 1 }},
		{"feature layout", func(a *Artifact) { a.Features[0] = "Credit amount" }},
		{"transformer columns", func(a *Artifact) { a.Transformer.Ordinal = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := trainedArtifact(t)
			tt.mutate(a)
			_, _, err := a.Open()
			assert.ErrorIs(t, err, ErrModelArtifact)
		})
	}
}

func TestLoadArtifact_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := LoadArtifact(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, ErrModelArtifact)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{not json"), 0o644))
	_, _, err = LoadArtifact(garbage)
	assert.ErrorIs(t, err, ErrModelArtifact)
}

func TestArtifact_JSONFields(t *testing.T) {
	a, _, _ := trainedArtifact(t)
	b, err := json.Marshal(a)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	for _, k := range []string{"model_type", "version", "features", "transformer", "coefficients", "intercept", "threshold"} {
		assert.Contains(t, raw, k)
	}
}
