package model

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/data"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/optim"
)

// LogisticRegression is a binary classifier with a sigmoid link, trained by
// mini-batch gradient descent on binary cross-entropy.
type LogisticRegression struct {
	W         []float64 // weights
	B         float64   // bias
	Lr        float64
	Epochs    int
	BatchSize int
	L2        float64 // weight decay
	Threshold float64 // p(Good) at or above which Predict returns Good
	Seed      int64

	// History holds the mean training loss of each epoch of the last Fit.
	History []float64
}

// Option functional config
type Option func(*LogisticRegression)

func WithLearningRate(lr float64) Option { return func(m *LogisticRegression) { m.Lr = lr } }
func WithEpochs(n int) Option            { return func(m *LogisticRegression) { m.Epochs = n } }
func WithBatchSize(n int) Option         { return func(m *LogisticRegression) { m.BatchSize = n } }
func WithL2(l float64) Option            { return func(m *LogisticRegression) { m.L2 = l } }
func WithThreshold(t float64) Option     { return func(m *LogisticRegression) { m.Threshold = t } }
func WithSeed(seed int64) Option         { return func(m *LogisticRegression) { m.Seed = seed } }

// NewLogisticRegression returns a model with zero weights and default hyperparameters.
func NewLogisticRegression(nFeatures int, opts ...Option) *LogisticRegression {
	m := &LogisticRegression{
		W:         make([]float64, nFeatures),
		Lr:        0.1,
		Epochs:    200,
		BatchSize: 32,
		Threshold: 0.5,
		Seed:      1,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *LogisticRegression) NumFeatures() int { return len(m.W) }

func (m *LogisticRegression) checkWidth(X mat.Matrix) error {
	if _, c := X.Dims(); c != len(m.W) {
		return fmt.Errorf("%w: input has %d features, model expects %d", ErrModelArtifact, c, len(m.W))
	}
	return nil
}

// decision returns X·W + B for every row.
func (m *LogisticRegression) decision(X mat.Matrix) *mat.VecDense {
	r, _ := X.Dims()
	z := mat.NewVecDense(r, nil)
	z.MulVec(X, mat.NewVecDense(len(m.W), m.W))
	for i := 0; i < r; i++ {
		z.SetVec(i, z.AtVec(i)+m.B)
	}
	return z
}

// PredictProba returns [p(Bad), p(Good)] for each row of X.
func (m *LogisticRegression) PredictProba(X mat.Matrix) ([][2]float64, error) {
	if err := m.checkWidth(X); err != nil {
		return nil, err
	}
	z := m.decision(X)
	out := make([][2]float64, z.Len())
	for i := range out {
		p := Sigmoid(z.AtVec(i))
		out[i] = [2]float64{1 - p, p}
	}
	return out, nil
}

// Predict returns Good when p(Good) reaches the threshold, Bad otherwise.
func (m *LogisticRegression) Predict(X mat.Matrix) ([]int, error) {
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	good := make([]float64, len(proba))
	for i, p := range proba {
		good[i] = p[Good]
	}
	return BinaryPredFromProba(good, m.Threshold), nil
}

// Fit trains the model on X and labels y (0 or 1). Each epoch visits the
// rows in a fresh permutation drawn from the seeded source, so training is
// reproducible.
func (m *LogisticRegression) Fit(ctx context.Context, X *mat.Dense, y []float64) error {
	n, c := X.Dims()
	if n != len(y) {
		return fmt.Errorf("logistic: %d rows, %d labels", n, len(y))
	}
	if c != len(m.W) {
		return fmt.Errorf("logistic: %d features, model has %d weights", c, len(m.W))
	}
	if m.BatchSize <= 0 {
		return fmt.Errorf("logistic: batch size %d", m.BatchSize)
	}

	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = X.RawRowView(i)
	}

	opt := optim.NewSGD(m.Lr, m.L2)
	rng := rand.New(rand.NewSource(m.Seed))
	gW := make([]float64, len(m.W))
	m.History = make([]float64, 0, m.Epochs)

	for ep := 0; ep < m.Epochs; ep++ {
		total, seen := 0.0, 0
		samples := data.StreamSamples(ctx, rows, y, rng.Perm(n))
		for batch := range data.Batcher(ctx, samples, m.BatchSize) {
			p := make([]float64, len(batch.X))
			for i, row := range batch.X {
				p[i] = Sigmoid(floatsDot(m.W, row) + m.B)
			}
			loss, dy := BCE(batch.Y, p)
			total += loss * float64(len(batch.Y))
			seen += len(batch.Y)

			clear(gW)
			gb := 0.0
			for i, row := range batch.X {
				for j, xij := range row {
					gW[j] += dy[i] * xij
				}
				gb += dy[i]
			}
			opt.Step(m.W, &m.B, gW, gb)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		m.History = append(m.History, total/float64(seen))
	}
	return nil
}

func floatsDot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// Sigmoid is the logistic function, stable for large |x|.
func Sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

// BCE returns the mean binary cross-entropy and its gradient with respect
// to the logits.
func BCE(yTrue, yPred []float64) (float64, []float64) {
	n := len(yTrue)
	s := 0.0
	grad := make([]float64, n)
	for i := 0; i < n; i++ {
		p := math.Min(math.Max(yPred[i], 1e-12), 1-1e-12)
		y := yTrue[i]
		s += -(y*math.Log(p) + (1-y)*math.Log(1-p))
		grad[i] = (p - y) / float64(n)
	}
	return s / float64(n), grad
}
