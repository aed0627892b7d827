package main

import (
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func writeDataset(t *testing.T, n int) string {
	t.Helper()
	purposes := []string{"radio/TV", "furniture/equipment", "car", "business", "domestic appliances", "repairs", "vacation/others", "education"}
	path := filepath.Join(t.TempDir(), "german_credit_data.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write([]string{"", "Age", "Sex", "Job", "Housing", "Saving accounts", "Checking account", "Credit amount", "Duration", "Purpose", "Risk"}))
	for i := 0; i < n; i++ {
		label := "good"
		if i%3 == 0 {
			label = "bad"
		}
		require.NoError(t, w.Write([]string{
			strconv.Itoa(i),
			strconv.Itoa(20 + i%50),
			[]string{"female", "male"}[i%2],
			strconv.Itoa(i % 4),
			[]string{"own", "free", "rent"}[i%3],
			[]string{"little", "moderate", "quite rich", "rich"}[i%4],
			[]string{"little", "moderate", "rich"}[i%3],
			strconv.Itoa(500 + 250*i),
			strconv.Itoa(6 + i%40),
			purposes[i%len(purposes)],
			label,
		}))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return path
}

func TestTrain_WritesLoadableArtifact(t *testing.T) {
	trainData = writeDataset(t, 48)
	trainOut = filepath.Join(t.TempDir(), "models", "credit_risk.json")
	trainTestRatio = 0.25
	trainEpochs = 5
	trainLr = 0.1
	trainBatch = 8
	trainL2 = 0
	trainThreshold = 0.5
	trainSeed = 1
	trainPlotDir = filepath.Join(t.TempDir(), "plots")
	trainStratify = true

	require.NoError(t, Train(nil, nil))
	assert.FileExists(t, filepath.Join(trainPlotDir, "loss.png"))
	assert.FileExists(t, filepath.Join(trainPlotDir, "scores.png"))

	ct, clf, err := loadModel(trainOut)
	require.NoError(t, err)
	assert.Equal(t, 19, ct.Width())
	assert.Equal(t, 19, clf.NumFeatures())
}

func TestTrain_Unstratified(t *testing.T) {
	trainData = writeDataset(t, 48)
	trainOut = filepath.Join(t.TempDir(), "credit_risk.json")
	trainTestRatio = 0.25
	trainEpochs = 2
	trainLr = 0.1
	trainBatch = 8
	trainL2 = 0
	trainThreshold = 0.5
	trainSeed = 3
	trainPlotDir = ""
	trainStratify = false

	require.NoError(t, Train(nil, nil))
	assert.FileExists(t, trainOut)
}

func TestSplit(t *testing.T) {
	y := []float64{1, 1, 1, 1, 1, 1, 0, 0, 0, 0}
	for _, stratify := range []bool{true, false} {
		train, test := split(rand.New(rand.NewSource(7)), y, 0.5, stratify)
		assert.Len(t, test, 5)
		assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, append(train, test...))
	}

	_, test := split(rand.New(rand.NewSource(7)), y, 0.5, true)
	var bad int
	for _, i := range test {
		if y[i] == 0 {
			bad++
		}
	}
	assert.Equal(t, 2, bad)
}

func TestTrain_MissingDataset(t *testing.T) {
	trainData = filepath.Join(t.TempDir(), "missing.csv")
	trainPlotDir = ""
	assert.Error(t, Train(nil, nil))
}

func TestJobToken(t *testing.T) {
	assert.Equal(t, "2", jobToken("skilled"))
	assert.Equal(t, "3", jobToken("Highly Skilled"))
	assert.Equal(t, "1", jobToken("1"))
	assert.Equal(t, "chef", jobToken("chef"))
}

func TestSubset(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	y := []float64{0, 1, 0}

	sub, labels := subset(X, y, []int{2, 0})
	assert.Equal(t, []float64{5, 6, 1, 2}, sub.RawMatrix().Data)
	assert.Equal(t, []float64{0, 0}, labels)
}
