package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// MeanStd returns the mean and population standard deviation in one pass.
func MeanStd(x []float64) (mean, std float64) {
	if len(x) == 0 {
		return 0, 0
	}
	m, v := stat.PopMeanVariance(x, nil)
	return m, math.Sqrt(v)
}

// Column extracts column j of X.
func Column(X [][]float64, j int) []float64 {
	col := make([]float64, len(X))
	for i := range X {
		col[i] = X[i][j]
	}
	return col
}
