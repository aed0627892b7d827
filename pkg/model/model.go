package model

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrModelArtifact is returned when a classifier cannot be loaded or its
// input width does not match the feature transformer.
var ErrModelArtifact = errors.New("model artifact error")

// Classes of the credit risk target.
const (
	Bad  = 0 // elevated risk
	Good = 1 // low risk
)

// Classifier is a trained binary classifier over transformed feature rows.
type Classifier interface {
	// NumFeatures is the row width the classifier was trained on.
	NumFeatures() int
	// Predict returns the class label (Bad or Good) of each row.
	Predict(X mat.Matrix) ([]int, error)
	// PredictProba returns [p(Bad), p(Good)] for each row.
	PredictProba(X mat.Matrix) ([][2]float64, error)
}
