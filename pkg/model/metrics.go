package model

import "math"

func BinaryPredFromProba(proba []float64, threshold float64) []int {
	out := make([]int, len(proba))
	for i, p := range proba {
		if p >= threshold {
			out[i] = Good
		} else {
			out[i] = Bad
		}
	}
	return out
}

// Accuracy is the fraction of matching labels.
func Accuracy(yTrue []int, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue))
}

// PrecisionRecallF1 scores the positive class (Good).
func PrecisionRecallF1(yTrue []int, yPred []int) (prec, rec, f1 float64) {
	tp, fp, fn := 0, 0, 0
	for i := range yTrue {
		if yPred[i] == Good && yTrue[i] == Good {
			tp++
		}
		if yPred[i] == Good && yTrue[i] == Bad {
			fp++
		}
		if yPred[i] == Bad && yTrue[i] == Good {
			fn++
		}
	}
	if tp+fp > 0 {
		prec = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		rec = float64(tp) / float64(tp+fn)
	}
	if prec+rec > 0 {
		f1 = 2 * prec * rec / (prec + rec)
	}
	return
}

// LogLoss is the mean negative log-likelihood of the true labels.
func LogLoss(yTrue []int, proba [][2]float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	s := 0.0
	for i, y := range yTrue {
		p := math.Min(math.Max(proba[i][y], 1e-15), 1)
		s -= math.Log(p)
	}
	return s / float64(len(yTrue))
}

// Labels converts float targets to class labels.
func Labels(y []float64) []int {
	out := make([]int, len(y))
	for i, v := range y {
		if v >= 0.5 {
			out[i] = Good
		}
	}
	return out
}
