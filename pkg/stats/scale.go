package stats

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNotFitted     = errors.New("scaler not fitted")
	ErrAlreadyFitted = errors.New("scaler already fitted")
	ErrEmpty         = errors.New("scaler: no samples")
)

// StandardScaler standardizes each column to zero mean and unit variance.
// A column with zero variance is only centered.
type StandardScaler struct {
	Mean []float64
	Std  []float64
	fit  bool
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit learns per-column mean and population standard deviation.
func (s *StandardScaler) Fit(X [][]float64) error {
	if s.fit {
		return ErrAlreadyFitted
	}
	if len(X) == 0 {
		return ErrEmpty
	}
	c := len(X[0])
	mean := make([]float64, c)
	std := make([]float64, c)
	for j := 0; j < c; j++ {
		mean[j], std[j] = MeanStd(Column(X, j))
	}
	return s.SetParams(mean, std)
}

// SetParams installs previously learned statistics.
func (s *StandardScaler) SetParams(mean, std []float64) error {
	if s.fit {
		return ErrAlreadyFitted
	}
	if len(mean) != len(std) {
		return fmt.Errorf("scaler: %d means for %d deviations", len(mean), len(std))
	}
	s.Mean = slices.Clone(mean)
	s.Std = slices.Clone(std)
	for j := range s.Std {
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	s.fit = true
	return nil
}

// Fitted reports whether Fit or SetParams succeeded.
func (s *StandardScaler) Fitted() bool { return s.fit }

// TransformRow writes the standardized row into dst.
func (s *StandardScaler) TransformRow(row, dst []float64) error {
	if !s.fit {
		return ErrNotFitted
	}
	if len(row) != len(s.Mean) {
		return fmt.Errorf("scaler: row has %d values, fitted on %d", len(row), len(s.Mean))
	}
	for j, v := range row {
		dst[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return nil
}
