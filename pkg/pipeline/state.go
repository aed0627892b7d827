package pipeline

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidState is returned when restoring a state that does not match
// the applicant schema's column partition.
var ErrInvalidState = errors.New("invalid transformer state")

// State is the serializable form of a fitted ColumnTransformer.
type State struct {
	Numeric []NumericState `json:"numeric"`
	Nominal []NominalState `json:"nominal"`
	Ordinal []OrdinalState `json:"ordinal"`
}

type NumericState struct {
	Column string  `json:"column"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
}

type NominalState struct {
	Column     string   `json:"column"`
	Categories []string `json:"categories"`
	Dropped    string   `json:"dropped"`
}

type OrdinalState struct {
	Column     string   `json:"column"`
	Categories []string `json:"categories"`
}

// State returns the fitted parameters.
func (c *ColumnTransformer) State() (State, error) {
	if !c.fitted {
		return State{}, ErrNotFitted
	}
	var s State
	for j, col := range c.numeric {
		s.Numeric = append(s.Numeric, NumericState{Column: col, Mean: c.scaler.Mean[j], Std: c.scaler.Std[j]})
	}
	for i, col := range c.nominal {
		e := c.onehot[i]
		s.Nominal = append(s.Nominal, NominalState{Column: col, Categories: e.Categories(), Dropped: e.Dropped()})
	}
	for i, col := range c.ordinal {
		s.Ordinal = append(s.Ordinal, OrdinalState{Column: col, Categories: c.ranks[i].Categories()})
	}
	return s, nil
}

// Restore rebuilds a fitted transformer from a saved State. The state's
// columns must match the schema partition in the same order.
func Restore(s State) (*ColumnTransformer, error) {
	c := Build()

	numeric := make([]string, len(s.Numeric))
	mean := make([]float64, len(s.Numeric))
	std := make([]float64, len(s.Numeric))
	for j, n := range s.Numeric {
		numeric[j], mean[j], std[j] = n.Column, n.Mean, n.Std
	}
	if !slices.Equal(numeric, c.numeric) {
		return nil, fmt.Errorf("%w: numeric columns %q, want %q", ErrInvalidState, numeric, c.numeric)
	}
	if err := c.scaler.SetParams(mean, std); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if len(s.Nominal) != len(c.nominal) {
		return nil, fmt.Errorf("%w: %d nominal columns, want %d", ErrInvalidState, len(s.Nominal), len(c.nominal))
	}
	for i, n := range s.Nominal {
		if n.Column != c.nominal[i] {
			return nil, fmt.Errorf("%w: nominal column %d is %q, want %q", ErrInvalidState, i, n.Column, c.nominal[i])
		}
		if err := c.onehot[i].SetCategories(n.Categories); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidState, n.Column, err)
		}
		if n.Dropped != c.onehot[i].Dropped() {
			return nil, fmt.Errorf("%w: %s: dropped %q, want %q", ErrInvalidState, n.Column, n.Dropped, c.onehot[i].Dropped())
		}
	}

	if len(s.Ordinal) != len(c.ordinal) {
		return nil, fmt.Errorf("%w: %d ordinal columns, want %d", ErrInvalidState, len(s.Ordinal), len(c.ordinal))
	}
	for i, o := range s.Ordinal {
		if o.Column != c.ordinal[i] {
			return nil, fmt.Errorf("%w: ordinal column %d is %q, want %q", ErrInvalidState, i, o.Column, c.ordinal[i])
		}
		if err := c.ranks[i].SetCategories(o.Categories); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidState, o.Column, err)
		}
	}

	c.fitted = true
	return c, nil
}
