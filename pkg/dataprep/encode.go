package dataprep

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnseenCategory is returned when a value was not observed at fit time.
	ErrUnseenCategory = errors.New("unseen category")
	// ErrNotFitted is returned by Transform on an encoder that was never fit.
	ErrNotFitted = errors.New("not fitted")
	// ErrAlreadyFitted is returned when fitting an encoder a second time.
	ErrAlreadyFitted = errors.New("already fitted")
	// ErrEmptyColumn is returned when fitting on no values.
	ErrEmptyColumn = errors.New("empty column")
)

// vocabulary returns the sorted distinct values of col.
func vocabulary(col []string) []string {
	cats := slices.Clone(col)
	slices.Sort(cats)
	return slices.Compact(cats)
}

func indexOf(cats []string) map[string]int {
	idx := make(map[string]int, len(cats))
	for i, c := range cats {
		idx[c] = i
	}
	return idx
}

func validVocabulary(cats []string) error {
	if len(cats) == 0 {
		return ErrEmptyColumn
	}
	if !slices.IsSorted(cats) || len(slices.Compact(slices.Clone(cats))) != len(cats) {
		return fmt.Errorf("categories must be sorted and distinct: %q", cats)
	}
	return nil
}

// OneHotEncoder encodes one categorical column as indicator features.
// Categories are sorted lexically; with DropFirst the first one is the
// reference category and encodes as all zeros.
type OneHotEncoder struct {
	DropFirst  bool
	categories []string
	index      map[string]int
}

// NewOneHotEncoder returns an unfitted encoder.
func NewOneHotEncoder(dropFirst bool) *OneHotEncoder {
	return &OneHotEncoder{DropFirst: dropFirst}
}

// Fit learns the vocabulary of col.
func (e *OneHotEncoder) Fit(col []string) error {
	if e.Fitted() {
		return ErrAlreadyFitted
	}
	if len(col) == 0 {
		return ErrEmptyColumn
	}
	return e.SetCategories(vocabulary(col))
}

// SetCategories installs a previously learned vocabulary.
func (e *OneHotEncoder) SetCategories(cats []string) error {
	if e.Fitted() {
		return ErrAlreadyFitted
	}
	if err := validVocabulary(cats); err != nil {
		return err
	}
	e.categories = slices.Clone(cats)
	e.index = indexOf(e.categories)
	return nil
}

// Fitted reports whether the vocabulary is known.
func (e *OneHotEncoder) Fitted() bool { return e.categories != nil }

// Categories returns the full fitted vocabulary, dropped category included.
func (e *OneHotEncoder) Categories() []string { return slices.Clone(e.categories) }

// Dropped returns the reference category, or "" when nothing is dropped.
func (e *OneHotEncoder) Dropped() string {
	if !e.DropFirst || len(e.categories) == 0 {
		return ""
	}
	return e.categories[0]
}

// Width is the number of features emitted per value.
func (e *OneHotEncoder) Width() int {
	if e.DropFirst && len(e.categories) > 0 {
		return len(e.categories) - 1
	}
	return len(e.categories)
}

// Encode writes the indicator vector of v into dst, which must hold Width values.
func (e *OneHotEncoder) Encode(v string, dst []float64) error {
	if !e.Fitted() {
		return ErrNotFitted
	}
	i, ok := e.index[v]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnseenCategory, v)
	}
	clear(dst[:e.Width()])
	if e.DropFirst {
		i--
	}
	if i >= 0 {
		dst[i] = 1
	}
	return nil
}

// FeatureNames returns "<prefix>_<category>" for each emitted feature.
func (e *OneHotEncoder) FeatureNames(prefix string) []string {
	cats := e.categories
	if e.DropFirst && len(cats) > 0 {
		cats = cats[1:]
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = prefix + "_" + c
	}
	return names
}

// OrdinalEncoder maps each category to its rank in the sorted vocabulary.
type OrdinalEncoder struct {
	categories []string
	index      map[string]int
}

// NewOrdinalEncoder returns an unfitted encoder.
func NewOrdinalEncoder() *OrdinalEncoder { return &OrdinalEncoder{} }

// Fit learns the rank order of col.
func (e *OrdinalEncoder) Fit(col []string) error {
	if e.Fitted() {
		return ErrAlreadyFitted
	}
	if len(col) == 0 {
		return ErrEmptyColumn
	}
	return e.SetCategories(vocabulary(col))
}

// SetCategories installs a previously learned rank order.
func (e *OrdinalEncoder) SetCategories(cats []string) error {
	if e.Fitted() {
		return ErrAlreadyFitted
	}
	if err := validVocabulary(cats); err != nil {
		return err
	}
	e.categories = slices.Clone(cats)
	e.index = indexOf(e.categories)
	return nil
}

// Fitted reports whether the rank order is known.
func (e *OrdinalEncoder) Fitted() bool { return e.categories != nil }

// Categories returns the categories in rank order.
func (e *OrdinalEncoder) Categories() []string { return slices.Clone(e.categories) }

// Encode returns the rank of v.
func (e *OrdinalEncoder) Encode(v string) (float64, error) {
	if !e.Fitted() {
		return 0, ErrNotFitted
	}
	i, ok := e.index[v]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnseenCategory, v)
	}
	return float64(i), nil
}
