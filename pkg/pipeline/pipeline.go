package pipeline

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/data"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/dataprep"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/schema"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/stats"
)

var (
	ErrUnseenCategory = dataprep.ErrUnseenCategory
	ErrNotFitted      = errors.New("transformer not fitted")
	ErrAlreadyFitted  = errors.New("transformer already fitted")
	ErrEmptyTable     = errors.New("empty table")
)

// Transformer is the fit/transform contract between a table and the
// numeric matrix a classifier consumes.
type Transformer interface {
	Fit(t *data.Table) error
	Transform(t *data.Table) (*mat.Dense, error)
}

// ColumnTransformer standardizes numeric columns, one-hot encodes nominal
// columns with the first category dropped and rank-encodes the ordinal
// column. Output blocks are always laid out numeric, nominal, ordinal.
//
// Once fitted it is never mutated and may be shared between goroutines.
type ColumnTransformer struct {
	numeric []string
	nominal []string
	ordinal []string

	scaler *stats.StandardScaler
	onehot []*dataprep.OneHotEncoder
	ranks  []*dataprep.OrdinalEncoder

	fitted bool
}

var _ Transformer = (*ColumnTransformer)(nil)

// Build returns an unfitted transformer over the applicant schema.
func Build() *ColumnTransformer {
	s := schema.Applicant()
	c := &ColumnTransformer{
		numeric: s.Columns(schema.Numeric),
		nominal: s.Columns(schema.Nominal),
		ordinal: s.Columns(schema.Ordinal),
		scaler:  stats.NewStandardScaler(),
	}
	c.onehot = make([]*dataprep.OneHotEncoder, len(c.nominal))
	for i := range c.nominal {
		c.onehot[i] = dataprep.NewOneHotEncoder(true)
	}
	c.ranks = make([]*dataprep.OrdinalEncoder, len(c.ordinal))
	for i := range c.ordinal {
		c.ranks[i] = dataprep.NewOrdinalEncoder()
	}
	return c
}

// Fitted reports whether the transformer has learned its parameters.
func (c *ColumnTransformer) Fitted() bool { return c.fitted }

// columns returns every input column the transformer reads.
func (c *ColumnTransformer) columns() []string {
	cols := make([]string, 0, len(c.numeric)+len(c.nominal)+len(c.ordinal))
	cols = append(cols, c.numeric...)
	cols = append(cols, c.nominal...)
	return append(cols, c.ordinal...)
}

func (c *ColumnTransformer) require(t *data.Table) error {
	for _, col := range c.columns() {
		if !t.Has(col) {
			return fmt.Errorf("%w: missing column %q", schema.ErrSchema, col)
		}
	}
	return nil
}

// Fit learns scaling statistics, one-hot vocabularies and ordinal ranks from t.
// t must hold no missing values. Every column is validated before anything is
// learned, so a failed Fit leaves c unfitted and ready for another attempt.
func (c *ColumnTransformer) Fit(t *data.Table) error {
	if c.fitted {
		return ErrAlreadyFitted
	}
	if err := c.require(t); err != nil {
		return err
	}
	if t.Len() == 0 {
		return ErrEmptyTable
	}

	X := make([][]float64, t.Len())
	for i := range X {
		row := make([]float64, len(c.numeric))
		for j, col := range c.numeric {
			v, err := parseNumeric(col, t.Rows[i][t.Index(col)])
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			row[j] = v
		}
		X[i] = row
	}
	nominal := make([][]string, len(c.nominal))
	for i, col := range c.nominal {
		vals, err := categorical(t, col)
		if err != nil {
			return err
		}
		nominal[i] = vals
	}
	ordinal := make([][]string, len(c.ordinal))
	for i, col := range c.ordinal {
		vals, err := categorical(t, col)
		if err != nil {
			return err
		}
		ordinal[i] = vals
	}

	scaler := stats.NewStandardScaler()
	if err := scaler.Fit(X); err != nil {
		return fmt.Errorf("fit numeric: %w", err)
	}
	onehot := make([]*dataprep.OneHotEncoder, len(c.nominal))
	for i, col := range c.nominal {
		onehot[i] = dataprep.NewOneHotEncoder(true)
		if err := onehot[i].Fit(nominal[i]); err != nil {
			return fmt.Errorf("fit %q: %w", col, err)
		}
	}
	ranks := make([]*dataprep.OrdinalEncoder, len(c.ordinal))
	for i, col := range c.ordinal {
		ranks[i] = dataprep.NewOrdinalEncoder()
		if err := ranks[i].Fit(ordinal[i]); err != nil {
			return fmt.Errorf("fit %q: %w", col, err)
		}
	}

	c.scaler, c.onehot, c.ranks = scaler, onehot, ranks
	c.fitted = true
	return nil
}

// Width is the length of one transformed row.
func (c *ColumnTransformer) Width() int {
	w := len(c.numeric) + len(c.ordinal)
	for _, e := range c.onehot {
		w += e.Width()
	}
	return w
}

// FeatureNames names each output column in order.
func (c *ColumnTransformer) FeatureNames() []string {
	names := make([]string, 0, c.Width())
	names = append(names, c.numeric...)
	for i, col := range c.nominal {
		names = append(names, c.onehot[i].FeatureNames(col)...)
	}
	return append(names, c.ordinal...)
}

// Transform encodes every row of t with the fitted parameters.
func (c *ColumnTransformer) Transform(t *data.Table) (*mat.Dense, error) {
	if !c.fitted {
		return nil, ErrNotFitted
	}
	if err := c.require(t); err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, ErrEmptyTable
	}
	out := mat.NewDense(t.Len(), c.Width(), nil)
	for i, row := range t.Rows {
		get := func(col string) string { return row[t.Index(col)] }
		if err := c.encode(get, out.RawRowView(i)); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return out, nil
}

// TransformRecord encodes a single record. Every input column must be
// present and non-missing.
func (c *ColumnTransformer) TransformRecord(r data.Record) ([]float64, error) {
	if !c.fitted {
		return nil, ErrNotFitted
	}
	for _, col := range c.columns() {
		v, ok := r[col]
		if !ok || dataprep.IsMissing(v) {
			return nil, fmt.Errorf("%w: missing field %q", schema.ErrSchema, col)
		}
	}
	dst := make([]float64, c.Width())
	if err := c.encode(func(col string) string { return r[col] }, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// FitTransform fits on t and returns its encoding.
func (c *ColumnTransformer) FitTransform(t *data.Table) (*mat.Dense, error) {
	if err := c.Fit(t); err != nil {
		return nil, err
	}
	return c.Transform(t)
}

// encode writes one row into dst, which holds Width values.
func (c *ColumnTransformer) encode(get func(col string) string, dst []float64) error {
	nums := make([]float64, len(c.numeric))
	for j, col := range c.numeric {
		v, err := parseNumeric(col, get(col))
		if err != nil {
			return err
		}
		nums[j] = v
	}
	if err := c.scaler.TransformRow(nums, dst[:len(nums)]); err != nil {
		return err
	}
	off := len(nums)

	for i, col := range c.nominal {
		e := c.onehot[i]
		if err := e.Encode(get(col), dst[off:off+e.Width()]); err != nil {
			return fmt.Errorf("%s: %w", col, err)
		}
		off += e.Width()
	}
	for i, col := range c.ordinal {
		r, err := c.ranks[i].Encode(get(col))
		if err != nil {
			return fmt.Errorf("%s: %w", col, err)
		}
		dst[off] = r
		off++
	}
	return nil
}

// parseNumeric rejects missing tokens and non-finite values such as "NaN"
// and "Inf", which ParseFloat would otherwise accept.
func parseNumeric(col, v string) (float64, error) {
	if dataprep.IsMissing(v) {
		return 0, fmt.Errorf("%w: missing %q", schema.ErrSchema, col)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s %q is not a finite number", schema.ErrSchema, col, v)
	}
	return f, nil
}

func categorical(t *data.Table, col string) ([]string, error) {
	vals, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		if dataprep.IsMissing(v) {
			return nil, fmt.Errorf("%w: row %d: missing %q", schema.ErrSchema, i, col)
		}
	}
	return vals, nil
}
