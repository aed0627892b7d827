package data

import (
	"fmt"
	"slices"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/dataprep"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/schema"
)

// Record is a single row keyed by column name.
type Record map[string]string

// Table is an in-memory table of string cells with a named header.
type Table struct {
	Columns []string
	Rows    [][]string
	index   map[string]int
}

// NewTable builds a table over columns and rows. Rows are not copied.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{Columns: columns, Rows: rows}
	t.reindex()
	return t
}

// FromRecords builds a table holding the given records with the columns of
// the applicant schema. Every record must carry every schema field.
func FromRecords(recs ...Record) (*Table, error) {
	columns := schema.Applicant().Names()
	rows := make([][]string, len(recs))
	for i, r := range recs {
		row := make([]string, len(columns))
		for j, c := range columns {
			v, ok := r[c]
			if !ok || dataprep.IsMissing(v) {
				return nil, fmt.Errorf("%w: record %d: missing field %q", schema.ErrSchema, i, c)
			}
			row[j] = v
		}
		rows[i] = row
	}
	return NewTable(columns, rows), nil
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.index[c] = i
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Has reports whether the table has column name.
func (t *Table) Has(name string) bool { return t.Index(name) >= 0 }

// Column returns a copy of the values of column name.
func (t *Table) Column(name string) ([]string, error) {
	j := t.Index(name)
	if j < 0 {
		return nil, fmt.Errorf("%w: missing column %q", schema.ErrSchema, name)
	}
	col := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		col[i] = row[j]
	}
	return col, nil
}

// Record returns row i keyed by column name.
func (t *Table) Record(i int) Record {
	r := make(Record, len(t.Columns))
	for j, c := range t.Columns {
		r[c] = t.Rows[i][j]
	}
	return r
}

// DropColumn removes column name and reports whether it was present.
func (t *Table) DropColumn(name string) bool {
	j := t.Index(name)
	if j < 0 {
		return false
	}
	t.Columns = slices.Delete(slices.Clone(t.Columns), j, j+1)
	for i, row := range t.Rows {
		t.Rows[i] = slices.Delete(row, j, j+1)
	}
	t.reindex()
	return true
}

// Labels returns the binary target of a training table: 1 for "good", 0 for "bad".
func Labels(t *Table) ([]float64, error) {
	col, err := t.Column(schema.Target)
	if err != nil {
		return nil, err
	}
	y := make([]float64, len(col))
	for i, v := range col {
		switch v {
		case "good", "1":
			y[i] = 1
		case "bad", "0":
			y[i] = 0
		default:
			return nil, fmt.Errorf("%w: row %d: %s %q is not good/bad", schema.ErrSchema, i, schema.Target, v)
		}
	}
	return y, nil
}
