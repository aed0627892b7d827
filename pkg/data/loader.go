package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/dataprep"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/schema"
)

// ErrDataAccess is returned when the dataset cannot be opened, read or parsed.
var ErrDataAccess = errors.New("data access error")

// indexColumns are header names of a leftover row-index column: pandas
// writes it with an empty header and reads it back as "Unnamed: 0".
var indexColumns = []string{"", "Unnamed: 0"}

// LoadAndClean reads the dataset at path and returns only complete records
// with Job as a string token of its domain.
func LoadAndClean(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataAccess, err)
	}
	defer file.Close()

	t, err := Load(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// Load parses and cleans a CSV dataset from r.
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataAccess, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no header", schema.ErrSchema)
	}

	t := NewTable(slices.Clone(raw[0]), raw[1:])
	for _, name := range indexColumns {
		t.DropColumn(name)
	}

	s := schema.Applicant()
	if err := s.Require(t.Columns); err != nil {
		return nil, err
	}

	rows, dropped := dataprep.DropIncomplete(t.Rows)
	t.Rows = rows
	slog.Debug("dropped incomplete rows",
		slog.Int("dropped", dropped),
		slog.Int("kept", len(rows)),
	)

	job, _ := s.Field(schema.Job)
	j := t.Index(schema.Job)
	for i, row := range t.Rows {
		tok := dataprep.CategoricalToken(row[j])
		if !job.Contains(tok) {
			return nil, fmt.Errorf("%w: row %d: %s %q not in %q", schema.ErrSchema, i, schema.Job, row[j], job.Domain)
		}
		row[j] = tok
	}
	return t, nil
}
