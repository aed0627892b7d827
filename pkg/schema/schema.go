package schema

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrSchema is returned when a table or record does not conform to the
// applicant schema: a required column is absent or a value is outside its domain.
var ErrSchema = errors.New("schema error")

// Column names of the German Credit applicant record.
const (
	Age             = "Age"
	Sex             = "Sex"
	Job             = "Job"
	Housing         = "Housing"
	SavingAccounts  = "Saving accounts"
	CheckingAccount = "Checking account"
	CreditAmount    = "Credit amount"
	Duration        = "Duration"
	Purpose         = "Purpose"

	// Target is the optional label column present in training data.
	Target = "Risk"
)

// Role says how the transformer encodes a column.
type Role int

const (
	Numeric Role = iota
	Nominal
	Ordinal
)

func (r Role) String() string {
	switch r {
	case Numeric:
		return "numeric"
	case Nominal:
		return "nominal"
	case Ordinal:
		return "ordinal"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Field describes one column of the applicant record.
type Field struct {
	Name   string
	Role   Role
	Domain []string // categorical values, case-sensitive
	Min    int      // inclusive bounds for numeric fields
	Max    int
}

// Contains reports whether v is a member of a categorical field's domain.
func (f Field) Contains(v string) bool {
	return slices.Contains(f.Domain, v)
}

// InRange reports whether v lies inside a numeric field's bounds.
func (f Field) InRange(v int) bool {
	return v >= f.Min && v <= f.Max
}

// Schema is an ordered list of fields with a fixed role partition.
type Schema struct {
	fields []Field
}

var applicant = []Field{
	{Name: Age, Role: Numeric, Min: 18, Max: 100},
	{Name: Sex, Role: Nominal, Domain: []string{"female", "male"}},
	{Name: Job, Role: Ordinal, Domain: []string{"0", "1", "2", "3"}},
	{Name: Housing, Role: Nominal, Domain: []string{"own", "free", "rent"}},
	{Name: SavingAccounts, Role: Nominal, Domain: []string{"little", "moderate", "quite rich", "rich"}},
	{Name: CheckingAccount, Role: Nominal, Domain: []string{"little", "moderate", "rich"}},
	{Name: CreditAmount, Role: Numeric, Min: 100, Max: 200_000},
	{Name: Duration, Role: Numeric, Min: 1, Max: 120},
	{Name: Purpose, Role: Nominal, Domain: []string{
		"radio/TV", "furniture/equipment", "car", "business",
		"domestic appliances", "repairs", "vacation/others", "education",
	}},
}

var jobLevels = map[string]string{
	"0": "unskilled non-resident",
	"1": "unskilled resident",
	"2": "skilled",
	"3": "highly skilled",
}

// JobLevels maps each Job token to its skill description.
func JobLevels() map[string]string { return maps.Clone(jobLevels) }

// Applicant returns the schema of the German Credit applicant record.
func Applicant() Schema {
	fields := make([]Field, len(applicant))
	for i, f := range applicant {
		f.Domain = slices.Clone(f.Domain)
		fields[i] = f
	}
	return Schema{fields: fields}
}

// Fields returns the fields in record order.
func (s Schema) Fields() []Field { return slices.Clone(s.fields) }

// Names returns the column names in record order.
func (s Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Field looks up a field by column name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Columns returns the columns with the given role in record order. The
// transformer lays out each block in this order.
func (s Schema) Columns(role Role) []string {
	var cols []string
	for _, f := range s.fields {
		if f.Role == role {
			cols = append(cols, f.Name)
		}
	}
	return cols
}

// Require checks that every schema column is present in columns.
func (s Schema) Require(columns []string) error {
	var missing []string
	for _, f := range s.fields {
		if !slices.Contains(columns, f.Name) {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %s", ErrSchema, quoteAll(missing))
	}
	return nil
}

func quoteAll(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(q, ", ")
}
