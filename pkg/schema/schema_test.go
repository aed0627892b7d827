package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/schema"
)

func TestApplicant_RolePartition(t *testing.T) {
	s := schema.Applicant()

	seen := map[string]schema.Role{}
	for _, role := range []schema.Role{schema.Numeric, schema.Nominal, schema.Ordinal} {
		for _, col := range s.Columns(role) {
			prev, dup := seen[col]
			assert.False(t, dup, "%s is both %s and %s", col, prev, role)
			seen[col] = role

			f, ok := s.Field(col)
			require.True(t, ok, col)
			assert.Equal(t, role, f.Role, col)
		}
	}
	assert.Len(t, seen, len(s.Names()), "every field has exactly one role")

	assert.Equal(t, []string{schema.Age, schema.CreditAmount, schema.Duration}, s.Columns(schema.Numeric))
	assert.Equal(t, []string{schema.Sex, schema.Housing, schema.SavingAccounts, schema.CheckingAccount, schema.Purpose}, s.Columns(schema.Nominal))
	assert.Equal(t, []string{schema.Job}, s.Columns(schema.Ordinal))
}

func TestApplicant_ReturnsCopies(t *testing.T) {
	s := schema.Applicant()
	s.Columns(schema.Numeric)[0] = "changed"
	f, _ := s.Field(schema.Sex)
	f.Domain[0] = "changed"

	fresh := schema.Applicant()
	assert.Equal(t, schema.Age, fresh.Columns(schema.Numeric)[0])
	sex, _ := fresh.Field(schema.Sex)
	assert.Equal(t, "female", sex.Domain[0])
}

func TestField_ContainsAndInRange(t *testing.T) {
	s := schema.Applicant()

	job, _ := s.Field(schema.Job)
	assert.True(t, job.Contains("2"))
	assert.False(t, job.Contains("2.0"))
	assert.False(t, job.Contains("4"))

	housing, _ := s.Field(schema.Housing)
	assert.False(t, housing.Contains("Own"), "domains are case-sensitive")

	age, _ := s.Field(schema.Age)
	assert.True(t, age.InRange(18))
	assert.True(t, age.InRange(100))
	assert.False(t, age.InRange(17))
	assert.False(t, age.InRange(101))
}

func TestRequire(t *testing.T) {
	s := schema.Applicant()

	require.NoError(t, s.Require(append(s.Names(), schema.Target, "extra")))

	err := s.Require([]string{schema.Age, schema.Sex})
	require.ErrorIs(t, err, schema.ErrSchema)
	assert.Contains(t, err.Error(), `"Saving accounts"`)
	assert.NotContains(t, err.Error(), `"Age"`)
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "numeric", schema.Numeric.String())
	assert.Equal(t, "nominal", schema.Nominal.String())
	assert.Equal(t, "ordinal", schema.Ordinal.String())
	assert.Equal(t, "Role(7)", schema.Role(7).String())
}

func TestJobLevels_CoverDomain(t *testing.T) {
	job, _ := schema.Applicant().Field(schema.Job)
	levels := schema.JobLevels()
	for _, tok := range job.Domain {
		assert.NotEmpty(t, levels[tok], tok)
	}
	assert.Len(t, levels, len(job.Domain))
}

func TestJobLevels_ReturnsCopy(t *testing.T) {
	levels := schema.JobLevels()
	levels["2"] = "changed"
	delete(levels, "3")

	fresh := schema.JobLevels()
	assert.Equal(t, "skilled", fresh["2"])
	assert.Equal(t, "highly skilled", fresh["3"])
}
