package risk

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/data"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/schema"
)

// Applicant is one loan applicant as entered by a loan officer.
type Applicant struct {
	Age             int    `json:"age"`
	Sex             string `json:"sex"`
	Job             string `json:"job"`
	Housing         string `json:"housing"`
	SavingAccounts  string `json:"saving_accounts"`
	CheckingAccount string `json:"checking_account"`
	CreditAmount    int    `json:"credit_amount"`
	Duration        int    `json:"duration"`
	Purpose         string `json:"purpose"`
}

// Validate checks every field against its domain. Categorical values are
// matched exactly; no case folding or trimming is done.
func (a Applicant) Validate() error {
	nums, cats := a.numeric(), a.categorical()
	var errs []error
	for _, f := range schema.Applicant().Fields() {
		if f.Role == schema.Numeric {
			if v := nums[f.Name]; !f.InRange(v) {
				errs = append(errs, fmt.Errorf("%w: %s %d outside [%d, %d]", schema.ErrSchema, f.Name, v, f.Min, f.Max))
			}
			continue
		}
		if v := cats[f.Name]; !f.Contains(v) {
			errs = append(errs, fmt.Errorf("%w: %s %q not in %q", schema.ErrSchema, f.Name, v, f.Domain))
		}
	}
	return errors.Join(errs...)
}

func (a Applicant) numeric() map[string]int {
	return map[string]int{
		schema.Age:          a.Age,
		schema.CreditAmount: a.CreditAmount,
		schema.Duration:     a.Duration,
	}
}

func (a Applicant) categorical() map[string]string {
	return map[string]string{
		schema.Sex:             a.Sex,
		schema.Job:             a.Job,
		schema.Housing:         a.Housing,
		schema.SavingAccounts:  a.SavingAccounts,
		schema.CheckingAccount: a.CheckingAccount,
		schema.Purpose:         a.Purpose,
	}
}

// Record returns the applicant as a single-row record keyed by column name.
func (a Applicant) Record() data.Record {
	r := make(data.Record, 9)
	for name, v := range a.numeric() {
		r[name] = strconv.Itoa(v)
	}
	for name, v := range a.categorical() {
		r[name] = v
	}
	return r
}
