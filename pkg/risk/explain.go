package risk

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/model"
)

const (
	LowRisk  = "Low Risk"
	HighRisk = "High Risk"
)

// Thresholds used for key factor warnings.
const (
	longDurationMonths = 36
	largeAmount        = 10_000
	youngAge           = 25
)

var highRiskPurposes = []string{"vacation/others", "repairs", "domestic appliances"}

// Factor is one applicant attribute shown alongside the decision.
type Factor struct {
	Label string `json:"label"`
	Warn  bool   `json:"warn"`
}

// Explanation is the human-readable side of an assessment.
type Explanation struct {
	RiskLevel      string   `json:"risk_level"`
	Headline       string   `json:"headline"`
	HeadlineLabel  string   `json:"headline_label"`
	Factors        []Factor `json:"factors"`
	Recommendation string   `json:"recommendation"`
}

// Explain builds the explanation of a prediction for a.
func Explain(a Applicant, label int, proba [2]float64) Explanation {
	pBad, pGood := proba[model.Bad], proba[model.Good]
	e := Explanation{Factors: KeyFactors(a)}
	if label == model.Good {
		e.RiskLevel = LowRisk
		e.Headline = Percent(pGood)
		e.HeadlineLabel = "Good Credit Probability"
	} else {
		e.RiskLevel = HighRisk
		e.Headline = Percent(pBad)
		e.HeadlineLabel = "Bad Credit Probability"
	}
	e.Recommendation = Recommendation(label, proba)
	return e
}

// KeyFactors lists the attributes a loan officer looks at first, flagging
// the ones associated with higher risk.
func KeyFactors(a Applicant) []Factor {
	return []Factor{
		{Label: fmt.Sprintf("Duration: %dmo", a.Duration), Warn: a.Duration > longDurationMonths},
		{Label: "Amount: " + Amount(a.CreditAmount) + " DM", Warn: a.CreditAmount > largeAmount},
		{Label: fmt.Sprintf("Age: %d", a.Age), Warn: a.Age < youngAge},
		{Label: "Savings: " + a.SavingAccounts, Warn: a.SavingAccounts == "little"},
		{Label: "Checking: " + a.CheckingAccount, Warn: a.CheckingAccount == "little"},
		{Label: "Housing: " + a.Housing, Warn: a.Housing == "rent"},
		{Label: "Purpose: " + a.Purpose, Warn: slices.Contains(highRiskPurposes, a.Purpose)},
	}
}

// Recommendation returns the lending advice for a decision and its probability.
func Recommendation(label int, proba [2]float64) string {
	if label == model.Good {
		switch p := proba[model.Good]; {
		case p >= 0.80:
			return "Strong credit profile. Loan approval recommended."
		case p >= 0.65:
			return "Acceptable credit profile. Approval with standard terms."
		default:
			return "Borderline profile. Consider additional verification."
		}
	}
	switch p := proba[model.Bad]; {
	case p >= 0.80:
		return "High default risk. Loan not recommended."
	case p >= 0.65:
		return "Elevated risk. Requires collateral or co-signer."
	default:
		return "Moderate-high risk. Manual review advised."
	}
}

// Percent renders a probability as a percentage with one decimal, e.g. "72.3%".
func Percent(p float64) string {
	return decimal.NewFromFloat(p).Shift(2).StringFixed(1) + "%"
}

// Amount renders a currency amount with thousands separators, e.g. "12,500".
func Amount(v int) string {
	s := decimal.NewFromInt(int64(v)).Abs().StringFixed(0)
	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
