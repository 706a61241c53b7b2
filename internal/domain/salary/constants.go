package salary

import "github.com/shopspring/decimal"

const (
	MonthsPerYear = 12

	// MonthlyPrecision is the number of decimal places kept when dividing
	// the annual CTC into months.
	MonthlyPrecision = 16

	AllowanceExceedsCTCMessage = "Basic + HRA + Employer PF exceeds monthly CTC"
)

// Policy holds the jurisdiction specific rates used by the calculator.
type Policy struct {
	ProvidentFundRate decimal.Decimal `json:"providentFundRate"`
	ProfessionalTax   decimal.Decimal `json:"professionalTax"`
	BasicShare        decimal.Decimal `json:"basicShare"`
	HRAShare          decimal.Decimal `json:"hraShare"`
}

func DefaultPolicy() Policy {
	return Policy{
		ProvidentFundRate: decimal.RequireFromString("0.12"),
		ProfessionalTax:   decimal.NewFromInt(200),
		BasicShare:        decimal.RequireFromString("0.4"),
		HRAShare:          decimal.RequireFromString("0.4"),
	}
}
