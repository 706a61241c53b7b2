package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Structure is the stored salary structure of one employee. Once a payslip
// references a version it is locked and the next save starts a new version.
type Structure struct {
	EmployeeID            string          `json:"employeeId"`
	Version               int             `json:"version"`
	AnnualCTC             decimal.Decimal `json:"annualCtc"`
	Basic                 decimal.Decimal `json:"basic"`
	HRA                   decimal.Decimal `json:"hra"`
	SpecialAllowance      decimal.Decimal `json:"specialAllowance"`
	EmployeeProvidentFund decimal.Decimal `json:"employeeProvidentFund"`
	EmployerProvidentFund decimal.Decimal `json:"employerProvidentFund"`
	ProfessionalTax       decimal.Decimal `json:"professionalTax"`
	GrossEarnings         decimal.Decimal `json:"grossEarnings"`
	NetSalary             decimal.Decimal `json:"netSalary"`
	Locked                bool            `json:"locked"`
	UpdatedBy             string          `json:"updatedBy,omitempty"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

func NewStructure(employeeID string, annualCTC decimal.Decimal, b Breakdown) Structure {
	return Structure{
		EmployeeID:            employeeID,
		AnnualCTC:             annualCTC,
		Basic:                 b.Basic,
		HRA:                   b.HRA,
		SpecialAllowance:      b.SpecialAllowance,
		EmployeeProvidentFund: b.EmployeeProvidentFund,
		EmployerProvidentFund: b.EmployerProvidentFund,
		ProfessionalTax:       b.ProfessionalTax,
		GrossEarnings:         b.GrossEarnings,
		NetSalary:             b.NetSalary,
	}
}

func (s Structure) Components() Components {
	return Components{Basic: s.Basic, HRA: s.HRA, ProfessionalTax: s.ProfessionalTax}
}

// TotalDeductions is employee PF plus professional tax.
func (s Structure) TotalDeductions() decimal.Decimal {
	return s.EmployeeProvidentFund.Add(s.ProfessionalTax)
}

// Draft is what the salary editor starts from.
type Draft struct {
	EmployeeID string    `json:"employeeId"`
	Existing   bool      `json:"existing"`
	Version    int       `json:"version,omitempty"`
	Locked     bool      `json:"locked"`
	Input      Input     `json:"input"`
	Breakdown  Breakdown `json:"breakdown"`
	Valid      bool      `json:"valid"`
	Problem    string    `json:"problem,omitempty"`
}
