package salary

import "github.com/shopspring/decimal"

type Input struct {
	AnnualCTC       decimal.Decimal `json:"annualCtc"`
	Basic           decimal.Decimal `json:"basic"`
	HRA             decimal.Decimal `json:"hra"`
	ProfessionalTax decimal.Decimal `json:"professionalTax"`
}

// Components are the user-entered parts of a structure. The annual CTC
// always comes from the employee record.
type Components struct {
	Basic           decimal.Decimal `json:"basic"`
	HRA             decimal.Decimal `json:"hra"`
	ProfessionalTax decimal.Decimal `json:"professionalTax"`
}

func (c Components) Validate() error {
	if c.Basic.IsNegative() || c.HRA.IsNegative() || c.ProfessionalTax.IsNegative() {
		return ErrNegativeComponent
	}
	return nil
}

type Breakdown struct {
	MonthlyCTC            decimal.Decimal `json:"monthlyCtc"`
	Basic                 decimal.Decimal `json:"basic"`
	HRA                   decimal.Decimal `json:"hra"`
	EmployeeProvidentFund decimal.Decimal `json:"employeeProvidentFund"`
	EmployerProvidentFund decimal.Decimal `json:"employerProvidentFund"`
	SpecialAllowance      decimal.Decimal `json:"specialAllowance"`
	GrossEarnings         decimal.Decimal `json:"grossEarnings"`
	ProfessionalTax       decimal.Decimal `json:"professionalTax"`
	TotalDeductions       decimal.Decimal `json:"totalDeductions"`
	NetSalary             decimal.Decimal `json:"netSalary"`
}

// Calculate derives the monthly breakdown. A negative special allowance is
// reported as is; gross earnings only count the positive part.
func (p Policy) Calculate(in Input) Breakdown {
	monthly := in.AnnualCTC.DivRound(decimal.NewFromInt(MonthsPerYear), MonthlyPrecision)
	employeePF := in.Basic.Mul(p.ProvidentFundRate)
	employerPF := in.Basic.Mul(p.ProvidentFundRate)
	special := monthly.Sub(in.Basic).Sub(in.HRA).Sub(employerPF)
	gross := in.Basic.Add(in.HRA).Add(decimal.Max(special, decimal.Zero))
	deductions := employeePF.Add(in.ProfessionalTax)

	return Breakdown{
		MonthlyCTC:            monthly,
		Basic:                 in.Basic,
		HRA:                   in.HRA,
		EmployeeProvidentFund: employeePF,
		EmployerProvidentFund: employerPF,
		SpecialAllowance:      special,
		GrossEarnings:         gross,
		ProfessionalTax:       in.ProfessionalTax,
		TotalDeductions:       deductions,
		NetSalary:             gross.Sub(deductions),
	}
}

func Calculate(in Input) Breakdown {
	return DefaultPolicy().Calculate(in)
}

// Defaults proposes components for an employee without a structure.
// Amounts are rounded to paise.
func (p Policy) Defaults(annualCTC decimal.Decimal) Input {
	monthly := annualCTC.DivRound(decimal.NewFromInt(MonthsPerYear), MonthlyPrecision)
	basic := monthly.Mul(p.BasicShare).Round(2)
	return Input{
		AnnualCTC:       annualCTC,
		Basic:           basic,
		HRA:             basic.Mul(p.HRAShare).Round(2),
		ProfessionalTax: p.ProfessionalTax,
	}
}

// Validate rejects a breakdown whose special allowance went negative.
func (b Breakdown) Validate() error {
	if b.SpecialAllowance.IsNegative() {
		return ErrAllowanceExceedsCTC
	}
	return nil
}

// Display clamps the special allowance at zero for presentation.
func (b Breakdown) Display() Breakdown {
	if b.SpecialAllowance.IsNegative() {
		b.SpecialAllowance = decimal.Zero
	}
	return b
}
