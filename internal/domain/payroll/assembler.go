package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ems/internal/domain/employee"
	"ems/internal/domain/salary"
)

// Generate snapshots the structure into a payslip for period. Only Active
// employees are paid.
func Generate(emp employee.Employee, st salary.Structure, period Period, now time.Time) (Payslip, error) {
	if err := period.Validate(); err != nil {
		return Payslip{}, err
	}
	if emp.Status != employee.StatusActive {
		return Payslip{}, ErrEmployeeNotActive
	}
	return Payslip{
		ID:                    uuid.NewString(),
		EmployeeID:            emp.ID,
		EmployeeName:          emp.FullName(),
		StructureVersion:      st.Version,
		Month:                 period.Month,
		Year:                  period.Year,
		Basic:                 st.Basic,
		HRA:                   st.HRA,
		SpecialAllowance:      st.SpecialAllowance,
		EmployeeProvidentFund: st.EmployeeProvidentFund,
		EmployerProvidentFund: st.EmployerProvidentFund,
		ProfessionalTax:       st.ProfessionalTax,
		GrossEarnings:         st.GrossEarnings,
		TotalDeductions:       st.TotalDeductions(),
		NetPay:                st.NetSalary,
		GeneratedAt:           now.UTC(),
	}, nil
}

func Earnings(p Payslip) []LineItem {
	return positive([]LineItem{
		{Label: LabelBasic, Amount: p.Basic},
		{Label: LabelHRA, Amount: p.HRA},
		{Label: LabelSpecialAllowance, Amount: p.SpecialAllowance},
	})
}

func Deductions(p Payslip) []LineItem {
	return positive([]LineItem{
		{Label: LabelProvidentFund, Amount: p.EmployeeProvidentFund},
		{Label: LabelProfessionalTax, Amount: p.ProfessionalTax},
	})
}

func NewView(p Payslip) View {
	return View{
		Payslip:    p,
		PayPeriod:  p.Period().Label(),
		Earnings:   Earnings(p),
		Deductions: Deductions(p),
	}
}

// Wellformed reports whether a stored payslip can be rendered.
func Wellformed(p Payslip) bool {
	return p.ID != "" && p.EmployeeID != "" && p.Period().Validate() == nil
}

// Summarize folds payslips ordered newest first. Average is rounded to two
// decimals; an empty list yields zeros.
func Summarize(payslips []Payslip) Summary {
	if len(payslips) == 0 {
		return Summary{YearToDate: decimal.Zero, Average: decimal.Zero, Last: decimal.Zero}
	}
	total := decimal.Zero
	for _, p := range payslips {
		total = total.Add(p.NetPay)
	}
	return Summary{
		Count:      len(payslips),
		YearToDate: total,
		Average:    total.DivRound(decimal.NewFromInt(int64(len(payslips))), 2),
		Last:       payslips[0].NetPay,
	}
}

func positive(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.Amount.IsPositive() {
			out = append(out, item)
		}
	}
	return out
}
