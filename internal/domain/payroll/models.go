package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 || p.Year < 1970 || p.Year > 9999 {
		return fmt.Errorf("%w: %d/%d", ErrInvalidPeriod, p.Month, p.Year)
	}
	return nil
}

// Label renders the period as "Month Year", e.g. "March 2025".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month), p.Year)
}

func PeriodOf(t time.Time) Period {
	return Period{Month: int(t.Month()), Year: t.Year()}
}

// Previous is the month before p.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Month: 12, Year: p.Year - 1}
	}
	return Period{Month: p.Month - 1, Year: p.Year}
}

// Payslip is an immutable snapshot of a salary structure for one period.
type Payslip struct {
	ID                    string          `json:"id"`
	EmployeeID            string          `json:"employeeId"`
	EmployeeName          string          `json:"employeeName"`
	StructureVersion      int             `json:"structureVersion"`
	Month                 int             `json:"month"`
	Year                  int             `json:"year"`
	Basic                 decimal.Decimal `json:"basic"`
	HRA                   decimal.Decimal `json:"hra"`
	SpecialAllowance      decimal.Decimal `json:"specialAllowance"`
	EmployeeProvidentFund decimal.Decimal `json:"employeeProvidentFund"`
	EmployerProvidentFund decimal.Decimal `json:"employerProvidentFund"`
	ProfessionalTax       decimal.Decimal `json:"professionalTax"`
	GrossEarnings         decimal.Decimal `json:"grossEarnings"`
	TotalDeductions       decimal.Decimal `json:"totalDeductions"`
	NetPay                decimal.Decimal `json:"netPay"`
	GeneratedBy           string          `json:"generatedBy,omitempty"`
	GeneratedAt           time.Time       `json:"generatedAt"`
}

func (p Payslip) Period() Period {
	return Period{Month: p.Month, Year: p.Year}
}

type LineItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// View is the display form of a payslip.
type View struct {
	Payslip
	PayPeriod  string     `json:"payPeriod"`
	Earnings   []LineItem `json:"earnings"`
	Deductions []LineItem `json:"deductions"`
}

type Summary struct {
	Count      int             `json:"count"`
	YearToDate decimal.Decimal `json:"ytd"`
	Average    decimal.Decimal `json:"avg"`
	Last       decimal.Decimal `json:"last"`
}

// Filter narrows ListPayslips. Zero values match everything.
type Filter struct {
	EmployeeID string
	Month      int
	Year       int
}

type RunRequest struct {
	Period      Period
	EmployeeIDs []string
}

type RunItem struct {
	EmployeeID string `json:"employeeId"`
	Reason     string `json:"reason"`
}

type RunResult struct {
	Period    Period    `json:"period"`
	Generated []Payslip `json:"generated"`
	Skipped   []RunItem `json:"skipped"`
	Failed    []RunItem `json:"failed"`
}

type PayslipGenerated struct {
	PayslipID  string          `json:"payslipId"`
	EmployeeID string          `json:"employeeId"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	NetPay     decimal.Decimal `json:"netPay"`
}
