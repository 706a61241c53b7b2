package payroll

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const registerSheet = "Register"

var registerHeader = []interface{}{
	"Employee ID", "Employee", "Pay Period", "Structure Version",
	"Basic", "HRA", "Special Allowance", "Gross Earnings",
	"Provident Fund", "Professional Tax", "Total Deductions", "Net Pay",
}

// WriteRegister writes the payroll register of one period as XLSX.
// Amounts are written as numbers so the sheet can total them.
func WriteRegister(w io.Writer, period Period, views []View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(registerSheet, "A1", &registerHeader); err != nil {
		return err
	}
	for i, v := range views {
		row := []interface{}{
			v.EmployeeID, v.EmployeeName, v.PayPeriod, v.StructureVersion,
			v.Basic.InexactFloat64(), v.HRA.InexactFloat64(), v.SpecialAllowance.InexactFloat64(), v.GrossEarnings.InexactFloat64(),
			v.EmployeeProvidentFund.InexactFloat64(), v.ProfessionalTax.InexactFloat64(), v.TotalDeductions.InexactFloat64(), v.NetPay.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(registerSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: fmt.Sprintf("Payroll register %s", period.Label())}); err != nil {
		return err
	}
	return f.Write(w)
}
