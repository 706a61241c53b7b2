package payroll

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"ems/internal/platform/money"
)

// WritePayslipPDF renders a single payslip as an A4 document.
func WritePayslipPDF(w io.Writer, v View, format money.Formatter) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s", v.PayPeriod), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", format.Name(v.EmployeeName)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employee ID: %s", v.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Pay period: %s", v.PayPeriod))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", v.GeneratedAt.Format("2006-01-02")))
	pdf.Ln(12)

	writeSection(pdf, "Earnings", v.Earnings, format)
	writeSection(pdf, "Deductions", v.Deductions, format)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 8, "Gross earnings", "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, format.Currency(v.GrossEarnings), "", 1, "R", false, 0, "")
	pdf.CellFormat(120, 8, "Total deductions", "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, format.Currency(v.TotalDeductions), "", 1, "R", false, 0, "")
	pdf.CellFormat(120, 8, "Net pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, format.Currency(v.NetPay), "T", 1, "R", false, 0, "")

	return pdf.Output(w)
}

func writeSection(pdf *gofpdf.Fpdf, title string, items []LineItem, format money.Formatter) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	if len(items) == 0 {
		pdf.Cell(0, 7, "None")
		pdf.Ln(9)
		return
	}
	for _, item := range items {
		pdf.CellFormat(120, 7, item.Label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, format.Currency(item.Amount), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}
