package payroll

const (
	LabelBasic            = "Basic Salary"
	LabelHRA              = "House Rent Allowance (HRA)"
	LabelSpecialAllowance = "Special Allowance"
	LabelProvidentFund    = "Provident Fund (PF)"
	LabelProfessionalTax  = "Professional Tax"

	SkipNotActive        = "employee is not active"
	SkipNoStructure      = "no salary structure"
	SkipAlreadyGenerated = "payslip already generated for period"

	EventPayslipGenerated = "payslip.generated"

	runConcurrency = 4
)
