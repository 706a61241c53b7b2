package payroll

import (
	"context"

	"ems/internal/domain/employee"
	"ems/internal/domain/salary"
)

// StoreAPI is append only: payslips are never updated or deleted.
type StoreAPI interface {
	CreatePayslip(ctx context.Context, p Payslip) (Payslip, error)
	ListPayslips(ctx context.Context, f Filter) ([]Payslip, error)
	GetPayslip(ctx context.Context, id string) (Payslip, error)
}

type EmployeeSource interface {
	List(ctx context.Context) ([]employee.Employee, error)
}

type StructureSource interface {
	Current(ctx context.Context, employeeID string) (salary.Structure, error)
	Lock(ctx context.Context, st salary.Structure) error
}
