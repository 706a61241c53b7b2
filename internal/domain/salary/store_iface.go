package salary

import (
	"context"

	"ems/internal/domain/employee"
)

// StoreAPI persists the current structure per employee.
// GetSalaryStructure returns ErrNotFound when none exists.
type StoreAPI interface {
	GetSalaryStructure(ctx context.Context, employeeID string) (Structure, error)
	SaveSalaryStructure(ctx context.Context, st Structure) (Structure, error)
	ListSalaryStructures(ctx context.Context) ([]Structure, error)
}

type EmployeeDirectory interface {
	Get(ctx context.Context, id string) (employee.Employee, error)
	MarkPayrollEnrolled(ctx context.Context, id string) error
}
