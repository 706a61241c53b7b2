package leave

import (
	"context"

	"ems/internal/domain/employee"
)

// StoreAPI persists leave requests. GetLeave returns ErrNotFound for
// unknown ids.
type StoreAPI interface {
	CreateLeave(ctx context.Context, req Request) (Request, error)
	GetLeave(ctx context.Context, id string) (Request, error)
	ListLeaves(ctx context.Context, f Filter) ([]Request, error)
	UpdateLeave(ctx context.Context, req Request) (Request, error)
}

type EmployeeSource interface {
	Get(ctx context.Context, id string) (employee.Employee, error)
	Team(ctx context.Context, managerID string) ([]employee.Employee, error)
}
