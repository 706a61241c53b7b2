package employee

import "context"

// StoreAPI is implemented by the HTTP backend client and the Postgres store.
// GetEmployee and FindEmployeeByEmail return ErrNotFound for unknown records.
type StoreAPI interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	FindEmployeeByEmail(ctx context.Context, email string) (Employee, error)
	CreateEmployee(ctx context.Context, emp Employee) (Employee, error)
	UpdateEmployee(ctx context.Context, emp Employee) (Employee, error)
}
