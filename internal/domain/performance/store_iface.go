package performance

import (
	"context"

	"ems/internal/domain/employee"
)

type StoreAPI interface {
	CreateReview(ctx context.Context, r Review) (Review, error)
	GetReview(ctx context.Context, id string) (Review, error)
	ListReviews(ctx context.Context, f Filter) ([]Review, error)
	UpdateReview(ctx context.Context, r Review) (Review, error)
}

type EmployeeSource interface {
	Get(ctx context.Context, id string) (employee.Employee, error)
	List(ctx context.Context) ([]employee.Employee, error)
	Team(ctx context.Context, managerID string) ([]employee.Employee, error)
}
