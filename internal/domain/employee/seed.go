package employee

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"ems/internal/domain/auth"
)

// EnsureAdmin creates an active Admin account for email unless an employee
// with that email already exists. It reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}
	_, err := s.store.FindEmployeeByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	created, err := s.Create(ctx, NewEmployee{
		FirstName:   "System",
		LastName:    "Administrator",
		Email:       email,
		Password:    password,
		Designation: "Administrator",
		Role:        auth.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	created.Status = StatusActive
	if _, err := s.save(ctx, created, zap.String("seed", "admin")); err != nil {
		return false, err
	}
	return true, nil
}
