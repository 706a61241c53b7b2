package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"ems/internal/domain/auth"
)

type Service struct {
	store  StoreAPI
	rdb    redis.Cmdable
	ttl    time.Duration
	sf     *singleflight.Group
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires the employee directory. rdb may be nil, in which case
// every read goes to the store.
func NewService(store StoreAPI, rdb redis.Cmdable, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		store:  store,
		rdb:    rdb,
		ttl:    ttl,
		sf:     &singleflight.Group{},
		logger: logger.Named("employee.service"),
		now:    time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, listCacheKey).Result()
		switch {
		case err == nil:
			var out []Employee
			if json.Unmarshal([]byte(cached), &out) == nil {
				return out, nil
			}
			s.logger.Warn("discarding unreadable employee cache entry")
		case !errors.Is(err, redis.Nil):
			s.logger.Warn("employee cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(listCacheKey, func() (interface{}, error) {
		emps, err := s.store.ListEmployees(ctx)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if payload, err := json.Marshal(emps); err == nil {
				if err := s.rdb.Set(ctx, listCacheKey, string(payload), s.ttl).Err(); err != nil {
					s.logger.Warn("employee cache write failed", zap.Error(err))
				}
			}
		}
		return emps, nil
	})
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, err
	}
	return v.([]Employee), nil
}

func (s *Service) Get(ctx context.Context, id string) (Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

// Team returns the direct reports of managerID.
func (s *Service) Team(ctx context.Context, managerID string) ([]Employee, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Employee
	for _, emp := range all {
		if emp.ManagerID == managerID {
			out = append(out, emp)
		}
	}
	return out, nil
}

// ValidateNew checks a create request without touching the store.
func ValidateNew(in NewEmployee) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return fmt.Errorf("%w: firstName", ErrMissingRequiredField)
	}
	if !ValidEmail(strings.TrimSpace(in.Email)) {
		return ErrInvalidEmail
	}
	if len(in.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if in.Role != "" && !auth.ValidRole(in.Role) {
		return ErrInvalidRole
	}
	if in.AnnualCTC.IsNegative() {
		return fmt.Errorf("%w: annualCtc must be non-negative", ErrInvalidFieldValue)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in NewEmployee) (Employee, error) {
	if err := ValidateNew(in); err != nil {
		return Employee{}, err
	}
	email := strings.TrimSpace(in.Email)

	all, err := s.store.ListEmployees(ctx)
	if err != nil {
		return Employee{}, err
	}
	if emailTaken(all, email, "") {
		return Employee{}, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return Employee{}, err
	}
	role := in.Role
	if role == "" {
		role = auth.RoleEmployee
	}
	now := s.now().UTC()
	emp := Employee{
		ID:            uuid.NewString(),
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Email:         email,
		Mobile:        strings.TrimSpace(in.Mobile),
		Designation:   strings.TrimSpace(in.Designation),
		Role:          role,
		Status:        StatusOnboarding,
		DateOfJoining: in.DateOfJoining,
		AnnualCTC:     in.AnnualCTC,
		ManagerID:     in.ManagerID,
		PasswordHash:  hash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.store.CreateEmployee(ctx, emp)
	if err != nil {
		s.logger.Error("create employee failed", zap.String("email", email), zap.Error(err))
		return Employee{}, err
	}
	s.invalidate(ctx)
	s.logger.Info("employee created", zap.String("employee_id", created.ID), zap.String("role", created.Role))
	return created, nil
}

func (s *Service) UpdateField(ctx context.Context, id, field, value string) (Employee, error) {
	emp, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if err := ApplyField(&emp, field, value); err != nil {
		return Employee{}, err
	}
	if field == "officialEmail" || field == "email" {
		all, err := s.store.ListEmployees(ctx)
		if err != nil {
			return Employee{}, err
		}
		address := emp.OfficialEmail
		if field == "email" {
			address = emp.Email
		}
		if address != "" && emailTaken(all, address, emp.ID) {
			return Employee{}, ErrDuplicateEmail
		}
	}
	return s.save(ctx, emp, zap.String("field", field))
}

func (s *Service) Checklist(ctx context.Context, id string) (Checklist, error) {
	emp, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return Checklist{}, err
	}
	return ChecklistFor(emp), nil
}

func (s *Service) CompleteOnboarding(ctx context.Context, id string) (Employee, error) {
	return s.transition(ctx, id, StatusActive)
}

func (s *Service) BeginExit(ctx context.Context, id string) (Employee, error) {
	return s.transition(ctx, id, StatusExiting)
}

func (s *Service) FinalizeExit(ctx context.Context, id string) (Employee, error) {
	return s.transition(ctx, id, StatusResigned)
}

// MarkPayrollEnrolled ticks the payroll item of the onboarding checklist.
func (s *Service) MarkPayrollEnrolled(ctx context.Context, id string) error {
	emp, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return err
	}
	if emp.Onboarding.PayrollEnrolled {
		return nil
	}
	emp.Onboarding.PayrollEnrolled = true
	_, err = s.save(ctx, emp, zap.String("field", "payrollEnrolled"))
	return err
}

// CredentialsByEmail matches either the personal or the official address.
func (s *Service) CredentialsByEmail(ctx context.Context, email string) (auth.Credentials, error) {
	emp, err := s.store.FindEmployeeByEmail(ctx, email)
	if err != nil {
		return auth.Credentials{}, err
	}
	return auth.Credentials{
		EmployeeID:   emp.ID,
		Email:        email,
		Role:         emp.Role,
		Status:       emp.Status,
		PasswordHash: emp.PasswordHash,
	}, nil
}

func (s *Service) transition(ctx context.Context, id, target string) (Employee, error) {
	emp, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	next, err := NextStatus(emp, target)
	if err != nil {
		if errors.Is(err, ErrChecklistIncomplete) {
			missing := ChecklistFor(emp).Missing()
			return Employee{}, fmt.Errorf("%w: %s", err, strings.Join(missing, ", "))
		}
		return Employee{}, fmt.Errorf("%w: %s to %s", err, emp.Status, target)
	}
	from := emp.Status
	emp.Status = next
	return s.save(ctx, emp, zap.String("from", from), zap.String("to", next))
}

func (s *Service) save(ctx context.Context, emp Employee, fields ...zap.Field) (Employee, error) {
	emp.UpdatedAt = s.now().UTC()
	updated, err := s.store.UpdateEmployee(ctx, emp)
	if err != nil {
		s.logger.Error("update employee failed", append(fields, zap.String("employee_id", emp.ID), zap.Error(err))...)
		return Employee{}, err
	}
	s.invalidate(ctx)
	s.logger.Info("employee updated", append(fields, zap.String("employee_id", emp.ID))...)
	return updated, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, listCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate employee cache", zap.String("key", listCacheKey), zap.Error(err))
	}
}

func emailTaken(all []Employee, email, exceptID string) bool {
	for _, emp := range all {
		if emp.ID == exceptID {
			continue
		}
		if strings.EqualFold(emp.Email, email) || (emp.OfficialEmail != "" && strings.EqualFold(emp.OfficialEmail, email)) {
			return true
		}
	}
	return false
}
