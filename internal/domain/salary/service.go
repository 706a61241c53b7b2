package salary

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"ems/internal/domain/auth"
)

type Service struct {
	store     StoreAPI
	employees EmployeeDirectory
	policy    Policy
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(store StoreAPI, employees EmployeeDirectory, policy Policy, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		employees: employees,
		policy:    policy,
		logger:    logger.Named("salary.service"),
		now:       time.Now,
	}
}

func (s *Service) Policy() Policy {
	return s.policy
}

// Draft loads the stored components as-is, or proposes policy defaults when
// the employee has no structure yet.
func (s *Service) Draft(ctx context.Context, employeeID string) (Draft, error) {
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return Draft{}, err
	}

	current, err := s.store.GetSalaryStructure(ctx, employeeID)
	switch {
	case errors.Is(err, ErrNotFound):
		return s.draft(employeeID, s.policy.Defaults(emp.AnnualCTC), nil), nil
	case err != nil:
		return Draft{}, err
	}

	in := Input{
		AnnualCTC:       emp.AnnualCTC,
		Basic:           current.Basic,
		HRA:             current.HRA,
		ProfessionalTax: current.ProfessionalTax,
	}
	return s.draft(employeeID, in, &current), nil
}

// Preview recalculates for user-entered components without saving.
func (s *Service) Preview(ctx context.Context, employeeID string, c Components) (Draft, error) {
	if err := c.Validate(); err != nil {
		return Draft{}, err
	}
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return Draft{}, err
	}
	current, err := s.store.GetSalaryStructure(ctx, employeeID)
	var existing *Structure
	switch {
	case err == nil:
		existing = &current
	case !errors.Is(err, ErrNotFound):
		return Draft{}, err
	}
	in := Input{AnnualCTC: emp.AnnualCTC, Basic: c.Basic, HRA: c.HRA, ProfessionalTax: c.ProfessionalTax}
	return s.draft(employeeID, in, existing), nil
}

// Save validates the components and stores them as the current structure.
// Saving over a locked structure creates the next version. The employee's
// payroll enrolment checklist item is ticked on success.
func (s *Service) Save(ctx context.Context, session auth.Session, employeeID string, c Components) (Structure, error) {
	if err := c.Validate(); err != nil {
		return Structure{}, err
	}
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return Structure{}, err
	}

	breakdown := s.policy.Calculate(Input{AnnualCTC: emp.AnnualCTC, Basic: c.Basic, HRA: c.HRA, ProfessionalTax: c.ProfessionalTax})
	if err := breakdown.Validate(); err != nil {
		return Structure{}, err
	}

	version := 1
	current, err := s.store.GetSalaryStructure(ctx, employeeID)
	switch {
	case err == nil:
		version = current.Version
		if current.Locked {
			version++
		}
	case !errors.Is(err, ErrNotFound):
		return Structure{}, err
	}

	st := NewStructure(employeeID, emp.AnnualCTC, breakdown)
	st.Version = version
	st.UpdatedBy = session.EmployeeID
	st.UpdatedAt = s.now().UTC()

	saved, err := s.store.SaveSalaryStructure(ctx, st)
	if err != nil {
		s.logger.Error("save salary structure failed", zap.String("employee_id", employeeID), zap.Error(err))
		return Structure{}, err
	}
	if err := s.employees.MarkPayrollEnrolled(ctx, employeeID); err != nil {
		s.logger.Warn("mark payroll enrolled failed", zap.String("employee_id", employeeID), zap.Error(err))
	}
	s.logger.Info("salary structure saved",
		zap.String("employee_id", employeeID),
		zap.Int("version", saved.Version),
		zap.String("actor", session.EmployeeID),
	)
	return saved, nil
}

func (s *Service) Current(ctx context.Context, employeeID string) (Structure, error) {
	return s.store.GetSalaryStructure(ctx, employeeID)
}

func (s *Service) List(ctx context.Context) ([]Structure, error) {
	return s.store.ListSalaryStructures(ctx)
}

// Lock marks the structure as referenced by a payslip. Locking an already
// locked structure is a no-op.
func (s *Service) Lock(ctx context.Context, st Structure) error {
	if st.Locked {
		return nil
	}
	st.Locked = true
	if _, err := s.store.SaveSalaryStructure(ctx, st); err != nil {
		return err
	}
	s.logger.Debug("salary structure locked", zap.String("employee_id", st.EmployeeID), zap.Int("version", st.Version))
	return nil
}

func (s *Service) draft(employeeID string, in Input, existing *Structure) Draft {
	breakdown := s.policy.Calculate(in)
	d := Draft{
		EmployeeID: employeeID,
		Input:      in,
		Breakdown:  breakdown.Display(),
		Valid:      true,
	}
	if existing != nil {
		d.Existing = true
		d.Version = existing.Version
		d.Locked = existing.Locked
	}
	if err := breakdown.Validate(); err != nil {
		d.Valid = false
		d.Problem = err.Error()
	}
	return d
}
