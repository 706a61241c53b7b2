package dashboard

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/domain/leave"
	"ems/internal/domain/payroll"
	"ems/internal/domain/performance"
)

type Directory interface {
	List(ctx context.Context) ([]employee.Employee, error)
	Team(ctx context.Context, managerID string) ([]employee.Employee, error)
}

type LeaveReader interface {
	Queue(ctx context.Context, session auth.Session, status string) ([]leave.Request, error)
	Balances(ctx context.Context, session auth.Session, employeeID string) ([]leave.Balance, error)
}

type ReviewReader interface {
	All(ctx context.Context, session auth.Session, status string) ([]performance.Review, error)
	Latest(ctx context.Context, session auth.Session, employeeID string) (performance.Review, error)
}

type PayslipReader interface {
	Summary(ctx context.Context, session auth.Session, employeeID string, year int) (payroll.Summary, error)
}

type Service struct {
	directory Directory
	leave     LeaveReader
	reviews   ReviewReader
	payslips  PayslipReader
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(directory Directory, leave LeaveReader, reviews ReviewReader, payslips PayslipReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		directory: directory,
		leave:     leave,
		reviews:   reviews,
		payslips:  payslips,
		logger:    logger.Named("dashboard.service"),
		now:       time.Now,
	}
}

// Snapshot builds the dashboard for the session: HR and Admin get the
// organization overview, managers their team plus their own figures,
// everyone else their own figures.
func (s *Service) Snapshot(ctx context.Context, session auth.Session) (Snapshot, error) {
	if !session.Can(auth.PermDashboardRead) {
		return Snapshot{}, ErrForbidden
	}
	snap := Snapshot{Role: session.Role}
	var err error
	switch {
	case session.IsPrivileged():
		snap.Organization, err = s.organization(ctx, session)
	case session.IsManager():
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			snap.Team, err = s.team(gctx, session)
			return err
		})
		g.Go(func() error {
			var err error
			snap.Personal, err = s.personal(gctx, session)
			return err
		})
		err = g.Wait()
	default:
		snap.Personal, err = s.personal(ctx, session)
	}
	if err != nil {
		s.logger.Error("dashboard snapshot failed", zap.String("employee_id", session.EmployeeID), zap.Error(err))
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *Service) organization(ctx context.Context, session auth.Session) (*OrganizationOverview, error) {
	var (
		all     []employee.Employee
		leaves  []leave.Request
		reviews []performance.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		all, err = s.directory.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		leaves, err = s.leave.Queue(gctx, session, leave.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = s.reviews.All(gctx, session, performance.StatusPending)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &OrganizationOverview{
		Headcount:      len(all),
		ByStatus:       map[string]int{},
		PendingLeave:   len(leaves),
		PendingReviews: len(reviews),
	}
	for _, emp := range all {
		out.ByStatus[emp.Status]++
		if emp.Onboarding.PayrollEnrolled {
			out.PayrollEnrolled++
		}
	}
	out.Onboarding = out.ByStatus[employee.StatusOnboarding]
	out.Exiting = out.ByStatus[employee.StatusExiting]
	return out, nil
}

func (s *Service) team(ctx context.Context, session auth.Session) (*TeamOverview, error) {
	var (
		members []employee.Employee
		leaves  []leave.Request
		reviews []performance.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		members, err = s.directory.Team(gctx, session.EmployeeID)
		return err
	})
	g.Go(func() (err error) {
		leaves, err = s.leave.Queue(gctx, session, leave.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		reviews, err = s.reviews.All(gctx, session, performance.StatusPending)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &TeamOverview{TeamSize: len(members), PendingApprovals: len(leaves), PendingReviews: len(reviews)}, nil
}

func (s *Service) personal(ctx context.Context, session auth.Session) (*PersonalOverview, error) {
	out := &PersonalOverview{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.LeaveBalances, err = s.leave.Balances(gctx, session, session.EmployeeID)
		return err
	})
	g.Go(func() (err error) {
		out.Payslips, err = s.payslips.Summary(gctx, session, session.EmployeeID, s.now().Year())
		return err
	})
	g.Go(func() error {
		review, err := s.reviews.Latest(gctx, session, session.EmployeeID)
		if errors.Is(err, performance.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out.LatestReview = &review
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
