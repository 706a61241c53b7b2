package payroll

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/domain/salary"
	"ems/internal/platform/messaging"
	"ems/internal/platform/money"
)

type Service struct {
	store      StoreAPI
	employees  EmployeeSource
	structures StructureSource
	events     messaging.Publisher
	format     money.Formatter
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(store StoreAPI, employees EmployeeSource, structures StructureSource, events messaging.Publisher, format money.Formatter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if events == nil {
		events = messaging.NoopPublisher{}
	}
	return &Service{
		store:      store,
		employees:  employees,
		structures: structures,
		events:     events,
		format:     format,
		logger:     logger.Named("payroll.service"),
		now:        time.Now,
	}
}

// Run generates payslips for every selected employee for one period. Items
// are independent: one failure never blocks or rolls back another.
func (s *Service) Run(ctx context.Context, session auth.Session, req RunRequest) (RunResult, error) {
	if err := req.Period.Validate(); err != nil {
		return RunResult{}, err
	}
	all, err := s.employees.List(ctx)
	if err != nil {
		return RunResult{}, err
	}
	existing, err := s.store.ListPayslips(ctx, Filter{Month: req.Period.Month, Year: req.Period.Year})
	if err != nil {
		return RunResult{}, err
	}
	paid := make(map[string]bool, len(existing))
	for _, p := range existing {
		paid[p.EmployeeID] = true
	}

	selected := selectEmployees(all, req.EmployeeIDs)
	result := RunResult{Period: req.Period, Generated: []Payslip{}, Skipped: []RunItem{}, Failed: []RunItem{}}
	order := make(map[string]int, len(selected))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runConcurrency)
	for i, emp := range selected {
		order[emp.ID] = i
		if reason := precheck(emp, paid); reason != "" {
			mu.Lock()
			result.Skipped = append(result.Skipped, RunItem{EmployeeID: emp.ID, Reason: reason})
			mu.Unlock()
			continue
		}
		emp := emp
		g.Go(func() error {
			slip, skip, err := s.generateOne(gctx, session, emp, req.Period)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Failed = append(result.Failed, RunItem{EmployeeID: emp.ID, Reason: err.Error()})
			case skip != "":
				result.Skipped = append(result.Skipped, RunItem{EmployeeID: emp.ID, Reason: skip})
			default:
				result.Generated = append(result.Generated, slip)
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(result.Generated, func(i, j int) bool {
		return order[result.Generated[i].EmployeeID] < order[result.Generated[j].EmployeeID]
	})
	sortItems(result.Skipped, order)
	sortItems(result.Failed, order)

	s.logger.Info("payroll run finished",
		zap.String("period", req.Period.Label()),
		zap.String("actor", session.EmployeeID),
		zap.Int("generated", len(result.Generated)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

func (s *Service) generateOne(ctx context.Context, session auth.Session, emp employee.Employee, period Period) (Payslip, string, error) {
	st, err := s.structures.Current(ctx, emp.ID)
	if errors.Is(err, salary.ErrNotFound) {
		return Payslip{}, SkipNoStructure, nil
	}
	if err != nil {
		return Payslip{}, "", err
	}

	slip, err := Generate(emp, st, period, s.now())
	if err != nil {
		return Payslip{}, "", err
	}
	slip.GeneratedBy = session.EmployeeID

	created, err := s.store.CreatePayslip(ctx, slip)
	if err != nil {
		s.logger.Error("create payslip failed", zap.String("employee_id", emp.ID), zap.Error(err))
		return Payslip{}, "", err
	}
	if err := s.structures.Lock(ctx, st); err != nil {
		s.logger.Warn("lock salary structure failed", zap.String("employee_id", emp.ID), zap.Error(err))
	}
	event := PayslipGenerated{PayslipID: created.ID, EmployeeID: emp.ID, Month: period.Month, Year: period.Year, NetPay: created.NetPay}
	if err := s.events.Publish(ctx, EventPayslipGenerated, emp.ID, event); err != nil {
		s.logger.Warn("publish payslip event failed", zap.String("payslip_id", created.ID), zap.Error(err))
	}
	return created, "", nil
}

// List returns payslip views newest first. Callers without payroll.read_all
// only ever see their own payslips. Malformed records are dropped.
func (s *Service) List(ctx context.Context, session auth.Session, f Filter) ([]View, error) {
	payslips, err := s.list(ctx, session, f)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(payslips))
	for _, p := range payslips {
		views = append(views, NewView(p))
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, session auth.Session, id string) (View, error) {
	p, err := s.store.GetPayslip(ctx, id)
	if err != nil {
		return View{}, err
	}
	if !session.Can(auth.PermPayrollReadAll) && p.EmployeeID != session.EmployeeID {
		return View{}, ErrForbidden
	}
	return NewView(p), nil
}

// Summary folds the payslips of one employee in year, or all years when
// year is zero.
func (s *Service) Summary(ctx context.Context, session auth.Session, employeeID string, year int) (Summary, error) {
	if employeeID == "" {
		employeeID = session.EmployeeID
	}
	payslips, err := s.list(ctx, session, Filter{EmployeeID: employeeID, Year: year})
	if err != nil {
		return Summary{}, err
	}
	return Summarize(payslips), nil
}

func (s *Service) RenderPDF(ctx context.Context, session auth.Session, id string, w io.Writer) (View, error) {
	view, err := s.Get(ctx, session, id)
	if err != nil {
		return View{}, err
	}
	return view, WritePayslipPDF(w, view, s.format)
}

func (s *Service) ExportRegister(ctx context.Context, session auth.Session, period Period, w io.Writer) error {
	if err := period.Validate(); err != nil {
		return err
	}
	payslips, err := s.list(ctx, session, Filter{Month: period.Month, Year: period.Year})
	if err != nil {
		return err
	}
	views := make([]View, 0, len(payslips))
	for _, p := range payslips {
		views = append(views, NewView(p))
	}
	return WriteRegister(w, period, views)
}

func (s *Service) list(ctx context.Context, session auth.Session, f Filter) ([]Payslip, error) {
	if !session.Can(auth.PermPayrollReadAll) {
		if f.EmployeeID != "" && f.EmployeeID != session.EmployeeID {
			return nil, ErrForbidden
		}
		f.EmployeeID = session.EmployeeID
	}
	payslips, err := s.store.ListPayslips(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]Payslip, 0, len(payslips))
	for _, p := range payslips {
		if !Wellformed(p) {
			s.logger.Warn("skipping malformed payslip", zap.String("payslip_id", p.ID), zap.String("employee_id", p.EmployeeID))
			continue
		}
		out = append(out, p)
	}
	SortNewestFirst(out)
	return out, nil
}

func SortNewestFirst(payslips []Payslip) {
	sort.SliceStable(payslips, func(i, j int) bool {
		a, b := payslips[i], payslips[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Month != b.Month {
			return a.Month > b.Month
		}
		return a.GeneratedAt.After(b.GeneratedAt)
	})
}

func precheck(emp employee.Employee, paid map[string]bool) string {
	switch {
	case emp.Status != employee.StatusActive:
		return SkipNotActive
	case paid[emp.ID]:
		return SkipAlreadyGenerated
	}
	return ""
}

func selectEmployees(all []employee.Employee, ids []string) []employee.Employee {
	if len(ids) == 0 {
		return all
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []employee.Employee
	for _, emp := range all {
		if wanted[emp.ID] {
			out = append(out, emp)
		}
	}
	return out
}

func sortItems(items []RunItem, order map[string]int) {
	sort.SliceStable(items, func(i, j int) bool {
		return order[items[i].EmployeeID] < order[items[j].EmployeeID]
	})
}
