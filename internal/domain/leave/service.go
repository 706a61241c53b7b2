package leave

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ems/internal/domain/auth"
	"ems/internal/platform/messaging"
)

type Service struct {
	store        StoreAPI
	employees    EmployeeSource
	events       messaging.Publisher
	entitlements Entitlements
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(store StoreAPI, employees EmployeeSource, events messaging.Publisher, entitlements Entitlements, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if events == nil {
		events = messaging.NoopPublisher{}
	}
	return &Service{
		store:        store,
		employees:    employees,
		events:       events,
		entitlements: entitlements,
		logger:       logger.Named("leave.service"),
		now:          time.Now,
	}
}

// Apply validates and submits a request for the session's employee.
func (s *Service) Apply(ctx context.Context, session auth.Session, in NewRequest) (Request, error) {
	valid, err := ValidateNew(in, s.now())
	if err != nil {
		return Request{}, err
	}
	days, err := CalculateDays(valid.StartDate, valid.EndDate)
	if err != nil {
		return Request{}, err
	}
	emp, err := s.employees.Get(ctx, session.EmployeeID)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		ID:           uuid.NewString(),
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName(),
		Type:         valid.Type,
		StartDate:    valid.StartDate,
		EndDate:      valid.EndDate,
		Days:         days,
		Reason:       valid.Reason,
		Attachment:   valid.Attachment,
		Status:       StatusPending,
		SubmittedAt:  s.now().UTC(),
	}
	created, err := s.store.CreateLeave(ctx, req)
	if err != nil {
		s.logger.Error("create leave request failed", zap.String("employee_id", emp.ID), zap.Error(err))
		return Request{}, err
	}
	s.logger.Info("leave request submitted",
		zap.String("request_id", created.ID),
		zap.String("employee_id", emp.ID),
		zap.String("type", created.Type),
		zap.Int("days", created.Days),
	)
	return created, nil
}

// Mine is the session employee's own history, newest first.
func (s *Service) Mine(ctx context.Context, session auth.Session) ([]Request, error) {
	return s.list(ctx, Filter{EmployeeIDs: []string{session.EmployeeID}})
}

// Queue lists requests the session may decide: direct reports for managers,
// everyone for HR and Admin.
func (s *Service) Queue(ctx context.Context, session auth.Session, status string) ([]Request, error) {
	if session.Can(auth.PermLeaveReadAll) {
		return s.list(ctx, Filter{Status: status})
	}
	if !session.Can(auth.PermLeaveApprove) {
		return nil, ErrForbidden
	}
	ids, err := s.teamIDs(ctx, session.EmployeeID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []Request{}, nil
	}
	return s.list(ctx, Filter{EmployeeIDs: ids, Status: status})
}

func (s *Service) Approve(ctx context.Context, session auth.Session, id, remarks string) (Request, error) {
	return s.decide(ctx, session, id, StatusApproved, remarks)
}

func (s *Service) Reject(ctx context.Context, session auth.Session, id, remarks string) (Request, error) {
	return s.decide(ctx, session, id, StatusRejected, remarks)
}

func (s *Service) Cancel(ctx context.Context, session auth.Session, id string) (Request, error) {
	req, err := s.store.GetLeave(ctx, id)
	if err != nil {
		return Request{}, err
	}
	next, err := Cancel(req, session.EmployeeID, s.now())
	if err != nil {
		return Request{}, err
	}
	return s.save(ctx, session, req.Status, next)
}

// Balances folds an employee's history. Employees only see their own;
// managers see direct reports.
func (s *Service) Balances(ctx context.Context, session auth.Session, employeeID string) ([]Balance, error) {
	if employeeID == "" {
		employeeID = session.EmployeeID
	}
	if err := s.authorizeView(ctx, session, employeeID); err != nil {
		return nil, err
	}
	requests, err := s.store.ListLeaves(ctx, Filter{EmployeeIDs: []string{employeeID}, Status: StatusApproved})
	if err != nil {
		return nil, err
	}
	return Accumulate(requests, s.entitlements), nil
}

// Stats counts the decisions visible to the session.
func (s *Service) Stats(ctx context.Context, session auth.Session) (Stats, error) {
	requests, err := s.Queue(ctx, session, "")
	if err != nil {
		return Stats{}, err
	}
	return CountStatuses(requests), nil
}

func (s *Service) ExportReport(ctx context.Context, session auth.Session, w io.Writer) error {
	requests, err := s.Queue(ctx, session, "")
	if err != nil {
		return err
	}
	return WriteReport(w, requests, s.entitlements)
}

func (s *Service) Entitlements() Entitlements {
	return s.entitlements
}

func (s *Service) decide(ctx context.Context, session auth.Session, id, target, remarks string) (Request, error) {
	req, err := s.store.GetLeave(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if req.EmployeeID == session.EmployeeID {
		return Request{}, ErrForbidden
	}
	if err := s.authorizeDecision(ctx, session, req.EmployeeID); err != nil {
		return Request{}, err
	}
	next, err := Decide(req, target, remarks, session.EmployeeID, s.now())
	if err != nil {
		return Request{}, err
	}
	return s.save(ctx, session, req.Status, next)
}

func (s *Service) save(ctx context.Context, session auth.Session, from string, next Request) (Request, error) {
	updated, err := s.store.UpdateLeave(ctx, next)
	if err != nil {
		s.logger.Error("update leave request failed", zap.String("request_id", next.ID), zap.Error(err))
		return Request{}, err
	}
	event := StatusChanged{RequestID: updated.ID, EmployeeID: updated.EmployeeID, From: from, To: updated.Status, ActorID: session.EmployeeID}
	if err := s.events.Publish(ctx, EventStatusChanged, updated.EmployeeID, event); err != nil {
		s.logger.Warn("publish leave event failed", zap.String("request_id", updated.ID), zap.Error(err))
	}
	s.logger.Info("leave request updated",
		zap.String("request_id", updated.ID),
		zap.String("from", from),
		zap.String("to", updated.Status),
		zap.String("actor", session.EmployeeID),
	)
	return updated, nil
}

func (s *Service) authorizeDecision(ctx context.Context, session auth.Session, employeeID string) error {
	if session.Can(auth.PermLeaveReadAll) && session.Can(auth.PermLeaveApprove) {
		return nil
	}
	if !session.Can(auth.PermLeaveApprove) {
		return ErrForbidden
	}
	return s.requireReport(ctx, session.EmployeeID, employeeID)
}

func (s *Service) authorizeView(ctx context.Context, session auth.Session, employeeID string) error {
	if employeeID == session.EmployeeID || session.Can(auth.PermLeaveReadAll) {
		return nil
	}
	if !session.Can(auth.PermLeaveApprove) {
		return ErrForbidden
	}
	return s.requireReport(ctx, session.EmployeeID, employeeID)
}

func (s *Service) requireReport(ctx context.Context, managerID, employeeID string) error {
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return err
	}
	if emp.ManagerID != managerID {
		return ErrForbidden
	}
	return nil
}

func (s *Service) teamIDs(ctx context.Context, managerID string) ([]string, error) {
	team, err := s.employees.Team(ctx, managerID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(team))
	for _, emp := range team {
		ids = append(ids, emp.ID)
	}
	return ids, nil
}

func (s *Service) list(ctx context.Context, f Filter) ([]Request, error) {
	requests, err := s.store.ListLeaves(ctx, f)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].SubmittedAt.After(requests[j].SubmittedAt)
	})
	return requests, nil
}
