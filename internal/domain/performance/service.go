package performance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/platform/messaging"
)

type Service struct {
	store     StoreAPI
	employees EmployeeSource
	events    messaging.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(store StoreAPI, employees EmployeeSource, events messaging.Publisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if events == nil {
		events = messaging.NoopPublisher{}
	}
	return &Service{
		store:     store,
		employees: employees,
		events:    events,
		logger:    logger.Named("performance.service"),
		now:       time.Now,
	}
}

// StartCycle opens an unscored Pending review per employee, assigned to the
// employee's manager. Unknown employees and employees with a review still
// pending are skipped.
func (s *Service) StartCycle(ctx context.Context, session auth.Session, cycle Cycle) (CycleResult, error) {
	if !session.Can(auth.PermReviewsStartCycle) {
		return CycleResult{}, ErrForbidden
	}
	if len(cycle.EmployeeIDs) == 0 {
		return CycleResult{}, ErrNoEmployees
	}
	if cycle.PeriodStart.IsZero() || cycle.PeriodEnd.IsZero() || cycle.PeriodEnd.Before(cycle.PeriodStart) {
		return CycleResult{}, ErrInvalidPeriod
	}

	all, err := s.employees.List(ctx)
	if err != nil {
		return CycleResult{}, err
	}
	byID := indexEmployees(all)
	pending, err := s.store.ListReviews(ctx, Filter{EmployeeIDs: cycle.EmployeeIDs, Status: StatusPending})
	if err != nil {
		return CycleResult{}, err
	}
	open := map[string]bool{}
	for _, r := range pending {
		open[r.EmployeeID] = true
	}

	result := CycleResult{Created: []Review{}, Skipped: []Skipped{}}
	seen := map[string]bool{}
	for _, id := range cycle.EmployeeIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		emp, ok := byID[id]
		if !ok {
			result.Skipped = append(result.Skipped, Skipped{EmployeeID: id, Reason: SkipEmployeeNotFound})
			continue
		}
		if open[id] {
			result.Skipped = append(result.Skipped, Skipped{EmployeeID: id, Reason: SkipAlreadyPending})
			continue
		}
		review := Review{
			ID:           uuid.NewString(),
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName(),
			ReviewerID:   emp.ManagerID,
			PeriodStart:  cycle.PeriodStart,
			PeriodEnd:    cycle.PeriodEnd,
			Status:       StatusPending,
			CreatedAt:    s.now().UTC(),
		}
		if manager, ok := byID[emp.ManagerID]; ok {
			review.ReviewerName = manager.FullName()
		}
		created, err := s.store.CreateReview(ctx, review)
		if err != nil {
			return result, err
		}
		result.Created = append(result.Created, created)
	}
	s.logger.Info("review cycle started",
		zap.String("actor", session.EmployeeID),
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// Submit scores a pending review. Managers may only score direct reports.
func (s *Service) Submit(ctx context.Context, session auth.Session, id string, scores Scores, comments string) (Review, error) {
	if !session.Can(auth.PermReviewsSubmit) {
		return Review{}, ErrForbidden
	}
	if err := scores.Validate(); err != nil {
		return Review{}, err
	}
	if strings.TrimSpace(comments) == "" {
		return Review{}, ErrCommentsRequired
	}
	review, err := s.store.GetReview(ctx, id)
	if err != nil {
		return Review{}, err
	}
	if review.EmployeeID == session.EmployeeID {
		return Review{}, ErrForbidden
	}
	if !session.Can(auth.PermReviewsReadAll) {
		if err := s.requireReport(ctx, session.EmployeeID, review.EmployeeID); err != nil {
			return Review{}, err
		}
	}
	if review.Status != StatusPending {
		return Review{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, review.Status, StatusCompleted)
	}

	rating := OverallRating(scores)
	submittedAt := s.now().UTC()
	review.Scores = &scores
	review.Comments = strings.TrimSpace(comments)
	review.OverallRating = &rating
	review.ReviewerID = session.EmployeeID
	if reviewer, err := s.employees.Get(ctx, session.EmployeeID); err == nil {
		review.ReviewerName = reviewer.FullName()
	}
	review.Status = StatusCompleted
	review.SubmittedAt = &submittedAt

	updated, err := s.store.UpdateReview(ctx, review)
	if err != nil {
		return Review{}, err
	}
	s.publish(ctx, EventReviewSubmitted, updated)
	s.logger.Info("review submitted",
		zap.String("review_id", updated.ID),
		zap.String("employee_id", updated.EmployeeID),
		zap.String("rating", rating.StringFixed(2)),
	)
	return updated, nil
}

// Acknowledge is done by the reviewed employee on a completed review.
func (s *Service) Acknowledge(ctx context.Context, session auth.Session, id string) (Review, error) {
	review, err := s.store.GetReview(ctx, id)
	if err != nil {
		return Review{}, err
	}
	if review.EmployeeID != session.EmployeeID {
		return Review{}, ErrForbidden
	}
	if review.Status != StatusCompleted {
		return Review{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, review.Status, StatusAcknowledged)
	}
	at := s.now().UTC()
	review.Status = StatusAcknowledged
	review.AcknowledgedAt = &at

	updated, err := s.store.UpdateReview(ctx, review)
	if err != nil {
		return Review{}, err
	}
	s.publish(ctx, EventReviewAcknowledged, updated)
	return updated, nil
}

// ForEmployee lists an employee's reviews, newest period first.
func (s *Service) ForEmployee(ctx context.Context, session auth.Session, employeeID string) ([]Review, error) {
	if employeeID == "" {
		employeeID = session.EmployeeID
	}
	if err := s.authorizeView(ctx, session, employeeID); err != nil {
		return nil, err
	}
	reviews, err := s.store.ListReviews(ctx, Filter{EmployeeIDs: []string{employeeID}})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(reviews)
	return reviews, nil
}

func (s *Service) Latest(ctx context.Context, session auth.Session, employeeID string) (Review, error) {
	reviews, err := s.ForEmployee(ctx, session, employeeID)
	if err != nil {
		return Review{}, err
	}
	if len(reviews) == 0 {
		return Review{}, ErrNotFound
	}
	return reviews[0], nil
}

// All lists every review visible to the session. Reviews whose employee no
// longer exists are dropped.
func (s *Service) All(ctx context.Context, session auth.Session, status string) ([]Review, error) {
	var (
		roster []employee.Employee
		err    error
	)
	switch {
	case session.Can(auth.PermReviewsReadAll):
		roster, err = s.employees.List(ctx)
	case session.Can(auth.PermReviewsSubmit):
		roster, err = s.employees.Team(ctx, session.EmployeeID)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	byID := indexEmployees(roster)
	if len(byID) == 0 {
		return []Review{}, nil
	}

	f := Filter{Status: status}
	if !session.Can(auth.PermReviewsReadAll) {
		for id := range byID {
			f.EmployeeIDs = append(f.EmployeeIDs, id)
		}
		sort.Strings(f.EmployeeIDs)
	}
	reviews, err := s.store.ListReviews(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		emp, ok := byID[r.EmployeeID]
		if !ok {
			s.logger.Warn("dropping review for missing employee", zap.String("review_id", r.ID), zap.String("employee_id", r.EmployeeID))
			continue
		}
		if r.EmployeeName == "" {
			r.EmployeeName = emp.FullName()
		}
		out = append(out, r)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *Service) Summary(ctx context.Context, session auth.Session) (Summary, error) {
	if !session.Can(auth.PermReviewsReadAll) {
		return Summary{}, ErrForbidden
	}
	reviews, err := s.All(ctx, session, "")
	if err != nil {
		return Summary{}, err
	}
	return buildSummary(reviews), nil
}

func (s *Service) authorizeView(ctx context.Context, session auth.Session, employeeID string) error {
	if employeeID == session.EmployeeID || session.Can(auth.PermReviewsReadAll) {
		return nil
	}
	if !session.Can(auth.PermReviewsSubmit) {
		return ErrForbidden
	}
	return s.requireReport(ctx, session.EmployeeID, employeeID)
}

func (s *Service) requireReport(ctx context.Context, managerID, employeeID string) error {
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if emp.ManagerID != managerID {
		return ErrForbidden
	}
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, r Review) {
	event := ReviewEvent{ReviewID: r.ID, EmployeeID: r.EmployeeID, ReviewerID: r.ReviewerID, Status: r.Status}
	if r.OverallRating != nil {
		event.OverallRating = *r.OverallRating
	}
	if err := s.events.Publish(ctx, eventType, r.EmployeeID, event); err != nil {
		s.logger.Warn("publish review event failed", zap.String("review_id", r.ID), zap.Error(err))
	}
}

func indexEmployees(all []employee.Employee) map[string]employee.Employee {
	byID := make(map[string]employee.Employee, len(all))
	for _, emp := range all {
		byID[emp.ID] = emp
	}
	return byID
}

func sortNewestFirst(reviews []Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		if !reviews[i].PeriodEnd.Equal(reviews[j].PeriodEnd) {
			return reviews[i].PeriodEnd.After(reviews[j].PeriodEnd)
		}
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
}
