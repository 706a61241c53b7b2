package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ems/internal/platform/messaging"
	"ems/internal/platform/querier"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// Event is one domain event as kept in the audit trail.
type Event struct {
	ID         string          `json:"id"`
	EventType  string          `json:"eventType"`
	EmployeeID string          `json:"employeeId"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

type Filter struct {
	EventType  string
	EmployeeID string
	Limit      int
	Offset     int
}

type StoreAPI interface {
	InsertEvent(ctx context.Context, evt Event) error
	ListEvents(ctx context.Context, f Filter) ([]Event, error)
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) InsertEvent(ctx context.Context, evt Event) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (id, event_type, employee_id, payload, occurred_at)
    VALUES ($1, $2, NULLIF($3, ''), $4, $5)
  `, evt.ID, evt.EventType, evt.EmployeeID, []byte(evt.Payload), evt.OccurredAt)
	return err
}

func (s *Store) ListEvents(ctx context.Context, f Filter) ([]Event, error) {
	var (
		where []string
		args  []any
	)
	if f.EventType != "" {
		args = append(args, f.EventType)
		where = append(where, fmt.Sprintf("event_type = $%d", len(args)))
	}
	if f.EmployeeID != "" {
		args = append(args, f.EmployeeID)
		where = append(where, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	query := "SELECT id, event_type, COALESCE(employee_id, ''), payload, occurred_at FROM audit_events"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY occurred_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var evt Event
		var payload []byte
		if err := rows.Scan(&evt.ID, &evt.EventType, &evt.EmployeeID, &payload, &evt.OccurredAt); err != nil {
			return nil, err
		}
		evt.Payload = payload
		out = append(out, evt)
	}
	return out, rows.Err()
}

// Trail records every published event before handing it to the next
// publisher. A failed write is logged and does not block publishing.
type Trail struct {
	store  StoreAPI
	next   messaging.Publisher
	logger *zap.Logger
	now    func() time.Time
}

func NewTrail(store StoreAPI, next messaging.Publisher, logger *zap.Logger) *Trail {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Trail{store: store, next: next, logger: logger.Named("audit"), now: time.Now}
}

func (t *Trail) Publish(ctx context.Context, eventType, key string, payload any) error {
	evt := Event{
		ID:         uuid.NewString(),
		EventType:  eventType,
		EmployeeID: key,
		OccurredAt: t.now().UTC(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		evt.Payload = raw
	}
	if err := t.store.InsertEvent(ctx, evt); err != nil {
		t.logger.Warn("audit write failed", zap.String("event_type", eventType), zap.Error(err))
	}
	return t.next.Publish(ctx, eventType, key, payload)
}

func (t *Trail) Close() error {
	return t.next.Close()
}

// Events lists recorded events newest first, with the page size clamped.
func (t *Trail) Events(ctx context.Context, f Filter) ([]Event, error) {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	events, err := t.store.ListEvents(ctx, f)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}
