package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"ems/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const requestColumns = `
    id, employee_id, COALESCE(employee_name, ''), leave_type, start_date, end_date, days,
    reason, COALESCE(attachment, ''), status, COALESCE(remarks, ''), COALESCE(decided_by, ''),
    decided_at, submitted_at`

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.EmployeeName, &req.Type, &req.StartDate, &req.EndDate, &req.Days,
		&req.Reason, &req.Attachment, &req.Status, &req.Remarks, &req.DecidedBy,
		&req.DecidedAt, &req.SubmittedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

func (s *Store) CreateLeave(ctx context.Context, req Request) (Request, error) {
	return scanRequest(s.DB.QueryRow(ctx, `
        INSERT INTO leave_requests (
            id, employee_id, employee_name, leave_type, start_date, end_date, days,
            reason, attachment, status, submitted_at
        )
        VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11)
        RETURNING `+requestColumns,
		req.ID, req.EmployeeID, req.EmployeeName, req.Type, req.StartDate, req.EndDate, req.Days,
		req.Reason, req.Attachment, req.Status, req.SubmittedAt,
	))
}

func (s *Store) GetLeave(ctx context.Context, id string) (Request, error) {
	return scanRequest(s.DB.QueryRow(ctx, `SELECT `+requestColumns+` FROM leave_requests WHERE id = $1`, id))
}

func (s *Store) ListLeaves(ctx context.Context, f Filter) ([]Request, error) {
	var (
		where []string
		args  []interface{}
	)
	if len(f.EmployeeIDs) > 0 {
		args = append(args, f.EmployeeIDs)
		where = append(where, fmt.Sprintf("employee_id = ANY($%d)", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	query := `SELECT ` + requestColumns + ` FROM leave_requests`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY submitted_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// UpdateLeave records a decision only while the request is still Pending, so
// a concurrent decision that landed first wins and this one is refused.
func (s *Store) UpdateLeave(ctx context.Context, req Request) (Request, error) {
	updated, err := scanRequest(s.DB.QueryRow(ctx, `
        UPDATE leave_requests
        SET status = $2, remarks = NULLIF($3, ''), decided_by = NULLIF($4, ''), decided_at = $5
        WHERE id = $1 AND status = $6
        RETURNING `+requestColumns,
		req.ID, req.Status, req.Remarks, req.DecidedBy, req.DecidedAt, StatusPending,
	))
	if !errors.Is(err, ErrNotFound) {
		return updated, err
	}

	var current string
	err = s.DB.QueryRow(ctx, `SELECT status FROM leave_requests WHERE id = $1`, req.ID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	if err != nil {
		return Request{}, err
	}
	return Request{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current, req.Status)
}
