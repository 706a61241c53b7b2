package performance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"ems/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const reviewColumns = `
    id, employee_id, COALESCE(employee_name, ''), COALESCE(reviewer_id, ''), COALESCE(reviewer_name, ''),
    period_start, period_end,
    goals_achieved, communication, technical_skills, teamwork, leadership, punctuality,
    COALESCE(comments, ''), overall_rating::text, status, created_at, submitted_at, acknowledged_at`

func scanReview(row pgx.Row) (Review, error) {
	var (
		r                                    Review
		goals, comm, tech, team, lead, punct *int
		rating                               *string
	)
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.EmployeeName, &r.ReviewerID, &r.ReviewerName,
		&r.PeriodStart, &r.PeriodEnd,
		&goals, &comm, &tech, &team, &lead, &punct,
		&r.Comments, &rating, &r.Status, &r.CreatedAt, &r.SubmittedAt, &r.AcknowledgedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	if goals != nil && comm != nil && tech != nil && team != nil && lead != nil && punct != nil {
		r.Scores = &Scores{
			GoalsAchieved: *goals, Communication: *comm, TechnicalSkills: *tech,
			Teamwork: *team, Leadership: *lead, Punctuality: *punct,
		}
	}
	if rating != nil {
		d, err := decimal.NewFromString(*rating)
		if err != nil {
			return Review{}, err
		}
		r.OverallRating = &d
	}
	return r, nil
}

func scoreArgs(r Review) []interface{} {
	if r.Scores == nil {
		return []interface{}{nil, nil, nil, nil, nil, nil}
	}
	s := r.Scores
	return []interface{}{s.GoalsAchieved, s.Communication, s.TechnicalSkills, s.Teamwork, s.Leadership, s.Punctuality}
}

func ratingArg(r Review) *string {
	if r.OverallRating == nil {
		return nil
	}
	v := r.OverallRating.StringFixed(2)
	return &v
}

func (s *Store) CreateReview(ctx context.Context, r Review) (Review, error) {
	args := []interface{}{r.ID, r.EmployeeID, r.EmployeeName, r.ReviewerID, r.ReviewerName, r.PeriodStart, r.PeriodEnd}
	args = append(args, scoreArgs(r)...)
	args = append(args, r.Comments, ratingArg(r), r.Status, r.CreatedAt)
	return scanReview(s.DB.QueryRow(ctx, `
        INSERT INTO reviews (
            id, employee_id, employee_name, reviewer_id, reviewer_name, period_start, period_end,
            goals_achieved, communication, technical_skills, teamwork, leadership, punctuality,
            comments, overall_rating, status, created_at
        )
        VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7,
            $8, $9, $10, $11, $12, $13, NULLIF($14, ''), $15::numeric, $16, $17)
        RETURNING `+reviewColumns, args...))
}

func (s *Store) GetReview(ctx context.Context, id string) (Review, error) {
	return scanReview(s.DB.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
}

func (s *Store) ListReviews(ctx context.Context, f Filter) ([]Review, error) {
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
	query := `SELECT ` + reviewColumns + ` FROM reviews`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY period_end DESC, created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) UpdateReview(ctx context.Context, r Review) (Review, error) {
	args := []interface{}{r.ID, r.ReviewerID, r.ReviewerName}
	args = append(args, scoreArgs(r)...)
	args = append(args, r.Comments, ratingArg(r), r.Status, r.SubmittedAt, r.AcknowledgedAt)
	return scanReview(s.DB.QueryRow(ctx, `
        UPDATE reviews
        SET reviewer_id = NULLIF($2, ''), reviewer_name = NULLIF($3, ''),
            goals_achieved = $4, communication = $5, technical_skills = $6,
            teamwork = $7, leadership = $8, punctuality = $9,
            comments = NULLIF($10, ''), overall_rating = $11::numeric, status = $12,
            submitted_at = $13, acknowledged_at = $14
        WHERE id = $1
        RETURNING `+reviewColumns, args...))
}
