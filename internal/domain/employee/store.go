package employee

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"ems/internal/platform/querier"
)

// Store is the Postgres implementation of StoreAPI.
type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id, first_name, last_name, email,
    COALESCE(official_email, ''), COALESCE(mobile, ''), COALESCE(alternate_mobile, ''),
    COALESCE(designation, ''), role, status, date_of_joining, annual_ctc::text,
    COALESCE(manager_id, ''), password_hash,
    COALESCE(identity_document, ''), laptop_assigned, orientation_date, payroll_enrolled,
    id_card_returned, laptop_returned, knowledge_transfer, exit_interview, final_settlement, last_working_day,
    created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	var ctc string
	err := row.Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.OfficialEmail, &emp.Mobile, &emp.AlternateMobile,
		&emp.Designation, &emp.Role, &emp.Status, &emp.DateOfJoining, &ctc,
		&emp.ManagerID, &emp.PasswordHash,
		&emp.Onboarding.IdentityDocument, &emp.Onboarding.LaptopAssigned, &emp.Onboarding.OrientationDate, &emp.Onboarding.PayrollEnrolled,
		&emp.Exit.IDCardReturned, &emp.Exit.LaptopReturned, &emp.Exit.KnowledgeTransfer, &emp.Exit.ExitInterview, &emp.Exit.FinalSettlement, &emp.Exit.LastWorkingDay,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, err
	}
	emp.AnnualCTC, err = decimal.NewFromString(ctc)
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY first_name, last_name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
}

func (s *Store) FindEmployeeByEmail(ctx context.Context, email string) (Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanEmployee(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE lower(email) = $1 OR lower(official_email) = $1
    LIMIT 1
  `, email))
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employees (
      id, first_name, last_name, email, official_email, mobile, alternate_mobile,
      designation, role, status, date_of_joining, annual_ctc, manager_id, password_hash,
      created_at, updated_at
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12::numeric,$13,$14,$15,$16)
  `, emp.ID, emp.FirstName, emp.LastName, emp.Email, nullIfEmpty(emp.OfficialEmail), nullIfEmpty(emp.Mobile),
		nullIfEmpty(emp.AlternateMobile), nullIfEmpty(emp.Designation), emp.Role, emp.Status, emp.DateOfJoining,
		emp.AnnualCTC.String(), nullIfEmpty(emp.ManagerID), emp.PasswordHash, emp.CreatedAt, emp.UpdatedAt)
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees SET
      first_name = $2, last_name = $3, email = $4, official_email = $5, mobile = $6,
      alternate_mobile = $7, designation = $8, role = $9, status = $10, date_of_joining = $11,
      annual_ctc = $12::numeric, manager_id = $13,
      identity_document = $14, laptop_assigned = $15, orientation_date = $16, payroll_enrolled = $17,
      id_card_returned = $18, laptop_returned = $19, knowledge_transfer = $20, exit_interview = $21,
      final_settlement = $22, last_working_day = $23, updated_at = $24
    WHERE id = $1
  `, emp.ID, emp.FirstName, emp.LastName, emp.Email, nullIfEmpty(emp.OfficialEmail), nullIfEmpty(emp.Mobile),
		nullIfEmpty(emp.AlternateMobile), nullIfEmpty(emp.Designation), emp.Role, emp.Status, emp.DateOfJoining,
		emp.AnnualCTC.String(), nullIfEmpty(emp.ManagerID),
		nullIfEmpty(emp.Onboarding.IdentityDocument), emp.Onboarding.LaptopAssigned, emp.Onboarding.OrientationDate, emp.Onboarding.PayrollEnrolled,
		emp.Exit.IDCardReturned, emp.Exit.LaptopReturned, emp.Exit.KnowledgeTransfer, emp.Exit.ExitInterview,
		emp.Exit.FinalSettlement, emp.Exit.LastWorkingDay, emp.UpdatedAt)
	if err != nil {
		return Employee{}, err
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, ErrNotFound
	}
	return emp, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
