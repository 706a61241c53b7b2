package salary

import (
	"context"
	"errors"

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

const structureColumns = `
    employee_id, version, annual_ctc::text, basic::text, hra::text, special_allowance::text,
    employee_pf::text, employer_pf::text, professional_tax::text, gross_earnings::text, net_salary::text,
    locked, COALESCE(updated_by, ''), updated_at`

func scanStructure(row pgx.Row) (Structure, error) {
	var st Structure
	var amounts [9]string
	err := row.Scan(&st.EmployeeID, &st.Version,
		&amounts[0], &amounts[1], &amounts[2], &amounts[3], &amounts[4], &amounts[5], &amounts[6], &amounts[7], &amounts[8],
		&st.Locked, &st.UpdatedBy, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Structure{}, ErrNotFound
		}
		return Structure{}, err
	}
	targets := []*decimal.Decimal{
		&st.AnnualCTC, &st.Basic, &st.HRA, &st.SpecialAllowance, &st.EmployeeProvidentFund,
		&st.EmployerProvidentFund, &st.ProfessionalTax, &st.GrossEarnings, &st.NetSalary,
	}
	for i, target := range targets {
		if *target, err = decimal.NewFromString(amounts[i]); err != nil {
			return Structure{}, err
		}
	}
	return st, nil
}

func (s *Store) GetSalaryStructure(ctx context.Context, employeeID string) (Structure, error) {
	return scanStructure(s.DB.QueryRow(ctx, `SELECT `+structureColumns+` FROM salary_structures WHERE employee_id = $1`, employeeID))
}

func (s *Store) ListSalaryStructures(ctx context.Context) ([]Structure, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+structureColumns+` FROM salary_structures ORDER BY employee_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Structure
	for rows.Next() {
		st, err := scanStructure(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) SaveSalaryStructure(ctx context.Context, st Structure) (Structure, error) {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO salary_structures (
      employee_id, version, annual_ctc, basic, hra, special_allowance, employee_pf, employer_pf,
      professional_tax, gross_earnings, net_salary, locked, updated_by, updated_at
    ) VALUES ($1,$2,$3::numeric,$4::numeric,$5::numeric,$6::numeric,$7::numeric,$8::numeric,$9::numeric,$10::numeric,$11::numeric,$12,$13,$14)
    ON CONFLICT (employee_id) DO UPDATE SET
      version = EXCLUDED.version, annual_ctc = EXCLUDED.annual_ctc, basic = EXCLUDED.basic, hra = EXCLUDED.hra,
      special_allowance = EXCLUDED.special_allowance, employee_pf = EXCLUDED.employee_pf,
      employer_pf = EXCLUDED.employer_pf, professional_tax = EXCLUDED.professional_tax,
      gross_earnings = EXCLUDED.gross_earnings, net_salary = EXCLUDED.net_salary,
      locked = EXCLUDED.locked, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at
  `, st.EmployeeID, st.Version, st.AnnualCTC.String(), st.Basic.String(), st.HRA.String(), st.SpecialAllowance.String(),
		st.EmployeeProvidentFund.String(), st.EmployerProvidentFund.String(), st.ProfessionalTax.String(),
		st.GrossEarnings.String(), st.NetSalary.String(), st.Locked, nullIfEmpty(st.UpdatedBy), st.UpdatedAt)
	if err != nil {
		return Structure{}, err
	}
	return st, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
