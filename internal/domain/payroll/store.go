package payroll

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

const payslipColumns = `
    id, employee_id, employee_name, structure_version, month, year,
    basic::text, hra::text, special_allowance::text, employee_pf::text, employer_pf::text,
    professional_tax::text, gross_earnings::text, total_deductions::text, net_pay::text,
    COALESCE(generated_by, ''), generated_at`

func scanPayslip(row pgx.Row) (Payslip, error) {
	var p Payslip
	var amounts [9]string
	err := row.Scan(&p.ID, &p.EmployeeID, &p.EmployeeName, &p.StructureVersion, &p.Month, &p.Year,
		&amounts[0], &amounts[1], &amounts[2], &amounts[3], &amounts[4], &amounts[5], &amounts[6], &amounts[7], &amounts[8],
		&p.GeneratedBy, &p.GeneratedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Payslip{}, ErrNotFound
		}
		return Payslip{}, err
	}
	targets := []*decimal.Decimal{
		&p.Basic, &p.HRA, &p.SpecialAllowance, &p.EmployeeProvidentFund, &p.EmployerProvidentFund,
		&p.ProfessionalTax, &p.GrossEarnings, &p.TotalDeductions, &p.NetPay,
	}
	for i, target := range targets {
		if *target, err = decimal.NewFromString(amounts[i]); err != nil {
			return Payslip{}, err
		}
	}
	return p, nil
}

func (s *Store) CreatePayslip(ctx context.Context, p Payslip) (Payslip, error) {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO payslips (
      id, employee_id, employee_name, structure_version, month, year,
      basic, hra, special_allowance, employee_pf, employer_pf, professional_tax,
      gross_earnings, total_deductions, net_pay, generated_by, generated_at
    ) VALUES ($1,$2,$3,$4,$5,$6,$7::numeric,$8::numeric,$9::numeric,$10::numeric,$11::numeric,$12::numeric,$13::numeric,$14::numeric,$15::numeric,$16,$17)
  `, p.ID, p.EmployeeID, p.EmployeeName, p.StructureVersion, p.Month, p.Year,
		p.Basic.String(), p.HRA.String(), p.SpecialAllowance.String(), p.EmployeeProvidentFund.String(),
		p.EmployerProvidentFund.String(), p.ProfessionalTax.String(), p.GrossEarnings.String(),
		p.TotalDeductions.String(), p.NetPay.String(), nullIfEmpty(p.GeneratedBy), p.GeneratedAt)
	if err != nil {
		return Payslip{}, err
	}
	return p, nil
}

func (s *Store) GetPayslip(ctx context.Context, id string) (Payslip, error) {
	return scanPayslip(s.DB.QueryRow(ctx, `SELECT `+payslipColumns+` FROM payslips WHERE id = $1`, id))
}

func (s *Store) ListPayslips(ctx context.Context, f Filter) ([]Payslip, error) {
	var where []string
	var args []any
	if f.EmployeeID != "" {
		args = append(args, f.EmployeeID)
		where = append(where, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if f.Month != 0 {
		args = append(args, f.Month)
		where = append(where, fmt.Sprintf("month = $%d", len(args)))
	}
	if f.Year != 0 {
		args = append(args, f.Year)
		where = append(where, fmt.Sprintf("year = $%d", len(args)))
	}
	query := `SELECT ` + payslipColumns + ` FROM payslips`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY year DESC, month DESC, generated_at DESC`

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
