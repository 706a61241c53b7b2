package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"ems/internal/domain/payroll"
)

func (c *Client) CreatePayslip(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	var created payroll.Payslip
	if err := c.send(ctx, http.MethodPost, "/payslips", p, nil, &created); err != nil {
		return payroll.Payslip{}, err
	}
	return created, nil
}

func (c *Client) ListPayslips(ctx context.Context, f payroll.Filter) ([]payroll.Payslip, error) {
	query := url.Values{}
	if f.EmployeeID != "" {
		query.Set("employeeId", f.EmployeeID)
	}
	if f.Month != 0 {
		query.Set("month", strconv.Itoa(f.Month))
	}
	if f.Year != 0 {
		query.Set("year", strconv.Itoa(f.Year))
	}
	var out []payroll.Payslip
	if err := c.get(ctx, "/payslips", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPayslip(ctx context.Context, id string) (payroll.Payslip, error) {
	var p payroll.Payslip
	if err := c.get(ctx, "/payslips/"+escape(id), nil, payroll.ErrNotFound, &p); err != nil {
		return payroll.Payslip{}, err
	}
	return p, nil
}
