package backend

import (
	"context"
	"net/http"

	"ems/internal/domain/salary"
)

func (c *Client) GetSalaryStructure(ctx context.Context, employeeID string) (salary.Structure, error) {
	var st salary.Structure
	if err := c.get(ctx, "/salary-structures/"+escape(employeeID), nil, salary.ErrNotFound, &st); err != nil {
		return salary.Structure{}, err
	}
	return st, nil
}

// SaveSalaryStructure upserts the structure keyed by employee id.
func (c *Client) SaveSalaryStructure(ctx context.Context, st salary.Structure) (salary.Structure, error) {
	var saved salary.Structure
	if err := c.send(ctx, http.MethodPut, "/salary-structures/"+escape(st.EmployeeID), st, nil, &saved); err != nil {
		return salary.Structure{}, err
	}
	return saved, nil
}

func (c *Client) ListSalaryStructures(ctx context.Context) ([]salary.Structure, error) {
	var out []salary.Structure
	if err := c.get(ctx, "/salary-structures", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
