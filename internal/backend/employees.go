package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"ems/internal/domain/employee"
)

// employeeRecord carries the password hash the public model never serializes.
type employeeRecord struct {
	employee.Employee
	PasswordHash string `json:"passwordHash,omitempty"`
}

func (r employeeRecord) model() employee.Employee {
	emp := r.Employee
	emp.PasswordHash = r.PasswordHash
	return emp
}

func toRecord(emp employee.Employee) employeeRecord {
	return employeeRecord{Employee: emp, PasswordHash: emp.PasswordHash}
}

func (c *Client) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	var records []employeeRecord
	if err := c.get(ctx, "/employees", nil, nil, &records); err != nil {
		return nil, err
	}
	out := make([]employee.Employee, 0, len(records))
	for _, r := range records {
		out = append(out, r.model())
	}
	return out, nil
}

func (c *Client) GetEmployee(ctx context.Context, id string) (employee.Employee, error) {
	var record employeeRecord
	if err := c.get(ctx, "/employees/"+escape(id), nil, employee.ErrNotFound, &record); err != nil {
		return employee.Employee{}, err
	}
	return record.model(), nil
}

// FindEmployeeByEmail matches either the personal or the official address.
// The backend is asked to filter by each key in turn and answers with a list.
func (c *Client) FindEmployeeByEmail(ctx context.Context, email string) (employee.Employee, error) {
	email = strings.TrimSpace(email)
	for _, key := range []string{"email", "officialEmail"} {
		var records []employeeRecord
		if err := c.get(ctx, "/employees", url.Values{key: {email}}, nil, &records); err != nil {
			return employee.Employee{}, err
		}
		for _, r := range records {
			if sameAddress(r.Email, email) || sameAddress(r.OfficialEmail, email) {
				return r.model(), nil
			}
		}
	}
	return employee.Employee{}, employee.ErrNotFound
}

func sameAddress(stored, email string) bool {
	stored = strings.TrimSpace(stored)
	return stored != "" && strings.EqualFold(stored, email)
}

func (c *Client) CreateEmployee(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	var record employeeRecord
	err := c.send(ctx, http.MethodPost, "/employees", toRecord(emp), nil, &record)
	var status *StatusError
	if errors.As(err, &status) && status.StatusCode == http.StatusConflict {
		return employee.Employee{}, employee.ErrDuplicateEmail
	}
	if err != nil {
		return employee.Employee{}, err
	}
	return record.model(), nil
}

func (c *Client) UpdateEmployee(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	var record employeeRecord
	if err := c.send(ctx, http.MethodPut, "/employees/"+escape(emp.ID), toRecord(emp), employee.ErrNotFound, &record); err != nil {
		return employee.Employee{}, err
	}
	return record.model(), nil
}
