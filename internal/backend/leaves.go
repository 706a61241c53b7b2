package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"ems/internal/domain/leave"
)

func (c *Client) CreateLeave(ctx context.Context, req leave.Request) (leave.Request, error) {
	var created leave.Request
	if err := c.send(ctx, http.MethodPost, "/leaves", req, nil, &created); err != nil {
		return leave.Request{}, err
	}
	return created, nil
}

func (c *Client) GetLeave(ctx context.Context, id string) (leave.Request, error) {
	var req leave.Request
	if err := c.get(ctx, "/leaves/"+escape(id), nil, leave.ErrNotFound, &req); err != nil {
		return leave.Request{}, err
	}
	return req, nil
}

func (c *Client) ListLeaves(ctx context.Context, f leave.Filter) ([]leave.Request, error) {
	var out []leave.Request
	if err := c.get(ctx, "/leaves", listQuery(f.EmployeeIDs, f.Status), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateLeave(ctx context.Context, req leave.Request) (leave.Request, error) {
	var updated leave.Request
	if err := c.send(ctx, http.MethodPut, "/leaves/"+escape(req.ID), req, leave.ErrNotFound, &updated); err != nil {
		return leave.Request{}, err
	}
	return updated, nil
}

func listQuery(employeeIDs []string, status string) url.Values {
	query := url.Values{}
	if len(employeeIDs) > 0 {
		query.Set("employeeId", strings.Join(employeeIDs, ","))
	}
	if status != "" {
		query.Set("status", status)
	}
	return query
}
