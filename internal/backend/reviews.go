package backend

import (
	"context"
	"net/http"

	"ems/internal/domain/performance"
)

func (c *Client) CreateReview(ctx context.Context, r performance.Review) (performance.Review, error) {
	var created performance.Review
	if err := c.send(ctx, http.MethodPost, "/reviews", r, nil, &created); err != nil {
		return performance.Review{}, err
	}
	return created, nil
}

func (c *Client) GetReview(ctx context.Context, id string) (performance.Review, error) {
	var r performance.Review
	if err := c.get(ctx, "/reviews/"+escape(id), nil, performance.ErrNotFound, &r); err != nil {
		return performance.Review{}, err
	}
	return r, nil
}

func (c *Client) ListReviews(ctx context.Context, f performance.Filter) ([]performance.Review, error) {
	var out []performance.Review
	if err := c.get(ctx, "/reviews", listQuery(f.EmployeeIDs, f.Status), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateReview(ctx context.Context, r performance.Review) (performance.Review, error) {
	var updated performance.Review
	if err := c.send(ctx, http.MethodPut, "/reviews/"+escape(r.ID), r, performance.ErrNotFound, &updated); err != nil {
		return performance.Review{}, err
	}
	return updated, nil
}
