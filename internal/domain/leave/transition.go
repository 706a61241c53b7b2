package leave

import (
	"fmt"
	"strings"
	"time"
)

// Decide applies a manager or HR decision to a pending request.
func Decide(req Request, target, remarks, actorID string, at time.Time) (Request, error) {
	if req.Status != StatusPending || (target != StatusApproved && target != StatusRejected) {
		return Request{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, req.Status, target)
	}
	remarks = strings.TrimSpace(remarks)
	if target == StatusRejected && remarks == "" {
		return Request{}, ErrRemarksRequired
	}
	decidedAt := at.UTC()
	req.Status = target
	req.Remarks = remarks
	req.DecidedBy = actorID
	req.DecidedAt = &decidedAt
	return req, nil
}

// Cancel withdraws a pending request. Only the requester may cancel.
func Cancel(req Request, actorID string, at time.Time) (Request, error) {
	if req.EmployeeID != actorID {
		return Request{}, ErrForbidden
	}
	if req.Status != StatusPending {
		return Request{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, req.Status, StatusCancelled)
	}
	decidedAt := at.UTC()
	req.Status = StatusCancelled
	req.DecidedBy = actorID
	req.DecidedAt = &decidedAt
	return req, nil
}
