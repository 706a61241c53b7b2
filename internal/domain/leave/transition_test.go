package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingRequest() Request {
	return Request{ID: "lr-1", EmployeeID: "emp-1", Type: TypeCasual, Status: StatusPending}
}

func TestDecideApprove(t *testing.T) {
	at := time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	out, err := Decide(pendingRequest(), StatusApproved, "  enjoy  ", "mgr-1", at)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, out.Status)
	assert.Equal(t, "enjoy", out.Remarks)
	assert.Equal(t, "mgr-1", out.DecidedBy)
	require.NotNil(t, out.DecidedAt)
	assert.True(t, out.DecidedAt.Equal(at))
}

func TestDecideRejectRequiresRemarks(t *testing.T) {
	_, err := Decide(pendingRequest(), StatusRejected, "   ", "mgr-1", time.Now())
	assert.ErrorIs(t, err, ErrRemarksRequired)

	out, err := Decide(pendingRequest(), StatusRejected, "project deadline", "mgr-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, out.Status)
}

func TestDecideFromTerminalStatus(t *testing.T) {
	for _, status := range []string{StatusApproved, StatusRejected, StatusCancelled} {
		req := pendingRequest()
		req.Status = status
		for _, target := range []string{StatusApproved, StatusRejected} {
			_, err := Decide(req, target, "remarks", "mgr-1", time.Now())
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s to %s", status, target)
		}
	}
}

func TestDecideUnknownTarget(t *testing.T) {
	_, err := Decide(pendingRequest(), StatusPending, "", "mgr-1", time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel(t *testing.T) {
	_, err := Cancel(pendingRequest(), "someone-else", time.Now())
	assert.ErrorIs(t, err, ErrForbidden)

	out, err := Cancel(pendingRequest(), "emp-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, out.Status)

	_, err = Cancel(out, "emp-1", time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
