package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/domain/auth"
	"ems/internal/domain/payroll"
)

type recordingRunner struct {
	requests chan payroll.RunRequest
	session  auth.Session
}

func (r *recordingRunner) Run(_ context.Context, session auth.Session, req payroll.RunRequest) (payroll.RunResult, error) {
	r.session = session
	r.requests <- req
	return payroll.RunResult{Period: req.Period}, nil
}

func TestEnqueuePayrollRunsPreviousMonth(t *testing.T) {
	runner := &recordingRunner{requests: make(chan payroll.RunRequest, 1)}
	svc := New(runner, "", nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, svc.Start(ctx))

	svc.EnqueuePayroll(time.Date(2025, 1, 1, 2, 0, 0, 0, time.UTC))

	select {
	case req := <-runner.requests:
		assert.Equal(t, payroll.Period{Month: 12, Year: 2024}, req.Period)
		assert.Empty(t, req.EmployeeIDs)
	case <-time.After(2 * time.Second):
		t.Fatal("payroll job did not run")
	}
}

func TestRunNowRecordsOutcome(t *testing.T) {
	svc := New(nil, "", nil)
	ctx := context.Background()

	_, err := svc.RunNow(ctx, "ok", func(context.Context) (any, error) { return map[string]int{"n": 1}, nil })
	require.NoError(t, err)
	_, err = svc.RunNow(ctx, "broken", func(context.Context) (any, error) { return nil, errors.New("boom") })
	require.Error(t, err)

	runs := svc.Runs()
	require.Len(t, runs, 2)
	assert.Equal(t, "broken", runs[0].Type)
	assert.Equal(t, StatusFailed, runs[0].Status)
	assert.Equal(t, "boom", runs[0].Error)
	assert.Equal(t, StatusCompleted, runs[1].Status)
	assert.NotNil(t, runs[1].CompletedAt)
}

func TestRunsAreBounded(t *testing.T) {
	svc := New(nil, "", nil)
	for i := 0; i < maxRuns+5; i++ {
		_, _ = svc.RunNow(context.Background(), "noop", func(context.Context) (any, error) { return nil, nil })
	}
	assert.Len(t, svc.Runs(), maxRuns)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	svc := New(nil, "not a schedule", nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Error(t, svc.Start(ctx))
}
