package leave

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
)

type memoryStore struct {
	mu       sync.Mutex
	requests map[string]Request
	creates  int
}

func newMemoryStore(reqs ...Request) *memoryStore {
	m := &memoryStore{requests: map[string]Request{}}
	for _, r := range reqs {
		m.requests[r.ID] = r
	}
	return m
}

func (m *memoryStore) CreateLeave(_ context.Context, req Request) (Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	m.requests[req.ID] = req
	return req, nil
}

func (m *memoryStore) GetLeave(_ context.Context, id string) (Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	return req, nil
}

func (m *memoryStore) ListLeaves(_ context.Context, f Filter) ([]Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Request
	for _, req := range m.requests {
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		if len(f.EmployeeIDs) > 0 && !contains(f.EmployeeIDs, req.EmployeeID) {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (m *memoryStore) UpdateLeave(_ context.Context, req Request) (Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[req.ID]; !ok {
		return Request{}, ErrNotFound
	}
	m.requests[req.ID] = req
	return req, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type directory []employee.Employee

func (d directory) Get(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range d {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrNotFound
}

func (d directory) Team(_ context.Context, managerID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range d {
		if e.ManagerID == managerID {
			out = append(out, e)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType, key string, _ any) error {
	p.events = append(p.events, eventType+":"+key)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var (
	staff = directory{
		{ID: "e1", FirstName: "Asha", LastName: "Rao", ManagerID: "m1"},
		{ID: "e2", FirstName: "Vikram", LastName: "Shah", ManagerID: "m2"},
		{ID: "m1", FirstName: "Meera", LastName: "Iyer"},
	}
	asEmployee = auth.Session{EmployeeID: "e1", Role: auth.RoleEmployee}
	asManager  = auth.Session{EmployeeID: "m1", Role: auth.RoleManager}
	asHR       = auth.Session{EmployeeID: "h1", Role: auth.RoleHR}
)

func newTestService(reqs ...Request) (*Service, *memoryStore, *recordingPublisher) {
	store := newMemoryStore(reqs...)
	events := &recordingPublisher{}
	svc := NewService(store, staff, events, DefaultEntitlements(), nil)
	svc.now = func() time.Time { return time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC) }
	return svc, store, events
}

func TestApply(t *testing.T) {
	svc, store, _ := newTestService()

	req, err := svc.Apply(context.Background(), asEmployee, NewRequest{
		Type: "Casual", StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 5), Reason: "family function",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, "e1", req.EmployeeID)
	assert.Equal(t, "Asha Rao", req.EmployeeName)
	assert.Equal(t, 5, req.Days)
	assert.Equal(t, StatusPending, req.Status)
	assert.Equal(t, 1, store.creates)
}

func TestApplyValidatesBeforeStoring(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.Apply(context.Background(), asEmployee, NewRequest{
		Type: "Casual", StartDate: day(2025, 1, 5), EndDate: day(2025, 1, 1), Reason: "oops",
	})
	assert.ErrorIs(t, err, ErrEndBeforeStart)
	assert.Zero(t, store.creates)
}

func TestApproveFlowUpdatesBalance(t *testing.T) {
	svc, _, events := newTestService(Request{
		ID: "lr-1", EmployeeID: "e1", Type: TypeCasual, Status: StatusPending,
		StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 5), Days: 5,
	})
	ctx := context.Background()

	before, err := svc.Balances(ctx, asEmployee, "")
	require.NoError(t, err)
	assert.Equal(t, 12, before[0].Remaining)

	out, err := svc.Approve(ctx, asManager, "lr-1", "")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, out.Status)
	assert.Equal(t, "m1", out.DecidedBy)
	assert.Equal(t, []string{EventStatusChanged + ":e1"}, events.events)

	after, err := svc.Balances(ctx, asEmployee, "")
	require.NoError(t, err)
	assert.Equal(t, Balance{Type: TypeCasual, Total: 12, Taken: 5, Remaining: 7}, after[0])

	_, err = svc.Reject(ctx, asManager, "lr-1", "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestManagerScope(t *testing.T) {
	svc, _, _ := newTestService(
		Request{ID: "lr-1", EmployeeID: "e1", Type: TypeSick, Status: StatusPending, SubmittedAt: day(2025, 1, 1)},
		Request{ID: "lr-2", EmployeeID: "e2", Type: TypeSick, Status: StatusPending, SubmittedAt: day(2025, 1, 2)},
	)
	ctx := context.Background()

	queue, err := svc.Queue(ctx, asManager, StatusPending)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, "lr-1", queue[0].ID)

	_, err = svc.Approve(ctx, asManager, "lr-2", "")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Balances(ctx, asManager, "e2")
	assert.ErrorIs(t, err, ErrForbidden)

	all, err := svc.Queue(ctx, asHR, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "lr-2", all[0].ID)

	_, err = svc.Queue(ctx, asEmployee, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRejectRequiresRemarks(t *testing.T) {
	svc, store, events := newTestService(Request{ID: "lr-1", EmployeeID: "e1", Type: TypeSick, Status: StatusPending})

	_, err := svc.Reject(context.Background(), asHR, "lr-1", "")
	assert.ErrorIs(t, err, ErrRemarksRequired)
	assert.Equal(t, StatusPending, store.requests["lr-1"].Status)
	assert.Empty(t, events.events)
}

func TestCancelIsRequesterOnly(t *testing.T) {
	svc, _, _ := newTestService(Request{ID: "lr-1", EmployeeID: "e1", Type: TypeSick, Status: StatusPending})
	ctx := context.Background()

	_, err := svc.Cancel(ctx, asManager, "lr-1")
	assert.ErrorIs(t, err, ErrForbidden)

	out, err := svc.Cancel(ctx, asEmployee, "lr-1")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, out.Status)

	_, err = svc.Approve(ctx, asManager, "lr-1", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSelfApprovalForbidden(t *testing.T) {
	svc, _, _ := newTestService(Request{ID: "lr-1", EmployeeID: "h1", Type: TypeSick, Status: StatusPending})

	_, err := svc.Approve(context.Background(), asHR, "lr-1", "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestStatsAndExport(t *testing.T) {
	svc, _, _ := newTestService(
		Request{ID: "lr-1", EmployeeID: "e1", EmployeeName: "Asha Rao", Type: TypeCasual, Status: StatusApproved, StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 2)},
		Request{ID: "lr-2", EmployeeID: "e2", EmployeeName: "Vikram Shah", Type: TypeSick, Status: StatusPending, StartDate: day(2025, 1, 3), EndDate: day(2025, 1, 3)},
	)
	ctx := context.Background()

	stats, err := svc.Stats(ctx, asHR)
	require.NoError(t, err)
	assert.Equal(t, Stats{Pending: 1, Approved: 1}, stats)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportReport(ctx, asHR, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(requestsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	balances, err := f.GetRows(balancesSheet)
	require.NoError(t, err)
	assert.Len(t, balances, 1+2*len(Types))
}
