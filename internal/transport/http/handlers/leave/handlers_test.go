package leavehandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/domain/leave"
	"ems/internal/platform/messaging"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
)

type memoryLeaves struct {
	mu       sync.Mutex
	requests map[string]leave.Request
}

func (m *memoryLeaves) CreateLeave(_ context.Context, req leave.Request) (leave.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = req
	return req, nil
}

func (m *memoryLeaves) GetLeave(_ context.Context, id string) (leave.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrNotFound
	}
	return req, nil
}

func (m *memoryLeaves) ListLeaves(_ context.Context, f leave.Filter) ([]leave.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []leave.Request
	for _, req := range m.requests {
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		if len(f.EmployeeIDs) > 0 && !containsID(f.EmployeeIDs, req.EmployeeID) {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (m *memoryLeaves) UpdateLeave(_ context.Context, req leave.Request) (leave.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = req
	return req, nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type staticEmployees map[string]employee.Employee

func (s staticEmployees) Get(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := s[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	return emp, nil
}

func (s staticEmployees) Team(_ context.Context, managerID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range s {
		if emp.ManagerID == managerID {
			out = append(out, emp)
		}
	}
	return out, nil
}

var (
	employeeSession = auth.Session{EmployeeID: "emp-1", Role: auth.RoleEmployee}
	managerSession  = auth.Session{EmployeeID: "mgr-1", Role: auth.RoleManager}
)

func newService() (*leave.Service, *memoryLeaves) {
	store := &memoryLeaves{requests: map[string]leave.Request{}}
	employees := staticEmployees{
		"mgr-1": {ID: "mgr-1", FirstName: "Meera", Role: auth.RoleManager},
		"emp-1": {ID: "emp-1", FirstName: "Arjun", Role: auth.RoleEmployee, ManagerID: "mgr-1"},
	}
	return leave.NewService(store, employees, messaging.NoopPublisher{}, leave.DefaultEntitlements(), nil), store
}

func newRouter(svc Leave, session auth.Session) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithSession(req.Context(), session)))
		})
	})
	NewHandler(svc, nil).RegisterRoutes(r, nil)
	return r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func applyBody(offsetDays, length int) string {
	start := time.Now().AddDate(0, 0, offsetDays)
	end := start.AddDate(0, 0, length-1)
	return `{"type":"casual","startDate":"` + start.Format("2006-01-02") + `","endDate":"` + end.Format("2006-01-02") + `","reason":"family trip"}`
}

func TestApplyApproveAndBalances(t *testing.T) {
	svc, _ := newService()

	rec := serve(newRouter(svc, employeeSession), http.MethodPost, "/leave/requests", applyBody(7, 3))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env struct {
		Data leave.Request `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, leave.TypeCasual, env.Data.Type)
	assert.Equal(t, 3, env.Data.Days)

	rec = serve(newRouter(svc, employeeSession), http.MethodPost, "/leave/requests/"+env.Data.ID+"/approve", `{}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(newRouter(svc, managerSession), http.MethodPost, "/leave/requests/"+env.Data.ID+"/approve", `{"remarks":"enjoy"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(newRouter(svc, managerSession), http.MethodPost, "/leave/requests/"+env.Data.ID+"/reject", `{"remarks":"late"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(newRouter(svc, employeeSession), http.MethodGet, "/leave/balances", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var balances struct {
		Data []leave.Balance `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &balances))
	for _, b := range balances.Data {
		if b.Type == leave.TypeCasual {
			assert.Equal(t, 3, b.Taken)
			assert.Equal(t, 9, b.Remaining)
		}
	}
}

func TestApplyValidation(t *testing.T) {
	svc, store := newService()

	rec := serve(newRouter(svc, employeeSession), http.MethodPost, "/leave/requests", `{"type":"casual","startDate":"tomorrow","endDate":"2030-01-01","reason":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(newRouter(svc, employeeSession), http.MethodPost, "/leave/requests", applyBody(-3, 1))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var env api.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, leave.ErrStartInPast.Error(), env.Error.Message)
	assert.Empty(t, store.requests)
}

func TestRejectRequiresRemarks(t *testing.T) {
	svc, store := newService()
	store.requests["lr-1"] = leave.Request{ID: "lr-1", EmployeeID: "emp-1", Type: leave.TypeSick, Status: leave.StatusPending, Days: 1}

	rec := serve(newRouter(svc, managerSession), http.MethodPost, "/leave/requests/lr-1/reject", `{"remarks":"  "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, leave.StatusPending, store.requests["lr-1"].Status)
}

func TestQueueAndCancel(t *testing.T) {
	svc, store := newService()
	store.requests["lr-1"] = leave.Request{ID: "lr-1", EmployeeID: "emp-1", Type: leave.TypeSick, Status: leave.StatusPending, Days: 1}

	rec := serve(newRouter(svc, managerSession), http.MethodGet, "/leave/requests?status=Pending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lr-1")

	rec = serve(newRouter(svc, managerSession), http.MethodGet, "/leave/requests?status=Unknown", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(newRouter(svc, employeeSession), http.MethodGet, "/leave/requests", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(newRouter(svc, managerSession), http.MethodPost, "/leave/requests/lr-1/cancel", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(newRouter(svc, employeeSession), http.MethodPost, "/leave/requests/lr-1/cancel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, leave.StatusCancelled, store.requests["lr-1"].Status)
}

func TestReportDownload(t *testing.T) {
	svc, _ := newService()
	rec := serve(newRouter(svc, managerSession), http.MethodGet, "/leave/report.xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "leave-report-")
	assert.NotZero(t, rec.Body.Len())
}
