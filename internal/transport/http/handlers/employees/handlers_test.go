package employeeshandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/transport/http/middleware"
)

type fakeDirectory struct {
	employees map[string]employee.Employee
	created   []employee.NewEmployee
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{employees: map[string]employee.Employee{
		"hr-1":  {ID: "hr-1", Role: auth.RoleHR, Status: employee.StatusActive},
		"mgr-1": {ID: "mgr-1", Role: auth.RoleManager, Status: employee.StatusActive},
		"emp-1": {
			ID: "emp-1", Role: auth.RoleEmployee, ManagerID: "mgr-1", Status: employee.StatusActive,
			Email: "asha@home.example", Mobile: "9800000001", AnnualCTC: decimal.NewFromInt(600000),
		},
		"emp-2": {ID: "emp-2", Role: auth.RoleEmployee, Status: employee.StatusActive},
	}}
}

func (f *fakeDirectory) List(context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeDirectory) Get(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	return e, nil
}

func (f *fakeDirectory) Team(_ context.Context, managerID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.ManagerID == managerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeDirectory) Create(_ context.Context, in employee.NewEmployee) (employee.Employee, error) {
	f.created = append(f.created, in)
	return employee.Employee{ID: "new", Email: in.Email, Role: in.Role}, nil
}

func (f *fakeDirectory) UpdateField(ctx context.Context, id, field, value string) (employee.Employee, error) {
	e, err := f.Get(ctx, id)
	if err != nil {
		return e, err
	}
	return e, employee.ApplyField(&e, field, value)
}

func (f *fakeDirectory) Checklist(ctx context.Context, id string) (employee.Checklist, error) {
	e, err := f.Get(ctx, id)
	if err != nil {
		return employee.Checklist{}, err
	}
	return employee.ChecklistFor(e), nil
}

func (f *fakeDirectory) CompleteOnboarding(context.Context, string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrChecklistIncomplete
}

func (f *fakeDirectory) BeginExit(ctx context.Context, id string) (employee.Employee, error) {
	return f.Get(ctx, id)
}

func (f *fakeDirectory) FinalizeExit(ctx context.Context, id string) (employee.Employee, error) {
	return f.Get(ctx, id)
}

func router(dir Directory, session *auth.Session) http.Handler {
	r := chi.NewRouter()
	if session != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(middleware.WithSession(req.Context(), *session)))
			})
		})
	}
	NewHandler(dir, nil).RegisterRoutes(r)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestGetEmployeeScopes(t *testing.T) {
	dir := newFakeDirectory()
	tests := []struct {
		name    string
		session auth.Session
		target  string
		status  int
	}{
		{"self", auth.Session{EmployeeID: "emp-2", Role: auth.RoleEmployee}, "emp-2", http.StatusOK},
		{"other employee", auth.Session{EmployeeID: "emp-2", Role: auth.RoleEmployee}, "emp-1", http.StatusForbidden},
		{"manager of report", auth.Session{EmployeeID: "mgr-1", Role: auth.RoleManager}, "emp-1", http.StatusOK},
		{"manager of stranger", auth.Session{EmployeeID: "mgr-1", Role: auth.RoleManager}, "emp-2", http.StatusForbidden},
		{"hr", auth.Session{EmployeeID: "hr-1", Role: auth.RoleHR}, "emp-2", http.StatusOK},
		{"missing", auth.Session{EmployeeID: "hr-1", Role: auth.RoleHR}, "nobody", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			session := tc.session
			rec := do(router(dir, &session), http.MethodGet, "/employees/"+tc.target, "")
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestListRequiresPermission(t *testing.T) {
	dir := newFakeDirectory()
	employeeSession := auth.Session{EmployeeID: "emp-2", Role: auth.RoleEmployee}
	assert.Equal(t, http.StatusForbidden, do(router(dir, &employeeSession), http.MethodGet, "/employees", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(router(dir, nil), http.MethodGet, "/employees", "").Code)

	manager := auth.Session{EmployeeID: "mgr-1", Role: auth.RoleManager}
	rec := do(router(dir, &manager), http.MethodGet, "/employees", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "emp-1")
	assert.NotContains(t, rec.Body.String(), "emp-2")
}

func TestCreateEmployee(t *testing.T) {
	dir := newFakeDirectory()
	hr := auth.Session{EmployeeID: "hr-1", Role: auth.RoleHR}

	rec := do(router(dir, &hr), http.MethodPost, "/employees",
		`{"firstName":"Asha","email":"asha@ems.test","password":"secret1","role":"Employee","annualCtc":600000,"dateOfJoining":"2024-04-01"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	if assert.Len(t, dir.created, 1) {
		assert.NotNil(t, dir.created[0].DateOfJoining)
		assert.Equal(t, "600000", dir.created[0].AnnualCTC.String())
	}

	rec = do(router(dir, &hr), http.MethodPost, "/employees",
		`{"firstName":"Asha","email":"asha@ems.test","password":"secret1","role":"Intern"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router(dir, &hr), http.MethodPost, "/employees",
		`{"firstName":"Asha","email":"asha@ems.test","password":"secret1","role":"Employee","dateOfJoining":"someday"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateFieldAndTransitions(t *testing.T) {
	dir := newFakeDirectory()
	hr := auth.Session{EmployeeID: "hr-1", Role: auth.RoleHR}

	rec := do(router(dir, &hr), http.MethodPatch, "/employees/emp-1/fields", `{"field":"salary","value":"1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(router(dir, &hr), http.MethodPatch, "/employees/emp-1/fields", `{"field":"designation","value":"Engineer"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router(dir, &hr), http.MethodPost, "/employees/emp-1/onboarding/complete", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(router(dir, &hr), http.MethodGet, "/employees/emp-1/checklist", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "onboarding")
}

func TestManagerSeesRedactedReports(t *testing.T) {
	dir := newFakeDirectory()
	manager := auth.Session{EmployeeID: "mgr-1", Role: auth.RoleManager}

	for _, path := range []string{"/employees", "/employees/team", "/employees/emp-1"} {
		t.Run(path, func(t *testing.T) {
			rec := do(router(dir, &manager), http.MethodGet, path, "")
			assert.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, "emp-1")
			assert.Contains(t, body, `"redacted":true`)
			assert.NotContains(t, body, "600000")
			assert.NotContains(t, body, "9800000001")
			assert.NotContains(t, body, "asha@home.example")
		})
	}

	assert.Equal(t, "600000", dir.employees["emp-1"].AnnualCTC.String())
}

func TestHRAndSelfSeeFullRecord(t *testing.T) {
	dir := newFakeDirectory()
	for _, session := range []auth.Session{
		{EmployeeID: "hr-1", Role: auth.RoleHR},
		{EmployeeID: "emp-1", Role: auth.RoleEmployee},
	} {
		session := session
		rec := do(router(dir, &session), http.MethodGet, "/employees/emp-1", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "9800000001")
		assert.Contains(t, rec.Body.String(), "600000")
	}
}
