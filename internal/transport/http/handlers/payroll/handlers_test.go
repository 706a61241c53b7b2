package payrollhandler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/backend"
	"ems/internal/domain/auth"
	"ems/internal/domain/payroll"
	"ems/internal/transport/http/middleware"
)

type fakePayroll struct {
	runs    []payroll.RunRequest
	filters []payroll.Filter
	listErr error
}

func (f *fakePayroll) Run(_ context.Context, _ auth.Session, req payroll.RunRequest) (payroll.RunResult, error) {
	if err := req.Period.Validate(); err != nil {
		return payroll.RunResult{}, err
	}
	f.runs = append(f.runs, req)
	return payroll.RunResult{Period: req.Period}, nil
}

func (f *fakePayroll) List(_ context.Context, _ auth.Session, filter payroll.Filter) ([]payroll.View, error) {
	f.filters = append(f.filters, filter)
	return nil, f.listErr
}

func (f *fakePayroll) Get(_ context.Context, session auth.Session, id string) (payroll.View, error) {
	if id != "ps-1" {
		return payroll.View{}, payroll.ErrNotFound
	}
	if session.EmployeeID != "emp-1" && !session.Can(auth.PermPayrollReadAll) {
		return payroll.View{}, payroll.ErrForbidden
	}
	return payroll.NewView(payroll.Payslip{ID: id, EmployeeID: "emp-1", Month: 3, Year: 2024, NetPay: decimal.NewFromInt(1)}), nil
}

func (f *fakePayroll) Summary(context.Context, auth.Session, string, int) (payroll.Summary, error) {
	return payroll.Summary{Count: 2}, nil
}

func (f *fakePayroll) RenderPDF(ctx context.Context, session auth.Session, id string, w io.Writer) (payroll.View, error) {
	view, err := f.Get(ctx, session, id)
	if err != nil {
		return view, err
	}
	_, err = w.Write([]byte("%PDF-1.3"))
	return view, err
}

func (f *fakePayroll) ExportRegister(_ context.Context, _ auth.Session, period payroll.Period, w io.Writer) error {
	if err := period.Validate(); err != nil {
		return err
	}
	_, err := w.Write([]byte("xlsx"))
	return err
}

func newRouter(svc Payroll, session auth.Session) http.Handler {
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

var (
	hrSession       = auth.Session{EmployeeID: "hr-1", Role: auth.RoleHR}
	employeeSession = auth.Session{EmployeeID: "emp-1", Role: auth.RoleEmployee}
)

func TestRunPayroll(t *testing.T) {
	svc := &fakePayroll{}

	rec := serve(newRouter(svc, hrSession), http.MethodPost, "/payroll/runs", `{"month":3,"year":2024,"employeeIds":["emp-1"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.runs, 1)
	assert.Equal(t, []string{"emp-1"}, svc.runs[0].EmployeeIDs)

	rec = serve(newRouter(svc, hrSession), http.MethodPost, "/payroll/runs", `{"month":13,"year":2024}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(newRouter(svc, employeeSession), http.MethodPost, "/payroll/runs", `{"month":3,"year":2024}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Len(t, svc.runs, 1)
}

func TestListPayslipsParsesFilter(t *testing.T) {
	svc := &fakePayroll{}
	rec := serve(newRouter(svc, employeeSession), http.MethodGet, "/payroll/payslips?month=3&year=2024", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payroll.Filter{Month: 3, Year: 2024}, svc.filters[0])

	rec = serve(newRouter(svc, employeeSession), http.MethodGet, "/payroll/payslips?month=march", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPayslipsBackendDown(t *testing.T) {
	svc := &fakePayroll{listErr: backend.ErrUnavailable}
	rec := serve(newRouter(svc, employeeSession), http.MethodGet, "/payroll/payslips", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestPayslipPDF(t *testing.T) {
	svc := &fakePayroll{}

	rec := serve(newRouter(svc, employeeSession), http.MethodGet, "/payroll/payslips/ps-1/pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payslip-2024-03-emp-1.pdf")

	other := auth.Session{EmployeeID: "emp-2", Role: auth.RoleEmployee}
	rec = serve(newRouter(svc, other), http.MethodGet, "/payroll/payslips/ps-1/pdf", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegisterExportRequiresReadAll(t *testing.T) {
	svc := &fakePayroll{}

	rec := serve(newRouter(svc, employeeSession), http.MethodGet, "/payroll/register.xlsx?month=3&year=2024", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(newRouter(svc, hrSession), http.MethodGet, "/payroll/register.xlsx?month=3&year=2024", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "xlsx", rec.Body.String())

	rec = serve(newRouter(svc, hrSession), http.MethodGet, "/payroll/register.xlsx", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
