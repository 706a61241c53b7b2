package payrollhandler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ems/internal/domain/auth"
	"ems/internal/domain/payroll"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

type Payroll interface {
	Run(ctx context.Context, session auth.Session, req payroll.RunRequest) (payroll.RunResult, error)
	List(ctx context.Context, session auth.Session, f payroll.Filter) ([]payroll.View, error)
	Get(ctx context.Context, session auth.Session, id string) (payroll.View, error)
	Summary(ctx context.Context, session auth.Session, employeeID string, year int) (payroll.Summary, error)
	RenderPDF(ctx context.Context, session auth.Session, id string, w io.Writer) (payroll.View, error)
	ExportRegister(ctx context.Context, session auth.Session, period payroll.Period, w io.Writer) error
}

type Handler struct {
	Service Payroll
	Logger  *zap.Logger
}

func NewHandler(service Payroll, logger *zap.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

// RegisterRoutes mounts the payroll endpoints. sensitive wraps the run
// endpoint with a stricter rate limit.
func (h *Handler) RegisterRoutes(r chi.Router, sensitive func(http.Handler) http.Handler) {
	r.Route("/payroll", func(r chi.Router) {
		run := r.With(middleware.RequirePermission(auth.PermPayrollRun))
		if sensitive != nil {
			run = run.With(sensitive)
		}
		run.Post("/runs", h.handleRun)
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/payslips", h.handleList)
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/payslips/{payslipID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/payslips/{payslipID}/pdf", h.handlePDF)
		r.With(middleware.RequirePermission(auth.PermPayrollRead)).Get("/summary", h.handleSummary)
		r.With(middleware.RequirePermission(auth.PermPayrollReadAll)).Get("/register.xlsx", h.handleRegister)
	})
}

type runPayload struct {
	Month       int      `json:"month" validate:"min=1,max=12"`
	Year        int      `json:"year" validate:"min=1970,max=9999"`
	EmployeeIDs []string `json:"employeeIds"`
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	var payload runPayload
	if !shared.Decode(w, r, reqID, &payload) {
		return
	}
	result, err := h.Service.Run(r.Context(), session, payroll.RunRequest{
		Period:      payroll.Period{Month: payload.Month, Year: payload.Year},
		EmployeeIDs: payload.EmployeeIDs,
	})
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Created(w, result, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	v := shared.NewValidator()
	filter := payroll.Filter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		Month:      shared.QueryInt(r, v, "month"),
		Year:       shared.QueryInt(r, v, "year"),
	}
	if v.Reject(w, reqID) {
		return
	}
	views, err := h.Service.List(r.Context(), session, filter)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, views, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	view, err := h.Service.Get(r.Context(), session, chi.URLParam(r, "payslipID"))
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, view, reqID)
}

// handlePDF renders into a buffer first so a failure can still produce a
// JSON error instead of a truncated document.
func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	view, err := h.Service.RenderPDF(r.Context(), session, chi.URLParam(r, "payslipID"), &buf)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	shared.Attachment(w, "application/pdf", fmt.Sprintf("payslip-%d-%02d-%s.pdf", view.Year, view.Month, view.EmployeeID))
	_, _ = buf.WriteTo(w)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	v := shared.NewValidator()
	year := shared.QueryInt(r, v, "year")
	if v.Reject(w, reqID) {
		return
	}
	summary, err := h.Service.Summary(r.Context(), session, r.URL.Query().Get("employeeId"), year)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, summary, reqID)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	v := shared.NewValidator()
	period := payroll.Period{Month: shared.QueryInt(r, v, "month"), Year: shared.QueryInt(r, v, "year")}
	if v.Reject(w, reqID) {
		return
	}
	var buf bytes.Buffer
	if err := h.Service.ExportRegister(r.Context(), session, period, &buf); err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	shared.Attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		fmt.Sprintf("payroll-register-%d-%02d.xlsx", period.Year, period.Month))
	_, _ = buf.WriteTo(w)
}
