package employeeshandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

type Directory interface {
	List(ctx context.Context) ([]employee.Employee, error)
	Get(ctx context.Context, id string) (employee.Employee, error)
	Team(ctx context.Context, managerID string) ([]employee.Employee, error)
	Create(ctx context.Context, in employee.NewEmployee) (employee.Employee, error)
	UpdateField(ctx context.Context, id, field, value string) (employee.Employee, error)
	Checklist(ctx context.Context, id string) (employee.Checklist, error)
	CompleteOnboarding(ctx context.Context, id string) (employee.Employee, error)
	BeginExit(ctx context.Context, id string) (employee.Employee, error)
	FinalizeExit(ctx context.Context, id string) (employee.Employee, error)
}

type Handler struct {
	Service Directory
	Logger  *zap.Logger
}

func NewHandler(service Directory, logger *zap.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermTeamRead)).Get("/team", h.handleTeam)
		r.Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Patch("/{employeeID}/fields", h.handleUpdateField)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/{employeeID}/checklist", h.handleChecklist)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Post("/{employeeID}/onboarding/complete", h.handleCompleteOnboarding)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Post("/{employeeID}/exit", h.handleBeginExit)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Post("/{employeeID}/exit/finalize", h.handleFinalizeExit)
	})
}

// handleList returns everyone to HR and Admin, and only direct reports to managers.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	var (
		list []employee.Employee
		err  error
	)
	if session.IsPrivileged() {
		list, err = h.Service.List(r.Context())
	} else {
		list, err = h.Service.Team(r.Context(), session.EmployeeID)
	}
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, redact(list, session), reqID)
}

func (h *Handler) handleTeam(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	managerID := session.EmployeeID
	if session.IsPrivileged() {
		if requested := r.URL.Query().Get("managerId"); requested != "" {
			managerID = requested
		}
	}
	team, err := h.Service.Team(r.Context(), managerID)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, redact(team, session), reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	if !canView(session, emp) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to view this employee", reqID)
		return
	}
	employee.FilterEmployeeFields(&emp, session)
	api.Success(w, emp, reqID)
}

// redact copies list before filtering; the directory may hand out a shared slice.
func redact(list []employee.Employee, viewer auth.Session) []employee.Employee {
	out := make([]employee.Employee, len(list))
	copy(out, list)
	for i := range out {
		employee.FilterEmployeeFields(&out[i], viewer)
	}
	return out
}

func canView(session auth.Session, emp employee.Employee) bool {
	switch {
	case session.IsPrivileged(), emp.ID == session.EmployeeID:
		return true
	case session.IsManager():
		return emp.ManagerID == session.EmployeeID
	default:
		return false
	}
}

type createPayload struct {
	FirstName     string          `json:"firstName" validate:"required"`
	LastName      string          `json:"lastName"`
	Email         string          `json:"email" validate:"required,email"`
	Password      string          `json:"password" validate:"required,min=6"`
	Mobile        string          `json:"mobile"`
	Designation   string          `json:"designation"`
	Role          string          `json:"role" validate:"required,oneof=Admin HR Manager Employee"`
	DateOfJoining string          `json:"dateOfJoining"`
	AnnualCTC     decimal.Decimal `json:"annualCtc"`
	ManagerID     string          `json:"managerId"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload createPayload
	if !shared.Decode(w, r, reqID, &payload) {
		return
	}

	v := shared.NewValidator()
	var joined *time.Time
	if payload.DateOfJoining != "" {
		if parsed, ok := v.Date("dateOfJoining", payload.DateOfJoining); ok {
			joined = &parsed
		}
	}
	if payload.AnnualCTC.IsNegative() {
		v.Add("annualCtc", "must be non-negative")
	}
	if v.Reject(w, reqID) {
		return
	}

	created, err := h.Service.Create(r.Context(), employee.NewEmployee{
		FirstName:     payload.FirstName,
		LastName:      payload.LastName,
		Email:         payload.Email,
		Password:      payload.Password,
		Mobile:        payload.Mobile,
		Designation:   payload.Designation,
		Role:          payload.Role,
		DateOfJoining: joined,
		AnnualCTC:     payload.AnnualCTC,
		ManagerID:     payload.ManagerID,
	})
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Created(w, created, reqID)
}

type fieldPayload struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

func (h *Handler) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload fieldPayload
	if !shared.Decode(w, r, reqID, &payload) {
		return
	}
	updated, err := h.Service.UpdateField(r.Context(), chi.URLParam(r, "employeeID"), payload.Field, payload.Value)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleChecklist(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	checklist, err := h.Service.Checklist(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, checklist, reqID)
}

func (h *Handler) handleCompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.CompleteOnboarding)
}

func (h *Handler) handleBeginExit(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.BeginExit)
}

func (h *Handler) handleFinalizeExit(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.FinalizeExit)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, apply func(context.Context, string) (employee.Employee, error)) {
	reqID := middleware.GetRequestID(r.Context())
	updated, err := apply(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, updated, reqID)
}
