package salaryhandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ems/internal/domain/auth"
	"ems/internal/domain/salary"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

type Structures interface {
	List(ctx context.Context) ([]salary.Structure, error)
	Draft(ctx context.Context, employeeID string) (salary.Draft, error)
	Preview(ctx context.Context, employeeID string, c salary.Components) (salary.Draft, error)
	Save(ctx context.Context, session auth.Session, employeeID string, c salary.Components) (salary.Structure, error)
	Policy() salary.Policy
}

type Handler struct {
	Service Structures
	Logger  *zap.Logger
}

func NewHandler(service Structures, logger *zap.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salary", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermSalaryRead)).Get("/policy", h.handlePolicy)
		r.With(middleware.RequirePermission(auth.PermSalaryRead)).Get("/structures", h.handleList)
		r.With(middleware.RequirePermission(auth.PermSalaryRead)).Get("/structures/{employeeID}/draft", h.handleDraft)
		r.With(middleware.RequirePermission(auth.PermSalaryRead)).Post("/structures/{employeeID}/preview", h.handlePreview)
		r.With(middleware.RequirePermission(auth.PermSalaryWrite)).Put("/structures/{employeeID}", h.handleSave)
	})
}

func (h *Handler) handlePolicy(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Policy(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	list, err := h.Service.List(r.Context())
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleDraft(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	draft, err := h.Service.Draft(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, draft, reqID)
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload salary.Components
	if !shared.Decode(w, r, reqID, &payload) {
		return
	}
	draft, err := h.Service.Preview(r.Context(), chi.URLParam(r, "employeeID"), payload)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, draft, reqID)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	var payload salary.Components
	if !shared.Decode(w, r, reqID, &payload) {
		return
	}
	saved, err := h.Service.Save(r.Context(), session, chi.URLParam(r, "employeeID"), payload)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, saved, reqID)
}
