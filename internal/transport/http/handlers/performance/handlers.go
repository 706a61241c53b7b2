package performancehandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ems/internal/domain/auth"
	"ems/internal/domain/performance"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

type Reviews interface {
	StartCycle(ctx context.Context, session auth.Session, cycle performance.Cycle) (performance.CycleResult, error)
	Submit(ctx context.Context, session auth.Session, id string, scores performance.Scores, comments string) (performance.Review, error)
	Acknowledge(ctx context.Context, session auth.Session, id string) (performance.Review, error)
	ForEmployee(ctx context.Context, session auth.Session, employeeID string) ([]performance.Review, error)
	Latest(ctx context.Context, session auth.Session, employeeID string) (performance.Review, error)
	All(ctx context.Context, session auth.Session, status string) ([]performance.Review, error)
	Summary(ctx context.Context, session auth.Session) (performance.Summary, error)
}

type Handler struct {
	Service Reviews
	Logger  *zap.Logger
}

func NewHandler(service Reviews, logger *zap.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reviews", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReviewsStartCycle)).Post("/cycles", h.handleStartCycle)
		r.With(middleware.RequirePermission(auth.PermReviewsSubmit)).Get("/", h.handleAll)
		r.With(middleware.RequirePermission(auth.PermReviewsRead)).Get("/mine", h.handleMine)
		r.With(middleware.RequirePermission(auth.PermReviewsRead)).Get("/latest", h.handleLatest)
		r.With(middleware.RequirePermission(auth.PermReviewsReadAll)).Get("/summary", h.handleSummary)
		r.With(middleware.RequirePermission(auth.PermReviewsSubmit)).Post("/{reviewID}/submit", h.handleSubmit)
		r.With(middleware.RequirePermission(auth.PermReviewsRead)).Post("/{reviewID}/acknowledge", h.handleAcknowledge)
	})
}

type cyclePayload struct {
	EmployeeIDs []string `json:"employeeIds" validate:"required,min=1"`
	PeriodStart string   `json:"periodStart" validate:"required"`
	PeriodEnd   string   `json:"periodEnd" validate:"required"`
}

func (h *Handler) handleStartCycle(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	var payload cyclePayload
	if !shared.Decode(w, r, reqID, &payload) {
		return
	}
	v := shared.NewValidator()
	start, _ := v.Date("periodStart", payload.PeriodStart)
	end, _ := v.Date("periodEnd", payload.PeriodEnd)
	if v.Reject(w, reqID) {
		return
	}
	result, err := h.Service.StartCycle(r.Context(), session, performance.Cycle{
		EmployeeIDs: payload.EmployeeIDs,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Created(w, result, reqID)
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	reviews, err := h.Service.All(r.Context(), session, r.URL.Query().Get("status"))
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, reviews, reqID)
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	reviews, err := h.Service.ForEmployee(r.Context(), session, r.URL.Query().Get("employeeId"))
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, reviews, reqID)
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	review, err := h.Service.Latest(r.Context(), session, r.URL.Query().Get("employeeId"))
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, review, reqID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	summary, err := h.Service.Summary(r.Context(), session)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, summary, reqID)
}

type submitPayload struct {
	Scores   performance.Scores `json:"scores"`
	Comments string             `json:"comments" validate:"required"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	var payload submitPayload
	if !shared.Decode(w, r, reqID, &payload) {
		return
	}
	review, err := h.Service.Submit(r.Context(), session, chi.URLParam(r, "reviewID"), payload.Scores, payload.Comments)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, review, reqID)
}

func (h *Handler) handleAcknowledge(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	review, err := h.Service.Acknowledge(r.Context(), session, chi.URLParam(r, "reviewID"))
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, review, reqID)
}
