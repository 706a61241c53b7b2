package leavehandler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ems/internal/domain/auth"
	"ems/internal/domain/leave"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

type Leave interface {
	Apply(ctx context.Context, session auth.Session, in leave.NewRequest) (leave.Request, error)
	Mine(ctx context.Context, session auth.Session) ([]leave.Request, error)
	Queue(ctx context.Context, session auth.Session, status string) ([]leave.Request, error)
	Approve(ctx context.Context, session auth.Session, id, remarks string) (leave.Request, error)
	Reject(ctx context.Context, session auth.Session, id, remarks string) (leave.Request, error)
	Cancel(ctx context.Context, session auth.Session, id string) (leave.Request, error)
	Balances(ctx context.Context, session auth.Session, employeeID string) ([]leave.Balance, error)
	Stats(ctx context.Context, session auth.Session) (leave.Stats, error)
	ExportReport(ctx context.Context, session auth.Session, w io.Writer) error
	Entitlements() leave.Entitlements
}

type Handler struct {
	Service Leave
	Logger  *zap.Logger
}

func NewHandler(service Leave, logger *zap.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

// RegisterRoutes mounts the leave endpoints. sensitive wraps approve and
// reject with a stricter rate limit.
func (h *Handler) RegisterRoutes(r chi.Router, sensitive func(http.Handler) http.Handler) {
	r.Route("/leave", func(r chi.Router) {
		decide := r.With(middleware.RequirePermission(auth.PermLeaveApprove))
		if sensitive != nil {
			decide = decide.With(sensitive)
		}
		r.With(middleware.RequirePermission(auth.PermLeaveApply)).Get("/entitlements", h.handleEntitlements)
		r.With(middleware.RequirePermission(auth.PermLeaveApply)).Post("/requests", h.handleApply)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove)).Get("/requests", h.handleQueue)
		r.With(middleware.RequirePermission(auth.PermLeaveApply)).Get("/requests/mine", h.handleMine)
		decide.Post("/requests/{requestID}/approve", h.handleApprove)
		decide.Post("/requests/{requestID}/reject", h.handleReject)
		r.With(middleware.RequirePermission(auth.PermLeaveApply)).Post("/requests/{requestID}/cancel", h.handleCancel)
		r.With(middleware.RequirePermission(auth.PermLeaveApply)).Get("/balances", h.handleBalances)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove)).Get("/stats", h.handleStats)
		r.With(middleware.RequirePermission(auth.PermLeaveApprove)).Get("/report.xlsx", h.handleReport)
	})
}

func (h *Handler) handleEntitlements(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Entitlements(), middleware.GetRequestID(r.Context()))
}

type applyPayload struct {
	Type       string `json:"type" validate:"required"`
	StartDate  string `json:"startDate" validate:"required"`
	EndDate    string `json:"endDate" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
	Attachment string `json:"attachment"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	var payload applyPayload
	if !shared.Decode(w, r, reqID, &payload) {
		return
	}
	v := shared.NewValidator()
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	if v.Reject(w, reqID) {
		return
	}

	created, err := h.Service.Apply(r.Context(), session, leave.NewRequest{
		Type:       payload.Type,
		StartDate:  start,
		EndDate:    end,
		Reason:     payload.Reason,
		Attachment: payload.Attachment,
	})
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleQueue(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	status := r.URL.Query().Get("status")
	v := shared.NewValidator()
	if status != "" && !validStatus(status) {
		v.Add("status", "must be one of: Pending Approved Rejected Cancelled")
	}
	if v.Reject(w, reqID) {
		return
	}
	requests, err := h.Service.Queue(r.Context(), session, status)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, requests, reqID)
}

func validStatus(status string) bool {
	switch status {
	case leave.StatusPending, leave.StatusApproved, leave.StatusRejected, leave.StatusCancelled:
		return true
	default:
		return false
	}
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	requests, err := h.Service.Mine(r.Context(), session)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, requests, reqID)
}

type decisionPayload struct {
	Remarks string `json:"remarks"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Approve)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, apply func(context.Context, auth.Session, string, string) (leave.Request, error)) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	var payload decisionPayload
	if r.ContentLength != 0 && !shared.Decode(w, r, reqID, &payload) {
		return
	}
	updated, err := apply(r.Context(), session, chi.URLParam(r, "requestID"), payload.Remarks)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	updated, err := h.Service.Cancel(r.Context(), session, chi.URLParam(r, "requestID"))
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleBalances(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	balances, err := h.Service.Balances(r.Context(), session, r.URL.Query().Get("employeeId"))
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, balances, reqID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	stats, err := h.Service.Stats(r.Context(), session)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, stats, reqID)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.Service.ExportReport(r.Context(), session, &buf); err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	shared.Attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"leave-report-"+time.Now().UTC().Format("2006-01-02")+".xlsx")
	_, _ = buf.WriteTo(w)
}
