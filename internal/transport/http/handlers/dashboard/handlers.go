package dashboardhandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ems/internal/domain/auth"
	"ems/internal/domain/dashboard"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

type Snapshotter interface {
	Snapshot(ctx context.Context, session auth.Session) (dashboard.Snapshot, error)
}

type Handler struct {
	Service Snapshotter
	Logger  *zap.Logger
}

func NewHandler(service Snapshotter, logger *zap.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermDashboardRead)).Get("/dashboard", h.handleSnapshot)
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	snap, err := h.Service.Snapshot(r.Context(), session)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, snap, reqID)
}
