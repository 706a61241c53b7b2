package audithandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ems/internal/domain/audit"
	"ems/internal/domain/auth"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

type Trail interface {
	Events(ctx context.Context, f audit.Filter) ([]audit.Event, error)
}

type Handler struct {
	Service Trail
	Logger  *zap.Logger
}

func NewHandler(service Trail, logger *zap.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermAuditRead)).Get("/audit/events", h.handleListEvents)
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	filter := audit.Filter{
		EventType:  r.URL.Query().Get("eventType"),
		EmployeeID: r.URL.Query().Get("employeeId"),
		Limit:      shared.QueryInt(r, v, "limit"),
		Offset:     shared.QueryInt(r, v, "offset"),
	}
	if v.Reject(w, reqID) {
		return
	}

	events, err := h.Service.Events(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	w.Header().Set("X-Result-Count", strconv.Itoa(len(events)))
	api.Success(w, events, reqID)
}
