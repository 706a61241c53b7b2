package systemhandler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ems/internal/domain/auth"
	"ems/internal/platform/jobs"
	"ems/internal/platform/metrics"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
)

// Check is one readiness probe, e.g. a database or cache ping.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type Jobs interface {
	EnqueuePayroll(at time.Time)
	Runs() []jobs.Run
}

type Handler struct {
	Checks  []Check
	Metrics *metrics.Collector
	Jobs    Jobs
	Logger  *zap.Logger
}

func NewHandler(checks []Check, collector *metrics.Collector, jobsSvc Jobs, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Checks: checks, Metrics: collector, Jobs: jobsSvc, Logger: logger}
}

// RegisterProbes mounts the unauthenticated health endpoints.
func (h *Handler) RegisterProbes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Get("/readyz", h.handleReady)
	if h.Metrics != nil {
		r.Get("/metrics", h.handleMetrics)
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/jobs", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollRun)).Get("/runs", h.handleRuns)
		r.With(middleware.RequirePermission(auth.PermPayrollRun)).Post("/payroll", h.handleEnqueuePayroll)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	for _, check := range h.Checks {
		if err := check.Ping(ctx); err != nil {
			h.Logger.Warn("readiness check failed", zap.String("check", check.Name), zap.Error(err))
			http.Error(w, check.Name+" not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRuns(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Jobs.Runs(), middleware.GetRequestID(r.Context()))
}

// handleEnqueuePayroll queues the run for the month before today, the same
// job the monthly schedule triggers.
func (h *Handler) handleEnqueuePayroll(w http.ResponseWriter, r *http.Request) {
	h.Jobs.EnqueuePayroll(time.Now().UTC())
	api.WriteJSON(w, http.StatusAccepted, api.Envelope{
		Success:   true,
		Data:      map[string]string{"job": jobs.JobMonthlyPayroll},
		RequestID: middleware.GetRequestID(r.Context()),
	})
}
