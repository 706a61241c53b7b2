package authhandler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"ems/internal/domain/auth"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (auth.LoginResult, error)
}

type Handler struct {
	Service Authenticator
	Logger  *zap.Logger
}

func NewHandler(service Authenticator, logger *zap.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload loginPayload
	if !shared.Decode(w, r, reqID, &payload) {
		return
	}
	result, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		shared.WriteError(w, h.Logger, reqID, err)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	session, reqID, ok := shared.Session(w, r)
	if !ok {
		return
	}
	api.Success(w, map[string]any{
		"session":     session,
		"privileged":  session.IsPrivileged(),
		"permissions": auth.RolePermissions[session.Role],
	}, reqID)
}
