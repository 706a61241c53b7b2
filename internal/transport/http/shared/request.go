package shared

import (
	"net/http"
	"strconv"
	"strings"

	"ems/internal/domain/auth"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
)

// Session returns the caller and the request id, or writes a 401.
func Session(w http.ResponseWriter, r *http.Request) (auth.Session, string, bool) {
	reqID := middleware.GetRequestID(r.Context())
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return auth.Session{}, reqID, false
	}
	return session, reqID, true
}

// QueryInt reads an optional integer query parameter. Missing means zero.
func QueryInt(r *http.Request, v *Validator, key string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		v.Add(key, "must be an integer")
		return 0
	}
	return value
}

// Attachment sets the headers for a file download.
func Attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
}
