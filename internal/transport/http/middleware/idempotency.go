package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ems/internal/transport/http/api"
)

const idempotencyHeader = "Idempotency-Key"

type idempotencyRecord struct {
	Hash        string `json:"hash"`
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

type responseCapture struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *responseCapture) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}

func (c *responseCapture) Write(p []byte) (int, error) {
	c.body.Write(p)
	return c.ResponseWriter.Write(p)
}

// Idempotency replays the stored response for a repeated Idempotency-Key with
// the same request body. A reused key with a different body is a conflict.
// Requests without the header, and all requests when rdb is nil, pass through.
func Idempotency(rdb redis.Cmdable, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotencyHeader)
			if rdb == nil || key == "" || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}
			reqID := GetRequestID(r.Context())

			body, err := io.ReadAll(r.Body)
			if err != nil {
				api.Fail(w, http.StatusBadRequest, "invalid_body", "could not read request body", reqID)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			sum := sha256.Sum256(append([]byte(r.Method+" "+r.URL.Path+"\n"), body...))
			hash := hex.EncodeToString(sum[:])
			storeKey := idempotencyKey(r, key)

			raw, err := rdb.Get(r.Context(), storeKey).Bytes()
			switch {
			case err == nil:
				var rec idempotencyRecord
				if json.Unmarshal(raw, &rec) == nil {
					if rec.Hash != hash {
						api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key reused with a different payload", reqID)
						return
					}
					if rec.ContentType != "" {
						w.Header().Set("Content-Type", rec.ContentType)
					}
					w.Header().Set("Idempotent-Replay", "true")
					w.WriteHeader(rec.Status)
					_, _ = w.Write(rec.Body)
					return
				}
			case !errors.Is(err, redis.Nil):
				logger.Warn("idempotency lookup failed", zap.String("key", storeKey), zap.Error(err))
			}

			capture := &responseCapture{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(capture, r)
			if capture.status >= http.StatusInternalServerError {
				return
			}

			payload, err := json.Marshal(idempotencyRecord{
				Hash:        hash,
				Status:      capture.status,
				ContentType: capture.Header().Get("Content-Type"),
				Body:        capture.body.Bytes(),
			})
			if err != nil {
				return
			}
			if err := rdb.Set(r.Context(), storeKey, payload, ttl).Err(); err != nil {
				logger.Warn("idempotency store failed", zap.String("key", storeKey), zap.Error(err))
			}
		})
	}
}

func idempotencyKey(r *http.Request, key string) string {
	actor := "anonymous"
	if session, ok := GetSession(r.Context()); ok {
		actor = session.EmployeeID
	}
	return "ems:idem:" + actor + ":" + r.URL.Path + ":" + key
}
