package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrUnavailable wraps transport failures: the backend could not be reached.
	ErrUnavailable = errors.New("backend unavailable")
	// ErrUnexpectedStatus wraps non-2xx answers that have no domain meaning.
	ErrUnexpectedStatus = errors.New("backend returned an unexpected status")
)

const maxErrorBody = 4096

// StatusError carries the status and message of a failed backend call.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Client talks JSON to the external record service. Calls are never retried.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	reads   singleflight.Group
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.Named("backend"),
	}
}

// get coalesces concurrent identical reads. notFound is returned for 404.
func (c *Client) get(ctx context.Context, path string, query url.Values, notFound error, out interface{}) error {
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	body, err, _ := c.reads.Do(target, func() (interface{}, error) {
		return c.roundTrip(ctx, http.MethodGet, target, nil, notFound)
	})
	if err != nil {
		return err
	}
	return decode(body.([]byte), out)
}

func (c *Client) send(ctx context.Context, method, path string, in interface{}, notFound error, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	body, err := c.roundTrip(ctx, method, path, payload, notFound)
	if err != nil {
		return err
	}
	return decode(body, out)
}

func (c *Client) roundTrip(ctx context.Context, method, target string, payload []byte, notFound error) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", zap.String("method", method), zap.String("path", target), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(started)),
	)

	if resp.StatusCode == http.StatusNotFound && notFound != nil {
		return nil, notFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Method: method, Path: target, StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return body, nil
}

func decode(body []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

func escape(id string) string {
	return url.PathEscape(id)
}
