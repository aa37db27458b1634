// Package gateway is the single choke point for all network I/O against
// the BlogSpace API. Every method normalizes its outcome into a value
// plus a classified *errors.AppError; no raw transport error and no raw
// HTTP response ever leaves this package.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"blogspace-client/domain/events"
	"blogspace-client/infrastructure/config"
	"blogspace-client/pkg/auth"
	apperrors "blogspace-client/pkg/errors"
)

// Client talks to the remote API. It injects the bearer credential when
// one is stored and broadcasts AuthError on any 401.
type Client struct {
	baseURL   string
	uploadURL string
	http      *http.Client
	tokens    *auth.Manager
	emitter   *events.Emitter
	breaker   *gobreaker.CircuitBreaker
	logger    *zap.Logger
}

// NewClient builds a gateway over the configured endpoints.
func NewClient(cfg *config.Config, tokens *auth.Manager, emitter *events.Emitter, logger *zap.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "blogspace-api",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.8
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Client{
		baseURL:   cfg.BaseURL,
		uploadURL: cfg.UploadURL,
		http:      &http.Client{Timeout: cfg.RequestTimeout},
		tokens:    tokens,
		emitter:   emitter,
		breaker:   breaker,
		logger:    logger,
	}
}

// errorBody is the JSON error envelope the server sends on failure.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// doJSON issues a JSON request and decodes a 2xx response into out
// (which may be nil when the body does not matter).
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError("failed to encode request body").WithCause(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.NewInternalError("failed to build request").WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do attaches the auth header, executes the request through the breaker
// and normalizes the outcome. File-bearing callers must have set their
// own content type already; JSON callers set it in doJSON.
func (c *Client) do(req *http.Request, out interface{}) error {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.http.Do(req)
	})
	if err != nil {
		c.logger.Debug("request failed before a response arrived",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return apperrors.NewNetworkError("Network error. Please check your connection and try again.", err)
	}
	res := result.(*http.Response)
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return c.failure(req, res)
	}

	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return apperrors.NewInternalError("failed to decode response body").WithCause(err)
	}
	return nil
}

// failure converts a non-2xx response into an AppError, preferring the
// server's own message over the status line. A 401 additionally tears
// the session down: every caller must treat it as "my session is gone",
// not as a retryable per-request failure.
func (c *Client) failure(req *http.Request, res *http.Response) error {
	message := ""
	var body errorBody
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil {
		if body.Message != "" {
			message = body.Message
		} else {
			message = body.Error
		}
	}
	if message == "" {
		message = res.Status
	}

	appErr := apperrors.FromStatusCode(res.StatusCode, message)
	c.logger.Warn("request rejected",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", res.StatusCode),
		zap.String("message", message))

	if res.StatusCode == http.StatusUnauthorized {
		c.authFailure()
	}
	return appErr
}

// authFailure clears the stored credentials and broadcasts AuthError.
func (c *Client) authFailure() {
	c.tokens.ClearTokens()
	c.emitter.Emit(events.AuthError)
}

// MediaURL resolves a server-relative media path (as stored on posts
// and avatars) against the upload host. Absolute URLs pass through.
func (c *Client) MediaURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.uploadURL + "/" + strings.TrimPrefix(path, "/")
}

func pathf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
