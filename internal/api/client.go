// Package api is the typed client for the order-management REST
// backend. Every response travels in a {success, data} envelope and
// every failure in a {success:false, errors:[...]} or {message}
// envelope; the client unwraps both and turns inventory version
// mismatches into ErrVersionConflict.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// idempotencyHeader carries the client-generated key that lets the
// backend drop a double-fired create.
const idempotencyHeader = "Idempotency-Key"

// Client talks to one backend instance. It is safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
	token   string
}

// NewClient builds a Client for the given base URL, e.g.
// "http://localhost:3000/api/v1".
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []FieldError    `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.doHeaders(ctx, method, path, nil, body, out)
}

func (c *Client) doHeaders(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		// A malformed body on a success status is still an error; on a
		// failure status the status alone is enough to classify.
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 400 {
			return fmt.Errorf("api: decode response: %w", err)
		}
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode, Message: env.Message, Errors: env.Errors}
		c.logger.Debug("backend error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("message", apiErr.Error()))
		return apiErr
	}

	if out != nil {
		data := env.Data
		if len(data) == 0 {
			data = raw
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("api: decode response data: %w", err)
		}
	}
	return nil
}
