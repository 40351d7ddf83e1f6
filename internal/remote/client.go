package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"studiofin-backend/internal/logger"
)

const defaultRetryAfter = 60 * time.Second

// FieldViolation is one entry of the upstream API's structured error body.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is any non-2xx answer from the upstream API. RetryAfter is set only
// for 429 responses.
type APIError struct {
	Status     int
	Message    string
	Violations []FieldViolation
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream API returned %d: %s", e.Status, e.Message)
}

// RateLimited reports whether the upstream rejected the call for throttling.
func (e *APIError) RateLimited() bool {
	return e.Status == http.StatusTooManyRequests
}

type cookieKey struct{}

// WithForwardedCookies stores the inbound request's Cookie header so the
// client forwards the caller's credentials to the upstream API.
func WithForwardedCookies(ctx context.Context, rawCookies string) context.Context {
	return context.WithValue(ctx, cookieKey{}, rawCookies)
}

func forwardedCookies(ctx context.Context) string {
	raw, _ := ctx.Value(cookieKey{}).(string)
	return raw
}

// Client talks to the remote finance API. All methods forward the caller's
// cookies when present on the context and decode the upstream's structured
// error body on failure.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookies := forwardedCookies(ctx); cookies != "" {
		req.Header.Set("Cookie", cookies)
	}

	logger.ExternalServiceCall("finance-api", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		logger.ExternalServiceResult("finance-api", method, err, "path", path)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		logger.ExternalServiceResult("finance-api", method, nil, "path", path, "status", resp.StatusCode)
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp, data)
		logger.ExternalServiceResult("finance-api", method, apiErr, "path", path, "status", resp.StatusCode)
		return nil, apiErr
	}

	logger.ExternalServiceResult("finance-api", method, nil, "path", path, "status", resp.StatusCode)
	return json.RawMessage(data), nil
}

// decodeError maps a non-2xx response to an APIError. A body that is not the
// expected {message, errors} shape falls back to a generic message so malformed
// upstream errors never surface internals to the caller.
func decodeError(resp *http.Response, data []byte) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Message: "upstream request failed"}

	var body struct {
		Message string           `json:"message"`
		Errors  []FieldViolation `json:"errors"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
		apiErr.Violations = body.Errors
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		apiErr.RetryAfter = retryAfterOf(resp.Header.Get("Retry-After"))
	}
	return apiErr
}

func retryAfterOf(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	if secs, err := strconv.Atoi(header); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait
		}
	}
	return defaultRetryAfter
}
