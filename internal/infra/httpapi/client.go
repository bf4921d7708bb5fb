// internal/infra/httpapi/client.go
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lead_crm_client/internal/domain/session"
	"lead_crm_client/internal/infra/monitoring"
	"lead_crm_client/internal/infra/reporting"

	"github.com/sirupsen/logrus"
)

// Client is the single configured HTTP client every resource accessor goes
// through. It attaches the persisted bearer token to each outgoing request
// and performs the global 401 handling: clear the session, fire the
// OnUnauthorized hook, and return ErrUnauthorized so the caller's error path
// still runs. A 401 is terminal for that call; no retry is performed.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	store          session.Store
	logger         *logrus.Logger
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport (used by tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout sets the transport timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithOnUnauthorized registers the hook invoked after a 401 teardown. This is
// the client's stand-in for a browser redirect to the login view.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// NewClient creates the configured client for the given API base URL.
func NewClient(baseURL string, store session.Store, logger *logrus.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do issues one JSON request. resource labels the metrics series; body and
// out may both be nil. Errors are mapped onto the package sentinels.
func (c *Client) do(ctx context.Context, method, path, resource string, query url.Values, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding %s %s request body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("error building %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Attach the auth token to each request if it exists.
	if sess, err := c.store.Load(); err == nil && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		monitoring.RequestsTotal.WithLabelValues(method, resource, "transport_error").Inc()
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	monitoring.RequestsTotal.WithLabelValues(method, resource, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		return c.mapFailure(method, path, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		decodeErr := fmt.Errorf("error decoding %s %s response: %w", method, path, err)
		reporting.CaptureError(decodeErr, map[string]interface{}{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		})
		return decodeErr
	}
	return nil
}

// mapFailure translates an error status into the client error taxonomy.
func (c *Client) mapFailure(method, path string, resp *http.Response) error {
	msg := decodeErrorMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		// Session teardown happens here, globally, once per 401.
		if err := c.store.Clear(); err != nil {
			c.logger.Errorf("Failed to clear session after 401: %v", err)
		}
		c.logger.Warnf("Received 401 on %s %s. Session cleared, returning to login.", method, path)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", method, path, ErrForbidden)
	case http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case http.StatusConflict:
		if msg != "" {
			return fmt.Errorf("%s %s: %s: %w", method, path, msg, ErrConflict)
		}
		return fmt.Errorf("%s %s: %w", method, path, ErrConflict)
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: msg}
	if resp.StatusCode >= 500 {
		reporting.CaptureError(apiErr, map[string]interface{}{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		})
	}
	return apiErr
}

// decodeErrorMessage pulls the server's {"error": "..."} message when present.
func decodeErrorMessage(r io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	return payload.Error
}
