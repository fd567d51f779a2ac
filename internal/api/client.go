// Package api is the typed client for the remote rental backend. It owns the
// normalization boundary: responses arrive in a data/attributes/relationship
// envelope with no field guaranteed, and leave this package as fully-populated
// domain structs.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"carbook/internal/logger"
	"carbook/internal/store"
)

// Error is a failed backend call, carrying the HTTP status, a user-facing
// message derived from it and the server-provided detail when present.
type Error struct {
	Status  int
	Message string
	Detail  string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// UserMessage is the notification text shown for this failure.
func (e *Error) UserMessage() string {
	if e.Status == 422 && e.Detail != "" {
		return e.Message + " " + e.Detail
	}
	return e.Message
}

func statusMessage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return "Your session has expired. Please sign in again."
	case status == http.StatusNotFound:
		return "The requested resource was not found."
	case status == http.StatusUnprocessableEntity:
		return "The submitted data was rejected."
	case status >= 500:
		return "The server failed to process the request. Please try again."
	default:
		return "The request could not be completed. Please try again."
	}
}

// Client talks to the rental backend. The customer surface and the admin
// back office use separate clients bound to separate token slots.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given backend. Every request carries a
// bearer token read from the tokenKey slot of durable storage, when present.
func NewClient(baseURL string, timeout time.Duration, st store.Store, tokenKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &bearerTransport{
				store:    st,
				tokenKey: tokenKey,
				base:     http.DefaultTransport,
			},
		},
	}
}

// bearerTransport injects Authorization from durable storage on every request.
type bearerTransport struct {
	store    store.Store
	tokenKey string
	base     http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, err := t.store.Get(t.tokenKey); err == nil && token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}

// errorEnvelope covers the shapes the backend uses for failures.
type errorEnvelope struct {
	Message string              `json:"message"`
	Err     string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

func (e *errorEnvelope) detail() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != "" {
		return e.Err
	}
	for _, msgs := range e.Errors {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	return ""
}

// do performs one backend call and decodes a successful body into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.ExternalServiceCall("backend", method+" "+path)
	resp, err := c.http.Do(req)
	logger.ExternalServiceResult("backend", method+" "+path, err)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return &Error{
			Status:  resp.StatusCode,
			Message: statusMessage(resp.StatusCode),
			Detail:  envelope.detail(),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
