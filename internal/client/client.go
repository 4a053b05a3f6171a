// Package client talks to the Instalite REST backend. A single transport
// core attaches the bearer token to protected requests and normalizes every
// failure into one error shape; thin resource clients on top of it map the
// endpoint table to typed operations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/instalite/instalite-go/internal/client/metrics"
	"github.com/instalite/instalite-go/internal/core/domain"
	"github.com/instalite/instalite-go/internal/core/ports"
)

const maxErrorBody = 1 << 20

// Config captures the transport settings.
type Config struct {
	// BaseURL is the backend origin, e.g. "http://localhost:5000".
	BaseURL string
	// Timeout bounds each request when the caller's context carries no
	// earlier deadline. Zero means 10s.
	Timeout time.Duration
}

// Client is the shared transport for every API call. It reads the TokenStore
// but never mutates it: callers decide whether a rejected session means the
// token should be cleared.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenStore
	log     zerolog.Logger

	mu      sync.Mutex
	pending map[string]struct{}
}

// New creates a Client. tokens is required for protected calls.
func New(cfg Config, tokens ports.TokenStore, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
		pending: make(map[string]struct{}),
	}
}

// APIError is the uniform failure shape. Message either echoes the backend's
// error field verbatim or carries the operation-specific fallback; it is
// never empty.
type APIError struct {
	// Status is the HTTP status code, or 0 when the request never
	// completed (network failure, undecodable success body).
	Status  int
	Message string
	cause   error
}

func (e *APIError) Error() string { return e.Message }

// Unwrap exposes ErrAuthRejected only for 401: the backend no longer accepts
// the session token. A 403 is an ownership or permission verdict on a live
// session and surfaces as a plain APIError.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return domain.ErrAuthRejected
	}
	return e.cause
}

// call describes one API operation for the transport core.
type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	auth        bool   // attach the stored bearer token
	token       string // explicit token, overrides the store (logout, validate)
	mutation    bool   // reject duplicate submission while pending
	fallback    string // message when the backend gives none
	body        io.Reader
	contentType string
	out         any
}

// invoke runs a call end to end: in-flight guard, token attachment, request,
// and error normalization.
func (c *Client) invoke(ctx context.Context, cl call) error {
	if cl.mutation {
		if !c.acquire(cl.op) {
			metrics.InFlightRejections.WithLabelValues(cl.op).Inc()
			return domain.ErrRequestInFlight
		}
		defer c.release(cl.op)
	}

	token := cl.token
	if token == "" && cl.auth {
		var ok bool
		token, ok = c.tokens.Get()
		if !ok {
			// Local short-circuit: no network call is made.
			metrics.RequestsTotal.WithLabelValues(cl.op, metrics.OutcomeUnauthenticated).Inc()
			return domain.ErrUnauthenticated
		}
	}

	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, cl.body)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(cl.op, metrics.OutcomeError).Inc()
		return &APIError{Message: cl.fallback, cause: err}
	}
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("operation", cl.op).Msg("request failed")
		metrics.RequestsTotal.WithLabelValues(cl.op, metrics.OutcomeError).Inc()
		return &APIError{Message: cl.fallback, cause: err}
	}
	defer resp.Body.Close()
	metrics.RequestDuration.WithLabelValues(cl.op).Observe(time.Since(start).Seconds())

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if cl.out != nil {
			if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
				metrics.RequestsTotal.WithLabelValues(cl.op, metrics.OutcomeError).Inc()
				return &APIError{Message: cl.fallback, cause: err}
			}
		}
		metrics.RequestsTotal.WithLabelValues(cl.op, metrics.OutcomeOK).Inc()
		return nil
	}

	msg := decodeErrorMessage(resp.Body)
	if msg == "" {
		msg = cl.fallback
	}

	outcome := metrics.OutcomeError
	if resp.StatusCode == http.StatusUnauthorized {
		outcome = metrics.OutcomeAuthRejected
	}
	metrics.RequestsTotal.WithLabelValues(cl.op, outcome).Inc()

	return &APIError{Status: resp.StatusCode, Message: msg}
}

func (c *Client) acquire(op string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, held := c.pending[op]; held {
		return false
	}
	c.pending[op] = struct{}{}
	return true
}

func (c *Client) release(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, op)
}

// decodeErrorMessage extracts the backend's error field, if any.
func decodeErrorMessage(r io.Reader) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&envelope); err != nil {
		return ""
	}
	return envelope.Error
}

// jsonBody marshals v into a request body reader.
func jsonBody(v any) (io.Reader, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(raw), nil
}
