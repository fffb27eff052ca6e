// Package api is the gateway client for the BuyLink backend REST API. Every
// endpoint speaks the {success, data, error} envelope; this package owns
// envelope decoding, credential forwarding, timeouts and the circuit breaker,
// and translates legacy schema drift into the canonical types in one place.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	defaultTimeout    = 8 * time.Second
	idempotencyHeader = "Idempotency-Key"
	sessionCookieName = "BUYLINK_SID"
)

// Client issues calls against the backend API.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[httpResult]
	logger  *zap.Logger
}

type httpResult struct {
	status int
	body   []byte
}

// Option customises client construction.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger attaches a logger for request-level diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient constructs an API client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker[httpResult](gobreaker.Settings{
		Name:     "buylink-api",
		Interval: time.Minute,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && counts.TotalFailures*2 > counts.Requests
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("api breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return c
}

// envelope is the canonical response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

// do issues one request and returns the raw status and body. Transport
// failures and 5xx responses count against the circuit breaker; 4xx does not
// (a validation reject is not a backend outage).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, extra http.Header) (httpResult, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return httpResult{}, &Error{Err: err}
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return httpResult{}, &Error{Err: err}
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return httpResult{}, &Error{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, vals := range extra {
		for _, v := range vals {
			req.Header.Set(k, v)
		}
	}
	if sid := sessionCredential(ctx); sid != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sid})
	}

	res, err := c.breaker.Execute(func() (httpResult, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return httpResult{}, &Error{Err: err}
		}
		defer resp.Body.Close()
		raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return httpResult{}, &Error{Status: resp.StatusCode, Err: err}
		}
		out := httpResult{status: resp.StatusCode, body: raw}
		if resp.StatusCode >= 500 {
			return out, &Error{Status: resp.StatusCode, Message: drainMessage(raw)}
		}
		return out, nil
	})
	if err != nil {
		c.logger.Debug("api call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return res, err
	}
	return res, nil
}

// doEnvelope issues a request and decodes the {success, data, error} envelope
// into out. A non-2xx status is a failure even when a JSON body is present;
// the error string is not assumed to exist (some failures return empty bodies
// or HTML).
func (c *Client) doEnvelope(ctx context.Context, method, path string, query url.Values, body, out any, extra http.Header) error {
	res, err := c.do(ctx, method, path, query, body, extra)
	if err != nil {
		return err
	}
	if res.status < 200 || res.status > 299 {
		return &Error{Status: res.status, Message: drainMessage(res.body)}
	}
	var env envelope
	if err := json.Unmarshal(res.body, &env); err != nil {
		return &Error{Status: res.status, Err: err}
	}
	noData := len(env.Data) == 0 || string(env.Data) == "null"
	// null data is only a failure when the caller expects a payload; bulk
	// cart deletion succeeds with an empty envelope
	if !env.Success || (noData && out != nil) {
		msg := ""
		if env.Error != nil {
			msg = strings.TrimSpace(*env.Error)
		}
		return &Error{Status: res.status, Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Status: res.status, Err: err}
	}
	return nil
}

// drainMessage extracts a short printable message from a failure body. HTML
// error pages are not worth echoing to users.
func drainMessage(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || strings.HasPrefix(s, "<") {
		return ""
	}
	// envelope-shaped failure body: prefer its error string
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil {
		return strings.TrimSpace(*env.Error)
	}
	if len(s) > 256 {
		s = s[:256]
	}
	return s
}
