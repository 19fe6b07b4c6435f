package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
	"github.com/ihoflaz/opca-admin-dashboard/internal/metrics"
	"github.com/ihoflaz/opca-admin-dashboard/internal/platform/correlation"
	"github.com/ihoflaz/opca-admin-dashboard/internal/tokenstore"
)

// DefaultBaseURL is used when no API address is configured.
const DefaultBaseURL = "http://localhost:5002"

const defaultTimeout = 30 * time.Second

// RequestStage mutates or observes an outbound request before it is sent.
// Stages run in registration order after the built-in auth and logging
// stages.
type RequestStage func(*http.Request)

// ResponseStage observes the outcome of a request. On success resp is
// non-nil and err is nil; on failure err carries the classified error and
// resp is non-nil only when the server actually answered. Stages must not
// alter the response or the error.
type ResponseStage func(resp *http.Response, err error)

// Client is the configured request pipeline for the OPCA backend. Every
// call flows through the same two interceptor chains: outbound stages
// attach the bearer token and log the request, inbound stages log and
// classify the outcome. Errors are always propagated to the caller
// unchanged; the chains only observe.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      tokenstore.Store
	outbound   []RequestStage
	inbound    []ResponseStage
}

// Option customises a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout on the default transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRequestStage appends an outbound interceptor stage.
func WithRequestStage(s RequestStage) Option {
	return func(c *Client) { c.outbound = append(c.outbound, s) }
}

// WithResponseStage appends an inbound interceptor stage.
func WithResponseStage(s ResponseStage) Option {
	return func(c *Client) { c.inbound = append(c.inbound, s) }
}

// NewClient builds a client for the given base URL, reading the bearer
// token from store on every request. An empty baseURL falls back to
// DefaultBaseURL.
func NewClient(baseURL string, store tokenstore.Store, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		store:      store,
	}
	c.outbound = append(c.outbound, c.attachBearer, logRequest)
	c.inbound = append(c.inbound, logResponse)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved API address.
func (c *Client) BaseURL() string { return c.baseURL }

// attachBearer is the first outbound stage: when the store holds an
// access token, every request carries it.
func (c *Client) attachBearer(req *http.Request) {
	if c.store == nil {
		return
	}
	if token, ok := c.store.Get(tokenstore.KindAccessToken); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func logRequest(req *http.Request) {
	rid, ok := correlation.ID(req.Context())
	if !ok {
		rid = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", rid)
	slog.Debug("API request",
		"method", req.Method,
		"url", req.URL.String(),
		"has_body", req.Body != nil,
		"request_id", rid,
	)
}

// logResponse is the built-in inbound stage. The three failure classes
// get distinct log lines; success logs the status code. Logging here is
// observational only.
func logResponse(resp *http.Response, err error) {
	if err == nil {
		slog.Debug("API response", "status", resp.StatusCode)
		return
	}

	var statusErr *StatusError
	var connErr *ConnectivityError
	switch {
	case errors.As(err, &statusErr):
		slog.Warn("API error response", "status", statusErr.StatusCode, "body", string(statusErr.Body))
	case errors.As(err, &connErr):
		slog.Warn("API connection failure", "url", connErr.URL, "error", connErr.Err)
	default:
		slog.Warn("API request failed before sending", "error", err)
	}
}

func (c *Client) runInbound(resp *http.Response, err error) {
	for _, stage := range c.inbound {
		stage(resp, err)
	}
}

// doJSON sends a JSON request and returns the decoded envelope. payload
// may be nil for body-less methods.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload any) (*domain.Envelope, error) {
	var body []byte
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			rerr := &RequestError{Err: fmt.Errorf("encoding payload: %w", err)}
			metrics.APIRequestFailures.WithLabelValues("construction").Inc()
			c.runInbound(nil, rerr)
			return nil, rerr
		}
		body = raw
	}
	return c.roundTrip(ctx, method, path, query, "application/json", body)
}

// doMultipart sends a prepared multipart body with its own content type,
// overriding the JSON default.
func (c *Client) doMultipart(ctx context.Context, method, path string, contentType string, body []byte) (*domain.Envelope, error) {
	return c.roundTrip(ctx, method, path, nil, contentType, body)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, contentType string, body []byte) (*domain.Envelope, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		rerr := &RequestError{Err: err}
		metrics.APIRequestFailures.WithLabelValues("construction").Inc()
		c.runInbound(nil, rerr)
		return nil, rerr
	}
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for _, stage := range c.outbound {
		stage(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		cerr := &ConnectivityError{URL: target, Err: err}
		metrics.APIRequestFailures.WithLabelValues("connectivity").Inc()
		c.runInbound(nil, cerr)
		return nil, cerr
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.ObserveRequest(method, strconv.Itoa(resp.StatusCode), time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		cerr := &ConnectivityError{URL: target, Err: fmt.Errorf("reading response: %w", err)}
		c.runInbound(nil, cerr)
		return nil, cerr
	}

	if resp.StatusCode >= 400 {
		serr := &StatusError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(raw),
			Body:       raw,
		}
		c.runInbound(resp, serr)
		return nil, serr
	}

	c.runInbound(resp, nil)

	env := &domain.Envelope{}
	if len(raw) == 0 {
		return nil, &MalformedResponseError{Message: "empty response body"}
	}
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, &MalformedResponseError{Message: err.Error()}
	}
	return env, nil
}

// extractMessage pulls the backend's human-readable message out of an
// error body, tolerating both {"message": ...} and envelope shapes.
func extractMessage(raw []byte) string {
	var probe struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	if probe.Message != "" {
		return probe.Message
	}
	return probe.Error
}

// decodeData unwraps env.Data into T, rejecting envelopes that do not
// declare success or carry no data.
func decodeData[T any](env *domain.Envelope) (T, error) {
	var out T
	if !env.Success || len(env.Data) == 0 {
		return out, &MalformedResponseError{Message: env.Message}
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, &MalformedResponseError{Message: err.Error()}
	}
	return out, nil
}
