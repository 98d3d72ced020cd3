// Package relay forwards confirmed approvals to the backend service and
// interprets its responses into user-facing outcomes.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	actionPath = "/api/v1/approval/action"
	testPath   = "/api/v1/approval/test"

	// maxResponseSize caps how much of a backend response body is read.
	maxResponseSize = 1 << 20
)

const (
	defaultTimeout      = 30 * time.Second
	defaultProbeTimeout = 10 * time.Second
)

// Messages surfaced to the user for transport-level failures. Wording follows
// the approval emails' tone: actionable, no internals.
const (
	msgSuccess     = "Approval processed successfully"
	msgUnreachable = "Cannot connect to the backend server. Please try again later."
	msgTimeout     = "Request timed out. Please try again."
)

// Config holds relay client settings.
type Config struct {
	// BaseURL is the backend base URL. It is resolved from configuration
	// only — never from a token claim, which would let an attacker-crafted
	// token redirect approval traffic.
	BaseURL string

	// Timeout bounds one approval call.
	Timeout time.Duration

	// ProbeTimeout bounds one reachability check.
	ProbeTimeout time.Duration

	// Headers are sent on every outbound request. Used to bypass
	// tunnel-proxy interstitials (e.g. "ngrok-skip-browser-warning").
	Headers map[string]string
}

// Outcome is the user-facing result of one relay attempt. It lives for a
// single render cycle and is never persisted.
type Outcome struct {
	OK      bool
	Message string
}

// Client relays approval decisions to the backend.
type Client struct {
	base    string
	headers map[string]string
	logger  *slog.Logger
	http    *http.Client
	probe   *http.Client
}

// New creates a relay client. Zero timeouts fall back to defaults.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = defaultProbeTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		headers: cfg.Headers,
		logger:  logger,
		http:    &http.Client{Timeout: cfg.Timeout},
		probe:   &http.Client{Timeout: cfg.ProbeTimeout},
	}
}

// resultBody is the backend's 200 response shape.
type resultBody struct {
	Message string `json:"message"`
}

// errorBody is the backend's non-200 response shape.
type errorBody struct {
	Error string `json:"error"`
}

// Submit forwards the token to the backend approval endpoint and interprets
// the result. The caller is responsible for decode and expiry gating; Submit
// does not re-check. Every failure is returned as an Outcome — Submit never
// panics and never surfaces a raw Go error to the page.
//
// Each attempt carries a fresh X-Request-ID so an idempotent backend can
// deduplicate double-submits; the relay itself keeps no state.
func (c *Client) Submit(ctx context.Context, token string) Outcome {
	requestID := uuid.NewString()

	endpoint := c.base + actionPath + "?token=" + url.QueryEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Outcome{Message: "An error occurred: " + err.Error()}
	}
	c.applyHeaders(req)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		mapped := mapConnectionError(err)
		c.logger.Warn("relay: approval call failed",
			"request_id", requestID,
			"error", mapped,
		)
		return transportOutcome(mapped)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Outcome{Message: "An error occurred: " + err.Error()}
	}

	c.logger.Info("relay: approval call completed",
		"request_id", requestID,
		"status", resp.StatusCode,
	)

	if resp.StatusCode == http.StatusOK {
		// Non-JSON or message-less 200 bodies still count as success.
		var rb resultBody
		if json.Unmarshal(body, &rb) == nil && rb.Message != "" {
			return Outcome{OK: true, Message: rb.Message}
		}
		return Outcome{OK: true, Message: msgSuccess}
	}

	var eb errorBody
	if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
		return Outcome{Message: eb.Error}
	}
	return Outcome{Message: fmt.Sprintf("Server error: %d", resp.StatusCode)}
}

// Ping checks backend reachability via the test endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+testPath, nil)
	if err != nil {
		return err
	}
	c.applyHeaders(req)

	resp, err := c.probe.Do(req)
	if err != nil {
		return mapConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrBackend, resp.StatusCode)
	}
	return nil
}

func (c *Client) applyHeaders(req *http.Request) {
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
}

// transportOutcome translates a mapped transport error into the outcome
// message shown to the user.
func transportOutcome(err error) Outcome {
	switch {
	case errors.Is(err, ErrTimeout):
		return Outcome{Message: msgTimeout}
	case errors.Is(err, ErrUnreachable):
		return Outcome{Message: msgUnreachable}
	default:
		return Outcome{Message: "An error occurred: " + err.Error()}
	}
}
