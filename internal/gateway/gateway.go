// Package gateway serves the single-page approval UI over HTTP: it renders
// token details on GET and relays confirmed approvals to the backend on POST.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/podkit/approvalgate/internal/probe"
	"github.com/podkit/approvalgate/internal/relay"
)

// Relay forwards a confirmed approval to the backend.
type Relay interface {
	Submit(ctx context.Context, token string) relay.Outcome
}

// ProbeSource reports the latest backend reachability check.
type ProbeSource interface {
	Snapshot() probe.Status
}

// Gateway is the HTTP server for the approval page.
type Gateway struct {
	config    Config
	logger    *slog.Logger
	relay     Relay
	probe     ProbeSource // nil when the probe is disabled
	metrics   *Metrics
	tmpl      *template.Template
	server    *http.Server
	startedAt time.Time
}

// New creates a gateway. probe may be nil when the reachability check is
// disabled; the health endpoint then reports "ok" without backend detail.
func New(cfg Config, rel Relay, ps ProbeSource, logger *slog.Logger) (*Gateway, error) {
	cfg.defaults()
	if rel == nil {
		return nil, errors.New("gateway: relay is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("gateway: parsing templates: %w", err)
	}

	return &Gateway{
		config:  cfg,
		logger:  logger,
		relay:   rel,
		probe:   ps,
		metrics: newMetrics(),
		tmpl:    tmpl,
	}, nil
}

// Start begins serving. It returns once the listener is bound; serving
// continues on a background goroutine.
func (g *Gateway) Start() error {
	g.startedAt = time.Now()

	g.server = &http.Server{
		Addr:         g.config.Bind,
		Handler:      g.buildRouter(),
		ReadTimeout:  g.config.ReadTimeout,
		WriteTimeout: g.config.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", g.config.Bind)
	if err != nil {
		return fmt.Errorf("gateway: listen failed: %w", err)
	}

	go func() {
		g.logger.Info("gateway listening", "addr", g.config.Bind)
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("gateway serve error", "error", err)
		}
	}()

	return nil
}

// Stop shuts the server down gracefully with the configured timeout.
func (g *Gateway) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, g.config.ShutdownTimeout)
	defer cancel()

	g.logger.Info("gateway shutting down")
	return g.server.Shutdown(shutdownCtx)
}
