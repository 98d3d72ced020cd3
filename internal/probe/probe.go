// Package probe runs the periodic backend reachability check that feeds the
// health endpoint.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Pinger checks whether the backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the most recent reachability result.
type Status struct {
	OK        bool      `json:"reachable"`
	Detail    string    `json:"detail,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Prober schedules reachability checks against the backend. A tick is
// skipped when the previous check is still running (TryLock — atomic, no
// race between check and acquire).
type Prober struct {
	pinger   Pinger
	schedule string
	logger   *slog.Logger

	mu     sync.Mutex
	status Status

	tickLock sync.Mutex

	cron   *cron.Cron
	cancel context.CancelFunc
}

// New creates a prober with a 5-field cron schedule (e.g. "* * * * *").
func New(pinger Pinger, schedule string, logger *slog.Logger) *Prober {
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{
		pinger:   pinger,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs an initial check synchronously, then begins periodic checks.
// Returns an error if the schedule expression is invalid.
func (p *Prober) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	p.cron = cron.New(cron.WithParser(parser))

	if _, err := p.cron.AddFunc(p.schedule, func() {
		if !p.tickLock.TryLock() {
			p.logger.Warn("probe: check still running, skipping tick")
			return
		}
		defer p.tickLock.Unlock()
		p.runOnce(ctx)
	}); err != nil {
		cancel()
		return fmt.Errorf("probe: invalid schedule %q: %w", p.schedule, err)
	}

	// Initial check so the health endpoint has data before the first tick.
	p.runOnce(ctx)

	p.cron.Start()
	p.logger.Info("probe: started", "schedule", p.schedule)
	return nil
}

// Stop halts scheduling and waits for an in-flight check to finish.
func (p *Prober) Stop(_ context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	if p.cron != nil {
		<-p.cron.Stop().Done()
		p.logger.Info("probe: stopped")
	}
	return nil
}

// Snapshot returns the most recent check result. The zero Status (CheckedAt
// unset) means no check has completed yet.
func (p *Prober) Snapshot() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Prober) runOnce(ctx context.Context) {
	st := Status{OK: true, CheckedAt: time.Now()}
	if err := p.pinger.Ping(ctx); err != nil {
		st.OK = false
		st.Detail = err.Error()
		p.logger.Warn("probe: backend unreachable", "error", err)
	}

	p.mu.Lock()
	p.status = st
	p.mu.Unlock()
}
