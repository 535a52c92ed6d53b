package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/logging"
	"github.com/tauraronwasa/fixture-service/internal/refresh"
)

const defaultInterval = 30 * time.Minute

// Refresher runs a single refresh cycle.
type Refresher interface {
	Refresh(ctx context.Context, opts refresh.Options) (fixtures.Summary, error)
}

// Poller triggers a refresh cycle on an interval. The freshness gate still
// applies, so a tick shorter than the refresh interval is cheap.
type Poller struct {
	refresher Refresher
	logger    *slog.Logger
	interval  time.Duration
	now       func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastState           fixtures.State
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. A non-positive interval falls back to the default.
func New(refresher Refresher, logger *slog.Logger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		refresher: refresher,
		logger:    logger,
		interval:  interval,
		now:       time.Now,
		done:      make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.ticker = time.NewTicker(p.interval)
	p.startMu.Unlock()

	go func() {
		logging.Info(p.logger, "poller started", logging.FieldDurationMS, p.interval.Milliseconds())
		// Warm the snapshot on boot.
		p.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) runOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)
	summary, err := p.refresher.Refresh(ctx, refresh.Options{Trigger: refresh.TriggerSchedule})
	if err != nil {
		logging.Error(p.logger, "scheduled refresh failed", err, logging.FieldDurationMS, time.Since(start).Milliseconds())
		p.recordFailure(err, start)
		return
	}
	p.recordSuccess(start, summary.State)
	logging.Info(p.logger, "scheduled refresh finished",
		logging.FieldState, string(summary.State),
		logging.FieldCount, summary.Total,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, state fixtures.State) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastState = state
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Interval reports the tick period.
func (p *Poller) Interval() time.Duration {
	return p.interval
}
