package refresh

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/apperr"
	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/logging"
	"github.com/tauraronwasa/fixture-service/internal/metrics"
	"github.com/tauraronwasa/fixture-service/internal/providers"
	"github.com/tauraronwasa/fixture-service/internal/snapshots"
	"github.com/tauraronwasa/fixture-service/internal/timeutil"
)

const (
	TriggerHTTP     = "http"
	TriggerSchedule = "schedule"
)

// SnapshotWriter is the persistence side of a cycle.
type SnapshotWriter interface {
	LastUpdated(ctx context.Context) (*time.Time, error)
	Write(ctx context.Context, buckets fixtures.Buckets, now time.Time) (bool, error)
}

// Options tune a single cycle.
type Options struct {
	// Force bypasses the freshness gate.
	Force   bool
	Trigger string
}

// Config holds the bucketing scheme and freshness interval.
type Config struct {
	Scheme   Scheme
	Interval time.Duration
}

// Service runs refresh cycles: gate, fetch, categorise, write, summarise.
type Service struct {
	fetcher  providers.Fetcher
	writer   SnapshotWriter
	runLog   snapshots.RunLog
	scheme   Scheme
	interval time.Duration
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time
}

// NewService wires a refresh service. A nil runLog discards diagnostics.
func NewService(fetcher providers.Fetcher, writer SnapshotWriter, runLog snapshots.RunLog, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	if runLog == nil {
		runLog = snapshots.NopLog{}
	}
	return &Service{
		fetcher:  fetcher,
		writer:   writer,
		runLog:   runLog,
		scheme:   cfg.Scheme,
		interval: cfg.Interval,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
	}
}

// Refresh runs one cycle. Fetching always completes before anything is
// written, so a failed cycle leaves the stored snapshot untouched.
func (s *Service) Refresh(ctx context.Context, opts Options) (fixtures.Summary, error) {
	if s == nil || s.fetcher == nil || s.writer == nil {
		return fixtures.Summary{}, apperr.Unavailable("fixture refresh not configured")
	}
	trigger := opts.Trigger
	if trigger == "" {
		trigger = TriggerHTTP
	}
	logger := logging.FromContext(ctx, s.logger)
	started := time.Now()
	now := s.now().UTC()

	last, err := s.writer.LastUpdated(ctx)
	if err != nil {
		logging.Warn(logger, "freshness check failed, refreshing anyway", "error", err)
		last = nil
	}

	if !opts.Force && ShouldSkip(last, now, s.interval) {
		summary := fixtures.Summary{
			Status:      "success",
			State:       fixtures.StateFresh,
			Message:     fixtures.MessageFresh,
			LastUpdated: timeutil.ISO(*last),
		}
		s.metrics.RecordRefresh(trigger, string(summary.State), time.Since(started), nil)
		logging.Info(logger, "snapshot still fresh", logging.FieldTrigger, trigger)
		return summary, nil
	}

	window := s.scheme.Window(now)
	entry := snapshots.NewLogEntry(now, trigger)
	entry.DateRange = window.String()

	items, err := s.fetcher.Fetch(ctx, window)
	if err != nil {
		err = classifyFetchError(err)
		s.fail(ctx, logger, entry, trigger, started, err)
		return fixtures.Summary{}, err
	}

	buckets := Categorize(now, items, s.scheme)
	written, err := s.writer.Write(ctx, buckets, now)
	if err != nil {
		err = apperr.Wrap(apperr.KindStore, "failed to store fixtures", err)
		s.fail(ctx, logger, entry, trigger, started, err)
		return fixtures.Summary{}, err
	}

	summary := fixtures.Summary{
		Status:    "success",
		Total:     buckets.Total(),
		Fetched:   len(items),
		Counts:    buckets.Counts(),
		DateRange: window.String(),
	}
	if written {
		summary.State = fixtures.StateRefreshed
		summary.Message = fixtures.MessageRefreshed
		summary.LastUpdated = timeutil.ISO(now)
	} else {
		summary.State = fixtures.StateCached
		summary.Message = fixtures.MessageCached
		if last != nil {
			summary.LastUpdated = timeutil.ISO(*last)
		}
	}

	entry.State = string(summary.State)
	entry.Total = summary.Total
	entry.Fetched = summary.Fetched
	s.appendLog(ctx, logger, entry)

	s.metrics.RecordRefresh(trigger, string(summary.State), time.Since(started), nil)
	logging.Info(logger, "refresh complete",
		logging.FieldTrigger, trigger,
		logging.FieldState, string(summary.State),
		logging.FieldCount, summary.Total,
		logging.FieldDurationMS, time.Since(started).Milliseconds(),
	)
	return summary, nil
}

func (s *Service) fail(ctx context.Context, logger *slog.Logger, entry snapshots.LogEntry, trigger string, started time.Time, err error) {
	entry.State = "failed"
	entry.Error = err.Error()
	s.appendLog(ctx, logger, entry)
	s.metrics.RecordRefresh(trigger, "", time.Since(started), err)
	logging.Error(logger, "refresh failed", err, logging.FieldTrigger, trigger)
}

// appendLog never fails the cycle; diagnostics are best effort.
func (s *Service) appendLog(ctx context.Context, logger *slog.Logger, entry snapshots.LogEntry) {
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}
	if err := s.runLog.Append(ctx, entry); err != nil {
		logging.Warn(logger, "refresh log append failed", "error", err)
	}
}

func classifyFetchError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, providers.ErrProviderUnavailable) {
		return apperr.Wrap(apperr.KindUnavailable, "fixture provider not configured", err)
	}
	return apperr.Wrap(apperr.KindUpstream, "failed to fetch fixtures", err).WithDetail(providers.Detail(err))
}
