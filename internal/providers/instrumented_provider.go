package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/logging"
	"github.com/tauraronwasa/fixture-service/internal/metrics"
)

// instrumentedProvider records every upstream attempt. It never retries.
type instrumentedProvider struct {
	inner        FixtureProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	now          func() time.Time
}

// NewInstrumentedProvider wraps inner with attempt, latency and rate-limit metrics.
func NewInstrumentedProvider(inner FixtureProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string) FixtureProvider {
	if providerName == "" {
		providerName = "unknown"
	}
	return &instrumentedProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		now:          time.Now,
	}
}

func (p *instrumentedProvider) FetchFixtures(ctx context.Context, window fixtures.Window, competition string) ([]fixtures.Fixture, error) {
	if p.inner == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	items, err := p.inner.FetchFixtures(ctx, window, competition)
	elapsed := p.now().Sub(start)

	p.metrics.RecordProviderAttempt(p.providerName, elapsed, err)
	logger := logging.FromContext(ctx, p.logger)
	if err != nil {
		if rl, ok := AsRateLimitError(err); ok {
			p.metrics.RecordRateLimit(p.providerName, rl.RetryAfter)
			logWithProvider(ctx, logger, slog.LevelWarn, p.providerName, "provider rate limited",
				"retry_after", rl.RetryAfter, logging.FieldCompetition, competition)
		}
		return nil, err
	}

	logWithProvider(ctx, logger, slog.LevelDebug, p.providerName, "provider fetch complete",
		logging.FieldCount, len(items),
		logging.FieldDurationMS, elapsed.Milliseconds(),
		logging.FieldDate, window.String(),
	)
	return items, nil
}
