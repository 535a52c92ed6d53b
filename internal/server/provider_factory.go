package server

import (
	"log/slog"

	"github.com/tauraronwasa/fixture-service/internal/config"
	"github.com/tauraronwasa/fixture-service/internal/logging"
	"github.com/tauraronwasa/fixture-service/internal/metrics"
	"github.com/tauraronwasa/fixture-service/internal/providers"
)

// providerFactory assembles the upstream with shared wrappers (metrics + pacing).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build selects the upstream and returns it with the fetcher a refresh cycle uses.
func (f providerFactory) build(cfg config.Config) (upstreams, providers.Fetcher, error) {
	up, err := selectProvider(cfg)
	if err != nil {
		return upstreams{}, nil, err
	}
	name := normalizeProviderName(up.name, up.fixtures)
	instrumented := providers.NewInstrumentedProvider(up.fixtures, f.logger, f.metrics, name)
	up.fixtures = instrumented
	return up, f.fetcher(cfg.Fetch, instrumented, name), nil
}

func (f providerFactory) fetcher(cfg config.FetchConfig, provider providers.FixtureProvider, name string) providers.Fetcher {
	if cfg.Mode != config.FetchCompetition {
		return providers.NewSingleCallFetcher(provider)
	}
	logging.Info(f.logger, "fetching per competition",
		logging.FieldProvider, name,
		logging.FieldCount, len(cfg.Competitions),
		logging.FieldDurationMS, cfg.Delay.Milliseconds(),
	)
	return providers.NewPerCompetitionFetcher(provider, cfg.Competitions, providers.NewPacer(cfg.Delay), f.logger, name)
}
