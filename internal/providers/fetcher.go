package providers

import (
	"context"
	"log/slog"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/logging"
)

// singleCallFetcher asks upstream for the whole window at once; any failure is fatal.
type singleCallFetcher struct {
	provider FixtureProvider
}

// NewSingleCallFetcher fetches the window with one upstream request.
func NewSingleCallFetcher(provider FixtureProvider) Fetcher {
	return &singleCallFetcher{provider: provider}
}

func (f *singleCallFetcher) Fetch(ctx context.Context, window fixtures.Window) ([]fixtures.Fixture, error) {
	if f == nil || f.provider == nil {
		return nil, ErrProviderUnavailable
	}
	return f.provider.FetchFixtures(ctx, window, "")
}

// perCompetitionFetcher walks competition codes one at a time behind a pacer.
type perCompetitionFetcher struct {
	provider FixtureProvider
	codes    []string
	pacer    *Pacer
	logger   *slog.Logger
	name     string
}

// NewPerCompetitionFetcher fetches each code sequentially with pacer spacing.
// A failed code is logged and contributes nothing; results are deduplicated by
// fixture id, keeping the first occurrence.
func NewPerCompetitionFetcher(provider FixtureProvider, codes []string, pacer *Pacer, logger *slog.Logger, name string) Fetcher {
	if pacer == nil {
		pacer = NewPacer(0)
	}
	return &perCompetitionFetcher{
		provider: provider,
		codes:    append([]string(nil), codes...),
		pacer:    pacer,
		logger:   logger,
		name:     name,
	}
}

func (f *perCompetitionFetcher) Fetch(ctx context.Context, window fixtures.Window) ([]fixtures.Fixture, error) {
	if f == nil || f.provider == nil {
		return nil, ErrProviderUnavailable
	}
	logger := logging.FromContext(ctx, f.logger)

	seen := make(map[int64]struct{})
	out := make([]fixtures.Fixture, 0)
	for _, code := range f.codes {
		if err := f.pacer.Wait(ctx); err != nil {
			logWithProvider(ctx, logger, slog.LevelWarn, f.name, "competition fetch canceled", logging.FieldCompetition, code)
			return nil, err
		}

		items, err := f.provider.FetchFixtures(ctx, window, code)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logWithProvider(ctx, logger, slog.LevelWarn, f.name, "competition fetch failed, skipping",
				logging.FieldCompetition, code, "error", err)
			continue
		}

		added := 0
		for _, item := range items {
			// Fixtures without an id cannot be matched across competitions.
			if item.ID != 0 {
				if _, dup := seen[item.ID]; dup {
					continue
				}
				seen[item.ID] = struct{}{}
			}
			out = append(out, item)
			added++
		}
		logWithProvider(ctx, logger, slog.LevelDebug, f.name, "competition fetched",
			logging.FieldCompetition, code, logging.FieldCount, added)
	}
	return out, nil
}
