package snapshots

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/logging"
)

// Writer applies the replacement policy on top of a Store.
type Writer struct {
	store  Store
	logger *slog.Logger
}

// NewWriter wraps store.
func NewWriter(store Store, logger *slog.Logger) *Writer {
	return &Writer{store: store, logger: logger}
}

// LastUpdated reports when the stored snapshot was written, nil when none exists.
func (w *Writer) LastUpdated(ctx context.Context) (*time.Time, error) {
	if w == nil || w.store == nil {
		return nil, errors.New("snapshot writer not configured")
	}
	return w.store.LastUpdated(ctx)
}

// Load returns the stored snapshot.
func (w *Writer) Load(ctx context.Context) (fixtures.Snapshot, error) {
	if w == nil || w.store == nil {
		return fixtures.Snapshot{}, errors.New("snapshot writer not configured")
	}
	return w.store.Load(ctx)
}

// Write replaces the stored snapshot with buckets stamped at now. Buckets
// holding no fixtures are never written; the previous snapshot is kept and
// Write reports false.
func (w *Writer) Write(ctx context.Context, buckets fixtures.Buckets, now time.Time) (bool, error) {
	if w == nil || w.store == nil {
		return false, errors.New("snapshot writer not configured")
	}
	logger := logging.FromContext(ctx, w.logger)

	if buckets.Total() == 0 {
		logging.Warn(logger, "empty fixture set, keeping cached snapshot")
		return false, nil
	}

	snapshot := fixtures.Snapshot{Fixtures: buckets, LastUpdated: now.UTC().UnixMilli()}
	if err := w.store.Replace(ctx, snapshot); err != nil {
		return false, err
	}
	logging.Info(logger, "snapshot replaced", logging.FieldCount, buckets.Total())
	return true, nil
}
