package snapshots

import (
	"context"
	"errors"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
)

// ErrNoSnapshot is returned by Load when nothing has been stored yet.
var ErrNoSnapshot = errors.New("snapshot not found")

// Store persists the single current fixture snapshot. Replace must swap
// fixtures and lastUpdated together or not at all.
type Store interface {
	LastUpdated(ctx context.Context) (*time.Time, error)
	Load(ctx context.Context) (fixtures.Snapshot, error)
	Replace(ctx context.Context, snapshot fixtures.Snapshot) error
}

func millisToTime(ms int64) *time.Time {
	t := time.UnixMilli(ms).UTC()
	return &t
}
