package snapshots

import (
	"context"
	"sync"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
)

// MemoryStore keeps the snapshot in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	snapshot *fixtures.Snapshot
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LastUpdated(ctx context.Context) (*time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil, nil
	}
	return millisToTime(s.snapshot.LastUpdated), nil
}

func (s *MemoryStore) Load(ctx context.Context) (fixtures.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return fixtures.Snapshot{}, ErrNoSnapshot
	}
	return *s.snapshot, nil
}

// Replace swaps the current snapshot for a new one.
func (s *MemoryStore) Replace(ctx context.Context, snapshot fixtures.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = &snapshot
	return nil
}
