package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/snapshots"
)

// NewMemoryWriter returns a snapshot writer over a fresh in-memory store.
func NewMemoryWriter() (*snapshots.Writer, *snapshots.MemoryStore) {
	store := snapshots.NewMemoryStore()
	return snapshots.NewWriter(store, nil), store
}

// SeedSnapshot stores SampleSnapshot(updated) in store.
func SeedSnapshot(t *testing.T, store snapshots.Store, updated time.Time) {
	t.Helper()
	if err := store.Replace(context.Background(), SampleSnapshot(updated)); err != nil {
		t.Fatalf("failed to seed snapshot: %v", err)
	}
}
