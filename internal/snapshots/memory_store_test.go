package snapshots

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	last, err := store.LastUpdated(ctx)
	if err != nil || last != nil {
		t.Fatalf("expected no timestamp on empty store, got %v %v", last, err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}

	w := NewWriter(store, nil)
	if _, err := w.Write(ctx, sampleBuckets(), testNow); err != nil {
		t.Fatalf("write: %v", err)
	}

	last, err = store.LastUpdated(ctx)
	if err != nil || last == nil || !last.Equal(testNow) {
		t.Fatalf("expected lastUpdated %s, got %v %v", testNow, last, err)
	}
	snap, err := store.Load(ctx)
	if err != nil || snap.Fixtures.Total() != 2 {
		t.Fatalf("unexpected snapshot %+v %v", snap, err)
	}
}

func TestMemoryStoreReplaceHonoursCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore()
	if _, err := NewWriter(store, nil).Write(ctx, sampleBuckets(), testNow); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if last, _ := store.LastUpdated(context.Background()); last != nil {
		t.Fatalf("expected nothing written")
	}
}
