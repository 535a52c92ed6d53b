package snapshots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
)

const (
	firebaseFixturesKey    = "fixtures"
	firebaseLastUpdatedKey = "lastUpdated"
)

// Database is the subset of the RTDB client the store and logs need.
type Database interface {
	Get(ctx context.Context, path string, dest any) (bool, error)
	Patch(ctx context.Context, path string, values map[string]any) error
	Push(ctx context.Context, path string, value any) (string, error)
}

// FirebaseStore keeps fixtures and lastUpdated as siblings under root.
type FirebaseStore struct {
	db   Database
	root string
}

// NewFirebaseStore stores under root ("" for the database root).
func NewFirebaseStore(db Database, root string) *FirebaseStore {
	return &FirebaseStore{db: db, root: strings.Trim(root, "/")}
}

func (s *FirebaseStore) child(key string) string {
	if s.root == "" {
		return key
	}
	return s.root + "/" + key
}

func (s *FirebaseStore) LastUpdated(ctx context.Context) (*time.Time, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("firebase store not configured")
	}
	var ms int64
	found, err := s.db.Get(ctx, s.child(firebaseLastUpdatedKey), &ms)
	if err != nil {
		return nil, fmt.Errorf("read lastUpdated: %w", err)
	}
	if !found {
		return nil, nil
	}
	return millisToTime(ms), nil
}

// Load reads lastUpdated then fixtures; the root itself may hold unrelated
// children such as logs, so it is never read whole.
func (s *FirebaseStore) Load(ctx context.Context) (fixtures.Snapshot, error) {
	last, err := s.LastUpdated(ctx)
	if err != nil {
		return fixtures.Snapshot{}, err
	}
	if last == nil {
		return fixtures.Snapshot{}, ErrNoSnapshot
	}

	var buckets fixtures.Buckets
	if _, err := s.db.Get(ctx, s.child(firebaseFixturesKey), &buckets); err != nil {
		return fixtures.Snapshot{}, fmt.Errorf("read fixtures: %w", err)
	}
	return fixtures.Snapshot{Fixtures: buckets, LastUpdated: last.UnixMilli()}, nil
}

// Replace writes both children in one multi-path update, leaving sibling
// nodes such as logs untouched.
func (s *FirebaseStore) Replace(ctx context.Context, snapshot fixtures.Snapshot) error {
	if s == nil || s.db == nil {
		return errors.New("firebase store not configured")
	}
	err := s.db.Patch(ctx, s.root, map[string]any{
		firebaseFixturesKey:    snapshot.Fixtures,
		firebaseLastUpdatedKey: snapshot.LastUpdated,
	})
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
