// Package teststubs holds dependency-free doubles so any package's tests can
// use them without import cycles.
package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
)

// StubFetcher returns configured fixtures and error while tracking calls.
type StubFetcher struct {
	Fixtures []fixtures.Fixture
	Err      error
	Calls    atomic.Int32
	Windows  []fixtures.Window
	Notify   chan struct{}
	mu       sync.Mutex
}

func (s *StubFetcher) Fetch(ctx context.Context, window fixtures.Window) ([]fixtures.Fixture, error) {
	s.mu.Lock()
	s.Windows = append(s.Windows, window)
	s.mu.Unlock()
	s.Calls.Add(1)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	return s.Fixtures, s.Err
}

// StubMatchProvider answers match lookups from a map.
type StubMatchProvider struct {
	Matches map[int64]fixtures.MatchStatus
	Err     error
	Calls   atomic.Int32
}

func (s *StubMatchProvider) FetchMatch(ctx context.Context, id int64) (fixtures.MatchStatus, error) {
	s.Calls.Add(1)
	if s.Err != nil {
		return fixtures.MatchStatus{}, s.Err
	}
	m, ok := s.Matches[id]
	if !ok {
		return fixtures.MatchStatus{}, errors.New("match not found")
	}
	return m, nil
}

// StubSnapshotStore is an in-memory snapshot store with injectable failures.
type StubSnapshotStore struct {
	mu         sync.Mutex
	Snapshot   *fixtures.Snapshot
	ReadErr    error
	ReplaceErr error
	Replaced   int
}

func (s *StubSnapshotStore) LastUpdated(ctx context.Context) (*time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	if s.Snapshot == nil {
		return nil, nil
	}
	t := time.UnixMilli(s.Snapshot.LastUpdated).UTC()
	return &t, nil
}

func (s *StubSnapshotStore) Load(ctx context.Context) (fixtures.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return fixtures.Snapshot{}, s.ReadErr
	}
	if s.Snapshot == nil {
		return fixtures.Snapshot{}, errors.New("snapshot not found")
	}
	return *s.Snapshot, nil
}

func (s *StubSnapshotStore) Replace(ctx context.Context, snapshot fixtures.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReplaceErr != nil {
		return s.ReplaceErr
	}
	s.Replaced++
	s.Snapshot = &snapshot
	return nil
}

// StubRunLog records appended entries of any entry type.
type StubRunLog[T any] struct {
	mu      sync.Mutex
	Entries []T
	Err     error
}

func (l *StubRunLog[T]) Append(ctx context.Context, entry T) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, entry)
	return l.Err
}

func (l *StubRunLog[T]) All() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.Entries...)
}

// StubCompleter returns a canned chat completion and records prompts.
type StubCompleter struct {
	mu        sync.Mutex
	Content   string
	Err       error
	Prompts   []string
	MaxTokens []int
}

func (s *StubCompleter) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	s.mu.Lock()
	s.Prompts = append(s.Prompts, user)
	s.MaxTokens = append(s.MaxTokens, maxTokens)
	s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	return s.Content, nil
}
