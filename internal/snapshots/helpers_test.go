package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func sampleBuckets() fixtures.Buckets {
	b := fixtures.NewBuckets("yesterday", "today", "tomorrow")
	b.Add("today", fixtures.New(1, testNow.Add(3*time.Hour), fixtures.StatusTimed))
	b.Add("tomorrow", fixtures.New(2, testNow.Add(27*time.Hour), fixtures.StatusScheduled))
	return b
}

// fakeDatabase is an in-memory stand-in for the RTDB client keyed by path.
type fakeDatabase struct {
	mu      sync.Mutex
	nodes   map[string]json.RawMessage
	pushed  map[string][]json.RawMessage
	patches int
	err     error
}

func newFakeDatabase() *fakeDatabase {
	return &fakeDatabase{nodes: map[string]json.RawMessage{}, pushed: map[string][]json.RawMessage{}}
}

func (f *fakeDatabase) Get(ctx context.Context, path string, dest any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	raw, ok := f.nodes[strings.Trim(path, "/")]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeDatabase) Patch(ctx context.Context, path string, values map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.patches++
	for key, value := range values {
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		full := key
		if p := strings.Trim(path, "/"); p != "" {
			full = p + "/" + key
		}
		f.nodes[full] = data
	}
	return nil
}

func (f *fakeDatabase) Push(ctx context.Context, path string, value any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	f.pushed[path] = append(f.pushed[path], data)
	return "key", nil
}

// failingStore fails every call with err.
type failingStore struct{ err error }

func (s failingStore) LastUpdated(context.Context) (*time.Time, error) { return nil, s.err }
func (s failingStore) Load(context.Context) (fixtures.Snapshot, error) {
	return fixtures.Snapshot{}, s.err
}
func (s failingStore) Replace(context.Context, fixtures.Snapshot) error { return s.err }

var errBoom = errors.New("boom")
