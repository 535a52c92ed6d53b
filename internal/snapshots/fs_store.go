package snapshots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
)

// FSStore keeps the snapshot as one JSON file. Writes go to a temp file that
// is renamed over the target so readers never see a partial snapshot.
type FSStore struct {
	path string
}

// NewFSStore constructs an FS-backed snapshot store at path.
func NewFSStore(path string) *FSStore {
	return &FSStore{path: path}
}

// Path exposes the snapshot file location.
func (s *FSStore) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *FSStore) LastUpdated(ctx context.Context) (*time.Time, error) {
	snap, err := s.Load(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return millisToTime(snap.LastUpdated), nil
}

func (s *FSStore) Load(ctx context.Context) (fixtures.Snapshot, error) {
	if s == nil || s.path == "" {
		return fixtures.Snapshot{}, errors.New("snapshot store not configured")
	}
	var snap fixtures.Snapshot
	if err := decodeFile(s.path, &snap); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fixtures.Snapshot{}, ErrNoSnapshot
		}
		return fixtures.Snapshot{}, err
	}
	return snap, nil
}

func (s *FSStore) Replace(ctx context.Context, snapshot fixtures.Snapshot) error {
	if s == nil || s.path == "" {
		return errors.New("snapshot store not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
