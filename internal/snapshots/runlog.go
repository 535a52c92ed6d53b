package snapshots

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LogEntry is one diagnostic record of a refresh attempt.
type LogEntry struct {
	ID        string    `json:"id"`
	At        time.Time `json:"-"`
	Timestamp int64     `json:"timestamp"`
	Trigger   string    `json:"trigger"`
	State     string    `json:"state"`
	Total     int       `json:"total"`
	Fetched   int       `json:"fetched"`
	DateRange string    `json:"dateRange,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// NewLogEntry stamps a fresh entry with a random id.
func NewLogEntry(at time.Time, trigger string) LogEntry {
	at = at.UTC()
	return LogEntry{
		ID:        uuid.NewString(),
		At:        at,
		Timestamp: at.UnixMilli(),
		Trigger:   trigger,
	}
}

// RunLog appends refresh diagnostics. Entries are never updated or removed.
type RunLog interface {
	Append(ctx context.Context, entry LogEntry) error
}

// NopLog discards entries.
type NopLog struct{}

func (NopLog) Append(context.Context, LogEntry) error { return nil }

const firebaseLogsKey = "logs"

// FirebaseLog pushes entries under the logs node.
type FirebaseLog struct {
	db   Database
	path string
}

// NewFirebaseLog appends to {root}/logs.
func NewFirebaseLog(db Database, root string) *FirebaseLog {
	path := firebaseLogsKey
	if root != "" {
		path = root + "/" + firebaseLogsKey
	}
	return &FirebaseLog{db: db, path: path}
}

func (l *FirebaseLog) Append(ctx context.Context, entry LogEntry) error {
	_, err := l.db.Push(ctx, l.path, entry)
	return err
}
