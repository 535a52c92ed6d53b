package snapshots

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const defaultLogTable = "refresh_logs"

// PostgresLog stores entries in a table, created on first use.
type PostgresLog struct {
	db    *sql.DB
	table string
}

// OpenPostgres opens a pooled connection and verifies it.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresLog ensures table exists and returns a log writing to it.
func NewPostgresLog(ctx context.Context, db *sql.DB, table string) (*PostgresLog, error) {
	if table == "" {
		table = defaultLogTable
	}
	l := &PostgresLog{db: db, table: pq.QuoteIdentifier(table)}
	if _, err := db.ExecContext(ctx, l.schema()); err != nil {
		return nil, fmt.Errorf("create %s: %w", table, err)
	}
	return l, nil
}

func (l *PostgresLog) schema() string {
	return `CREATE TABLE IF NOT EXISTS ` + l.table + ` (
		id UUID PRIMARY KEY,
		logged_at TIMESTAMPTZ NOT NULL,
		trigger TEXT NOT NULL,
		state TEXT NOT NULL,
		total INTEGER NOT NULL,
		fetched INTEGER NOT NULL,
		date_range TEXT,
		error TEXT
	)`
}

func (l *PostgresLog) Append(ctx context.Context, entry LogEntry) error {
	query := `INSERT INTO ` + l.table + `
		(id, logged_at, trigger, state, total, fetched, date_range, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := l.db.ExecContext(ctx, query,
		entry.ID,
		entry.At,
		entry.Trigger,
		entry.State,
		entry.Total,
		entry.Fetched,
		nullString(entry.DateRange),
		nullString(entry.Error),
	)
	if err != nil {
		return fmt.Errorf("insert refresh log: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
