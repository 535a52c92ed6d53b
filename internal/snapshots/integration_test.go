package snapshots

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := NewRedisClient(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	prefix := fmt.Sprintf("test-%d", time.Now().UnixNano())
	store := NewRedisStore(client, prefix)
	defer client.Del(context.Background(), prefix+":fixtures", prefix+":lastUpdated")

	if last, err := store.LastUpdated(ctx); err != nil || last != nil {
		t.Fatalf("expected empty store, got %v %v", last, err)
	}
	if err := store.Replace(ctx, snapshotAt(sampleBuckets())); err != nil {
		t.Fatalf("replace: %v", err)
	}
	snap, err := store.Load(ctx)
	if err != nil || snap.Fixtures.Total() != 2 || snap.LastUpdated != testNow.UnixMilli() {
		t.Fatalf("unexpected snapshot %+v %v", snap, err)
	}
}

func TestPostgresLogAppend(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := OpenPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	table := fmt.Sprintf("refresh_logs_test_%d", time.Now().UnixNano())
	log, err := NewPostgresLog(ctx, db, table)
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	defer db.ExecContext(context.Background(), "DROP TABLE IF EXISTS "+log.table)

	entry := NewLogEntry(testNow, "http")
	entry.State = "cached"
	if err := log.Append(ctx, entry); err != nil {
		t.Fatalf("append: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+log.table).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}
