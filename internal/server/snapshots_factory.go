package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tauraronwasa/fixture-service/internal/config"
	"github.com/tauraronwasa/fixture-service/internal/firebase"
	"github.com/tauraronwasa/fixture-service/internal/logging"
	"github.com/tauraronwasa/fixture-service/internal/snapshots"
)

// closer releases a connection opened during wiring.
type closer struct {
	name  string
	close func() error
}

// storageComponents holds where snapshots and run logs go. db is set
// whenever Firebase credentials are configured, even if neither the store
// nor the log uses it, because the Sarki route writes through it.
type storageComponents struct {
	store   snapshots.Store
	runLog  snapshots.RunLog
	db      *firebase.Client
	closers []closer
}

func buildStorage(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (storageComponents, error) {
	var comps storageComponents
	if cfg.Firebase.DatabaseURL != "" && cfg.Firebase.Secret != "" {
		db, err := firebase.NewClient(firebase.Config{
			DatabaseURL: cfg.Firebase.DatabaseURL,
			Secret:      cfg.Firebase.Secret,
		})
		if err != nil {
			return storageComponents{}, err
		}
		comps.db = db
	}
	if cfg.UsesFirebase() && comps.db == nil {
		return storageComponents{}, errors.New("firebase storage requires a database url and secret")
	}

	store, err := buildStore(ctx, cfg, comps.db, &comps)
	if err != nil {
		comps.close(logger)
		return storageComponents{}, err
	}
	comps.store = store

	runLog, err := buildRunLog(ctx, cfg, comps.db, &comps)
	if err != nil {
		comps.close(logger)
		return storageComponents{}, err
	}
	comps.runLog = runLog

	logging.Info(logger, "storage ready", "backend", cfg.Backend, "log_sink", cfg.LogSink)
	return comps, nil
}

func buildStore(ctx context.Context, cfg config.StorageConfig, db *firebase.Client, comps *storageComponents) (snapshots.Store, error) {
	switch cfg.Backend {
	case config.BackendFirebase, "":
		return snapshots.NewFirebaseStore(db, cfg.Firebase.Root), nil
	case config.BackendRedis:
		client, err := snapshots.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		comps.closers = append(comps.closers, closer{name: "redis", close: client.Close})
		return snapshots.NewRedisStore(client, cfg.RedisPrefix), nil
	case config.BackendFile:
		return snapshots.NewFSStore(cfg.SnapshotPath), nil
	case config.BackendMemory:
		return snapshots.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
}

func buildRunLog(ctx context.Context, cfg config.StorageConfig, db *firebase.Client, comps *storageComponents) (snapshots.RunLog, error) {
	switch cfg.LogSink {
	case config.SinkFirebase, "":
		return snapshots.NewFirebaseLog(db, cfg.Firebase.Root), nil
	case config.SinkPostgres:
		sqlDB, err := snapshots.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		comps.closers = append(comps.closers, closer{name: "postgres", close: sqlDB.Close})
		pgLog, err := snapshots.NewPostgresLog(ctx, sqlDB, cfg.LogTable)
		if err != nil {
			return nil, err
		}
		return pgLog, nil
	case config.SinkNone:
		return snapshots.NopLog{}, nil
	default:
		return nil, fmt.Errorf("unknown log sink %q", cfg.LogSink)
	}
}

func (c *storageComponents) close(logger *slog.Logger) {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].close(); err != nil {
			logging.Warn(logger, "close failed", "component", c.closers[i].name, "error", err)
		}
	}
	c.closers = nil
}
