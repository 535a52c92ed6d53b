package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/tauraronwasa/fixture-service/internal/config"
	"github.com/tauraronwasa/fixture-service/internal/logging"
	"github.com/tauraronwasa/fixture-service/internal/server"
)

const serviceName = "fixture-service"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(run())
}

func run() int {
	// A missing .env is normal in containers.
	_ = godotenv.Load()

	cfg, err := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: cfg.Version,
	})
	if err != nil {
		logging.Error(logger, "invalid configuration", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		logging.Error(logger, "invalid configuration", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "server wiring failed", err)
		return 1
	}
	srv.Run(ctx, stop)
	return 0
}
