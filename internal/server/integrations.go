package server

import (
	"log/slog"

	"github.com/tauraronwasa/fixture-service/internal/analysis"
	"github.com/tauraronwasa/fixture-service/internal/config"
	"github.com/tauraronwasa/fixture-service/internal/http/handlers"
	"github.com/tauraronwasa/fixture-service/internal/logging"
	"github.com/tauraronwasa/fixture-service/internal/metrics"
	"github.com/tauraronwasa/fixture-service/internal/providers/openrouter"
	"github.com/tauraronwasa/fixture-service/internal/providers/sportmonks"
	"github.com/tauraronwasa/fixture-service/internal/upload"
	"github.com/tauraronwasa/fixture-service/internal/upload/catbox"
)

// buildCompleter returns nil without an OpenRouter key; AI routes then answer 503.
func buildCompleter(cfg config.Config, logger *slog.Logger) analysis.Completer {
	if cfg.OpenRouter.APIKey == "" {
		logging.Info(logger, "openrouter key not set, AI endpoints disabled")
		return nil
	}
	return openrouter.NewClient(openrouter.Config{
		BaseURL: cfg.OpenRouter.BaseURL,
		APIKey:  cfg.OpenRouter.APIKey,
		Model:   cfg.OpenRouter.Model,
		Referer: cfg.OpenRouter.Referer,
		Title:   cfg.Metrics.ServiceName,
	})
}

// buildUploads relays to Catbox; anonymous uploads work without a user hash.
func buildUploads(cfg config.UploadConfig, logger *slog.Logger, recorder *metrics.Recorder) *upload.Relay {
	host := catbox.NewClient(catbox.Config{URL: cfg.CatboxURL, UserHash: cfg.UserHash})
	return upload.NewRelay(host, logger, recorder)
}

func buildLiveScores(cfg config.SportMonksConfig, logger *slog.Logger) handlers.LiveScores {
	if cfg.APIKey == "" {
		logging.Info(logger, "sportmonks key not set, livescores disabled")
		return nil
	}
	return sportmonks.NewClient(sportmonks.Config{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey})
}
