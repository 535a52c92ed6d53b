package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tauraronwasa/fixture-service/internal/http/handlers"
	"github.com/tauraronwasa/fixture-service/internal/http/middleware"
	"github.com/tauraronwasa/fixture-service/internal/metrics"
)

// RouterConfig carries the cross-cutting settings the router applies.
type RouterConfig struct {
	APIKey         string
	AllowedOrigins []string
	Logger         *slog.Logger
	Recorder       *metrics.Recorder
}

// NewRouter registers every route. Health probes skip the API key; all
// routes get CORS, request logging and panic recovery.
func NewRouter(handler *handlers.Handler, cfg RouterConfig) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(cfg.Logger, cfg.Recorder))
	r.Use(middleware.Recover(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIKey(cfg.APIKey, cfg.Logger))

		r.Route("/fixtures", func(r chi.Router) {
			r.Get("/", handler.Fixtures)
			r.Post("/refresh", handler.RefreshFixtures)
			r.Get("/status/{id}", handler.MatchStatus)
		})
		r.Post("/upload", handler.Upload)
		r.Post("/matches/analysis", handler.MatchAnalysis)
		r.Post("/teams", handler.Teams)
		r.Post("/ai", handler.Ask)
		r.Post("/livescores", handler.LiveScores)
		r.Post("/sarki", handler.Sarki)
	})
	return r
}
