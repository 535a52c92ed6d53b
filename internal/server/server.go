package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tauraronwasa/fixture-service/internal/analysis"
	"github.com/tauraronwasa/fixture-service/internal/config"
	httpserver "github.com/tauraronwasa/fixture-service/internal/http"
	"github.com/tauraronwasa/fixture-service/internal/http/handlers"
	"github.com/tauraronwasa/fixture-service/internal/logging"
	"github.com/tauraronwasa/fixture-service/internal/metrics"
	"github.com/tauraronwasa/fixture-service/internal/poller"
	"github.com/tauraronwasa/fixture-service/internal/providers"
	"github.com/tauraronwasa/fixture-service/internal/refresh"
	"github.com/tauraronwasa/fixture-service/internal/snapshots"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	refresher     *refresh.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	closers       []closer
}

// New wires storage, upstream clients, the refresh service and the router.
// Connections to Redis or Postgres are opened here so misconfiguration fails
// at boot rather than on the first refresh.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)

	storage, err := buildStorage(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	up, fetcher, err := newProviderFactory(logger, recorder).build(cfg)
	if err != nil {
		storage.close(logger)
		return nil, err
	}

	srv, err := assemble(cfg, logger, recorder, storage, up, fetcher)
	if err != nil {
		storage.close(logger)
		return nil, err
	}
	srv.metricsServer = metricsSrv
	srv.metricsStop = metricsShutdown
	return srv, nil
}

// assemble builds the services and HTTP stack from already-opened components.
func assemble(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, storage storageComponents, up upstreams, fetcher providers.Fetcher) (*Server, error) {
	style, err := refresh.ParseKeyStyle(cfg.Refresh.KeyStyle)
	if err != nil {
		return nil, err
	}
	scheme := refresh.Scheme{
		MinOffset:       cfg.Refresh.MinOffset,
		MaxOffset:       cfg.Refresh.MaxOffset,
		KeyStyle:        style,
		ExcludeInactive: cfg.Refresh.ExcludeInactive,
	}
	if err := scheme.Validate(); err != nil {
		return nil, err
	}

	writer := snapshots.NewWriter(storage.store, logger)
	refresher := refresh.NewService(fetcher, writer, storage.runLog, refresh.Config{
		Scheme:   scheme,
		Interval: cfg.Refresh.Interval,
	}, logger, recorder)

	var plr Poller
	var statusFn func() poller.Status
	if cfg.Refresh.Schedule > 0 {
		p := poller.New(refresher, logger, cfg.Refresh.Schedule)
		plr = p
		statusFn = p.Status
	}

	deps := handlers.Deps{
		Refresher:      refresher,
		Snapshots:      writer,
		Matches:        up.matches,
		Analysis:       analysis.NewService(up.matches, buildCompleter(cfg, logger), logger),
		Uploads:        buildUploads(cfg.Upload, logger, recorder),
		UploadMaxBytes: cfg.Upload.MaxBytes,
		LiveScores:     buildLiveScores(cfg.SportMonks, logger),
		Status:         statusFn,
		Logger:         logger,
	}
	if up.teams != nil {
		deps.Teams = up.teams
	}
	if storage.db != nil {
		deps.Records = storage.db
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		metrics:    recorder,
		refresher:  refresher,
		httpServer: buildHTTPServer(cfg, handlers.NewHandler(deps), logger, recorder),
		poller:     plr,
		closers:    storage.closers,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	router := httpserver.NewRouter(handler, httpserver.RouterConfig{
		APIKey:         cfg.APIKey,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
		Recorder:       recorder,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		s.poller.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	storage := storageComponents{closers: s.closers}
	storage.close(s.logger)
	s.closers = nil

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
