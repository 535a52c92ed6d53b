package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/tauraronwasa/fixture-service/internal/analysis"
	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/poller"
	"github.com/tauraronwasa/fixture-service/internal/providers"
	"github.com/tauraronwasa/fixture-service/internal/providers/sportmonks"
	"github.com/tauraronwasa/fixture-service/internal/refresh"
	"github.com/tauraronwasa/fixture-service/internal/upload"
)

type nowFunc func() time.Time

// Refresher runs one fixture refresh cycle.
type Refresher interface {
	Refresh(ctx context.Context, opts refresh.Options) (fixtures.Summary, error)
}

// SnapshotReader returns the stored snapshot.
type SnapshotReader interface {
	Load(ctx context.Context) (fixtures.Snapshot, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (analysis.Report, error)
	Ask(ctx context.Context, query string) (analysis.Answer, error)
}

type Uploader interface {
	Upload(ctx context.Context, p *upload.Payload) (upload.Result, error)
}

type LiveScores interface {
	Lookup(ctx context.Context, query string) (sportmonks.Result, error)
}

// RecordWriter overwrites one database path.
type RecordWriter interface {
	Put(ctx context.Context, path string, value any) error
}

// Deps lists every collaborator the handlers use. Nil optional
// collaborators make their routes answer 503.
type Deps struct {
	Refresher      Refresher
	Snapshots      SnapshotReader
	Matches        providers.MatchProvider
	Teams          providers.TeamProvider
	Analysis       Analyzer
	Uploads        Uploader
	UploadMaxBytes int64
	LiveScores     LiveScores
	Records        RecordWriter
	Status         func() poller.Status
	Logger         *slog.Logger
}

// Handler wires HTTP routes to the domain services.
type Handler struct {
	refresher      Refresher
	snapshots      SnapshotReader
	matches        providers.MatchProvider
	teams          providers.TeamProvider
	analysis       Analyzer
	uploads        Uploader
	uploadMaxBytes int64
	liveScores     LiveScores
	records        RecordWriter
	statusFn       func() poller.Status
	logger         *slog.Logger
	now            nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		refresher:      deps.Refresher,
		snapshots:      deps.Snapshots,
		matches:        deps.Matches,
		teams:          deps.Teams,
		analysis:       deps.Analysis,
		uploads:        deps.Uploads,
		uploadMaxBytes: deps.UploadMaxBytes,
		liveScores:     deps.LiveScores,
		records:        deps.Records,
		statusFn:       deps.Status,
		logger:         deps.Logger,
		now:            time.Now,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic. Without a scheduled refresher there
// is nothing to wait for.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "Endpoint not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong verb.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "Method not allowed", h.logger)
}
