package handlers

import (
	"errors"
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tauraronwasa/fixture-service/internal/apperr"
	"github.com/tauraronwasa/fixture-service/internal/domain/fixtures"
	"github.com/tauraronwasa/fixture-service/internal/logging"
	"github.com/tauraronwasa/fixture-service/internal/refresh"
	"github.com/tauraronwasa/fixture-service/internal/snapshots"
	"github.com/tauraronwasa/fixture-service/internal/timeutil"
)

type fixturesResponse struct {
	Status        string           `json:"status"`
	LastUpdated   string           `json:"lastUpdated"`
	LastUpdatedMS int64            `json:"lastUpdatedMs"`
	Total         int              `json:"total"`
	Fixtures      fixtures.Buckets `json:"fixtures"`
}

// RefreshFixtures runs a refresh cycle; ?force=true skips the freshness gate.
func (h *Handler) RefreshFixtures(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.refresher == nil {
		writeAppError(w, r, apperr.Unavailable("fixture refresh not configured"), h.logger)
		return
	}
	force, err := parseForce(r.URL.Query().Get("force"))
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}
	summary, err := h.refresher.Refresh(r.Context(), refresh.Options{Force: force, Trigger: refresh.TriggerHTTP})
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, summary, h.logger)
}

// Fixtures returns the stored snapshot without touching upstream.
func (h *Handler) Fixtures(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.snapshots == nil {
		writeAppError(w, r, apperr.Unavailable("snapshot store not configured"), h.logger)
		return
	}
	snap, err := h.snapshots.Load(r.Context())
	if errors.Is(err, snapshots.ErrNoSnapshot) {
		writeAppError(w, r, apperr.Wrap(apperr.KindNotFound, "No fixtures stored yet", err), h.logger)
		return
	}
	if err != nil {
		writeAppError(w, r, apperr.Wrap(apperr.KindStore, "failed to read fixtures", err), h.logger)
		return
	}

	logging.Info(loggerFromContext(r, h.logger), "served stored fixtures", logging.FieldCount, snap.Fixtures.Total())
	writeJSON(w, nethttp.StatusOK, fixturesResponse{
		Status:        "success",
		LastUpdated:   timeutil.ISO(snap.UpdatedAt()),
		LastUpdatedMS: snap.LastUpdated,
		Total:         snap.Fixtures.Total(),
		Fixtures:      snap.Fixtures,
	}, h.logger)
}

// MatchStatus looks up one match upstream; nothing is cached.
func (h *Handler) MatchStatus(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.matches == nil {
		writeAppError(w, r, apperr.Unavailable("match lookup not configured"), h.logger)
		return
	}
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, r, apperr.Input("Invalid match id"), h.logger)
		return
	}
	status, err := h.matches.FetchMatch(r.Context(), id)
	if err != nil {
		writeAppError(w, r, upstreamFailure(err, "Match not found", "Match status lookup failed"), h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, status, h.logger)
}

func parseForce(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	force, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperr.Input("force must be true or false")
	}
	return force, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
