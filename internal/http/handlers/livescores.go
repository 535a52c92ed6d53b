package handlers

import (
	"encoding/json"
	"errors"
	nethttp "net/http"

	"github.com/tauraronwasa/fixture-service/internal/apperr"
	"github.com/tauraronwasa/fixture-service/internal/providers/sportmonks"
)

type liveScoresResponse struct {
	Status    string          `json:"status"`
	SourceURL string          `json:"source_url"`
	Data      json.RawMessage `json:"data"`
}

// LiveScores proxies SportMonks by keyword: today, tomorrow or next.
func (h *Handler) LiveScores(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.liveScores == nil {
		writeAppError(w, r, apperr.Unavailable("livescores are not configured"), h.logger)
		return
	}
	var in askRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}
	result, err := h.liveScores.Lookup(r.Context(), in.Query)
	if errors.Is(err, sportmonks.ErrUnknownQuery) {
		writeAppError(w, r, apperr.Wrap(apperr.KindInput, "Unrecognised query", err), h.logger)
		return
	}
	if err != nil {
		writeAppError(w, r, upstreamFailure(err, "No fixtures found", "Livescore lookup failed"), h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, liveScoresResponse{Status: "success", SourceURL: result.SourceURL, Data: result.Data}, h.logger)
}
