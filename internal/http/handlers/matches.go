package handlers

import (
	"encoding/json"
	nethttp "net/http"

	"github.com/tauraronwasa/fixture-service/internal/analysis"
	"github.com/tauraronwasa/fixture-service/internal/apperr"
)

// analysisRequest accepts matchId as a number or a numeric string.
type analysisRequest struct {
	MatchID  json.Number `json:"matchId"`
	HomeName string      `json:"homeName"`
	AwayName string      `json:"awayName"`
}

// MatchAnalysis returns live match status plus AI head-to-head history.
func (h *Handler) MatchAnalysis(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.analysis == nil {
		writeAppError(w, r, apperr.Unavailable("match analysis is not configured"), h.logger)
		return
	}
	var in analysisRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}
	req := analysis.Request{HomeName: in.HomeName, AwayName: in.AwayName}
	if in.MatchID != "" {
		id, err := parseID(in.MatchID.String())
		if err != nil {
			writeAppError(w, r, apperr.Input("Invalid matchId"), h.logger)
			return
		}
		req.MatchID = id
	}

	report, err := h.analysis.Analyze(r.Context(), req)
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, report, h.logger)
}

type askRequest struct {
	Query string `json:"query"`
}

type askResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Entity  string `json:"entity"`
}

// Ask answers a free-form football question.
func (h *Handler) Ask(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.analysis == nil {
		writeAppError(w, r, apperr.Unavailable("AI is not configured"), h.logger)
		return
	}
	var in askRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}
	answer, err := h.analysis.Ask(r.Context(), in.Query)
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, askResponse{Status: "success", Message: answer.Message, Entity: answer.Entity}, h.logger)
}
