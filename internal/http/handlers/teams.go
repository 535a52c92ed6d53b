package handlers

import (
	"encoding/json"
	nethttp "net/http"
	"strings"

	"github.com/tauraronwasa/fixture-service/internal/apperr"
	"github.com/tauraronwasa/fixture-service/internal/providers"
)

const (
	actionTeamDetails   = "get_team_details"
	actionPlayerDetails = "get_player_details"
)

type teamsRequest struct {
	Action   string      `json:"action"`
	TeamID   json.Number `json:"teamId"`
	PlayerID json.Number `json:"playerId"`
	TimeZone string      `json:"timeZone"`
}

type dataResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// Teams serves team and player profiles by action.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.teams == nil {
		writeAppError(w, r, apperr.Unavailable("team lookup not configured"), h.logger)
		return
	}
	var in teamsRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}

	switch in.Action {
	case actionTeamDetails:
		id, err := parseID(in.TeamID.String())
		if err != nil {
			writeAppError(w, r, apperr.Input("teamId is required"), h.logger)
			return
		}
		tz := strings.TrimSpace(in.TimeZone)
		if _, err := providers.LoadZone(tz); err != nil {
			writeAppError(w, r, apperr.Input("Invalid timeZone"), h.logger)
			return
		}
		details, err := h.teams.FetchTeam(r.Context(), id, tz)
		if err != nil {
			writeAppError(w, r, upstreamFailure(err, "Team not found", "Team lookup failed"), h.logger)
			return
		}
		writeJSON(w, nethttp.StatusOK, dataResponse{Status: "success", Data: details}, h.logger)
	case actionPlayerDetails:
		id, err := parseID(in.PlayerID.String())
		if err != nil {
			writeAppError(w, r, apperr.Input("playerId is required"), h.logger)
			return
		}
		person, err := h.teams.FetchPerson(r.Context(), id)
		if err != nil {
			writeAppError(w, r, upstreamFailure(err, "Player not found", "Player lookup failed"), h.logger)
			return
		}
		writeJSON(w, nethttp.StatusOK, dataResponse{Status: "success", Data: map[string]json.RawMessage{"person": person}}, h.logger)
	default:
		writeAppError(w, r, apperr.Input("Unknown action").WithDetail(map[string]any{
			"allowed": []string{actionTeamDetails, actionPlayerDetails},
		}), h.logger)
	}
}
