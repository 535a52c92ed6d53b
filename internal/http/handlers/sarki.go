package handlers

import (
	nethttp "net/http"
	"strings"

	"github.com/tauraronwasa/fixture-service/internal/apperr"
	"github.com/tauraronwasa/fixture-service/internal/firebase"
)

const sarkiPath = "Sarki"

type sarkiRequest struct {
	UserUID     string `json:"userUid"`
	FullName    string `json:"fullName"`
	ProfileLogo string `json:"profileLogo"`
	TeamLogo    string `json:"teamLogo"`
	CommentText string `json:"commentText"`
	CommentTime string `json:"commentTime"`
	Team1Logo   string `json:"team1Logo"`
	Team1Name   string `json:"team1Name"`
	Team2Logo   string `json:"team2Logo"`
	Team2Name   string `json:"team2Name"`
}

// sarkiRecord is the featured comment as stored; likes reset on every write.
type sarkiRecord struct {
	sarkiRequest
	SarkiLove int  `json:"sarkiLove"`
	IsActive  bool `json:"isActive"`
	Timestamp any  `json:"timestamp"`
}

// Sarki replaces the featured comment record.
func (h *Handler) Sarki(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.records == nil {
		writeAppError(w, r, apperr.Unavailable("database is not configured"), h.logger)
		return
	}
	var in sarkiRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}
	var missing []string
	if strings.TrimSpace(in.UserUID) == "" {
		missing = append(missing, "userUid")
	}
	if strings.TrimSpace(in.CommentText) == "" {
		missing = append(missing, "commentText")
	}
	if len(missing) > 0 {
		writeAppError(w, r, apperr.Input("userUid and commentText are required").WithDetail(map[string]any{"missing": missing}), h.logger)
		return
	}

	record := sarkiRecord{sarkiRequest: in, IsActive: true, Timestamp: firebase.ServerTimestamp}
	if err := h.records.Put(r.Context(), sarkiPath, record); err != nil {
		writeAppError(w, r, apperr.Wrap(apperr.KindStore, "failed to save Sarki record", err), h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"status":  "success",
		"message": "Sarki record saved",
		"data":    record,
	}, h.logger)
}
