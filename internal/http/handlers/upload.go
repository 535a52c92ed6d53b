package handlers

import (
	nethttp "net/http"

	"github.com/tauraronwasa/fixture-service/internal/apperr"
	"github.com/tauraronwasa/fixture-service/internal/logging"
	"github.com/tauraronwasa/fixture-service/internal/upload"
)

// Upload relays a single file to the file host.
func (h *Handler) Upload(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.uploads == nil {
		writeAppError(w, r, apperr.Unavailable("file host is not configured"), h.logger)
		return
	}
	payload, err := upload.Parse(w, r, h.uploadMaxBytes)
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}
	defer func() {
		if cerr := payload.Close(); cerr != nil {
			logging.Warn(loggerFromContext(r, h.logger), "upload cleanup failed", "error", cerr)
		}
	}()

	result, err := h.uploads.Upload(r.Context(), payload)
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, result, h.logger)
}
