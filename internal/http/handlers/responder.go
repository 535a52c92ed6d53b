package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tauraronwasa/fixture-service/internal/apperr"
	"github.com/tauraronwasa/fixture-service/internal/http/middleware"
	"github.com/tauraronwasa/fixture-service/internal/logging"
)

const maxJSONBody = 1 << 20

// errorBody is the one failure shape every route answers with.
type errorBody struct {
	Error     bool   `json:"error"`
	Message   string `json:"message"`
	Detail    any    `json:"detail,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorBody{Error: true, Message: message, RequestID: requestID(r)}, logger)
}

// writeAppError maps err onto a status and body. Unclassified errors never
// leak their text to the client.
func writeAppError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	logger = loggerFromContext(r, logger)
	body := errorBody{Error: true, Message: "Internal server error", RequestID: requestID(r)}
	status := apperr.StatusOf(err)

	switch appErr, ok := apperr.As(err); {
	case ok:
		body.Message = appErr.Message
		body.Detail = appErr.Detail
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		body.Message = "Upstream request timed out"
	case errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
		body.Message = "Request cancelled"
	}

	if status >= http.StatusInternalServerError {
		logging.Error(logger, "request failed", err, slog.Int(logging.FieldStatusCode, status))
	} else {
		logging.Warn(logger, "request rejected", "error", err, slog.Int(logging.FieldStatusCode, status))
	}
	writeJSON(w, status, body, logger)
}

// decodeJSON reads a capped JSON body into dest.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Wrap(apperr.KindTooLarge, "Request body too large", err)
		}
		return apperr.Wrap(apperr.KindInput, "Invalid JSON body", err).WithDetail(err.Error())
	}
	return nil
}

func requestID(r *http.Request) string {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	return reqID
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
