package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/tauraronwasa/fixture-service/internal/http/requestutil"
	"github.com/tauraronwasa/fixture-service/internal/logging"
)

// APIKey rejects requests whose key does not match expected with 401.
func APIKey(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	want := []byte(expected)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(requestutil.APIKey(r))
			if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
				logging.Warn(logging.FromContext(r.Context(), logger), "api key rejected",
					slog.String(logging.FieldPath, r.URL.Path),
					slog.String("client_ip", requestutil.ClientIP(r)),
				)
				writeError(w, r, http.StatusUnauthorized, "Invalid API Key.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
