package middleware

import (
	"log/slog"
	"net/http"

	"vouch/internal/platform/metrics"
	"vouch/pkg/platform/httputil"
	"vouch/pkg/secrets"
)

// APIKeyHeader is the shared-secret header checked on protected routes.
const APIKeyHeader = "X-API-Key"

// APIKey enforces the shared secret on every protected route. When hash is
// set the presented key is verified with bcrypt, otherwise it is compared in
// constant time against the plaintext key. A mismatch yields 403 and counts
// toward the auth-failure metric when metrics are provided.
func APIKey(key, hash string, logger *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(APIKeyHeader)
			if !validAPIKey(presented, key, hash) {
				if m != nil {
					m.AuthFailures.Inc()
				}
				logger.WarnContext(r.Context(), "rejected request with invalid api key",
					"path", r.URL.Path,
					"request_id", GetRequestID(r.Context()),
				)
				httputil.WriteMessage(w, http.StatusForbidden, "invalid api key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func validAPIKey(presented, key, hash string) bool {
	if presented == "" {
		return false
	}
	if hash != "" {
		return secrets.Verify(presented, hash) == nil
	}
	return key != "" && secrets.Equal(presented, key)
}
