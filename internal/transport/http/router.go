// Package httptransport assembles the HTTP surface: middleware stack, public
// routes, and the API-key protected application routes.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vouch/internal/platform/health"
	"vouch/internal/platform/metrics"
	"vouch/internal/platform/middleware"
	storagehandler "vouch/internal/storage/handler"
	verifhandler "vouch/internal/verification/handler"
)

// Config carries the router's auth settings.
type Config struct {
	APIKey     string
	APIKeyHash string
}

// NewRouter wires all endpoints. Health probes, metrics, and the vendor
// redirect are public; everything else requires the shared API key.
func NewRouter(
	cfg Config,
	verification *verifhandler.Handler,
	files *storagehandler.Handler,
	healthHandler *health.Handler,
	logger *slog.Logger,
	m *metrics.Metrics,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger, m))
	r.Use(middleware.Timeout(60 * time.Second))

	healthHandler.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	verification.RegisterPublic(r)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.APIKey(cfg.APIKey, cfg.APIKeyHash, logger, m))
		verification.Register(protected)
		files.Register(protected)
	})

	return r
}
