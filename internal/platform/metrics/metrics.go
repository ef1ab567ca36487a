// Package metrics provides process-wide Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds platform-level Prometheus metrics for the application.
type Metrics struct {
	EndpointLatency *prometheus.HistogramVec
	AuthFailures    prometheus.Counter
	StorageOps      *prometheus.CounterVec
	StorageErrors   *prometheus.CounterVec
}

// New creates all platform metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all platform metrics on the given registerer. Tests pass a
// fresh registry so repeated construction does not collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vouch_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "vouch_auth_failures_total",
			Help: "Total number of rejected API key checks",
		}),
		StorageOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vouch_storage_ops_total",
			Help: "Total object store operations by op (put, get)",
		}, []string{"op"}),
		StorageErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vouch_storage_errors_total",
			Help: "Total failed object store operations by op (put, get)",
		}, []string{"op"}),
	}
}
