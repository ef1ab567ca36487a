// Package metrics provides Prometheus metrics for the verification flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the verification flow metrics.
type Metrics struct {
	SessionsStarted    prometheus.Counter
	SessionsReused     prometheus.Counter
	StatusPolls        *prometheus.CounterVec // by observed status, or "vendor_error"
	ConnectionsCreated prometheus.Counter
	CredentialsIssued  prometheus.Counter
	ClaimsRejected     prometheus.Counter
	WebhookRemaps      prometheus.Counter
	VendorErrors       *prometheus.CounterVec // by operation
}

// New creates a new Metrics instance with all metrics registered.
func New() *Metrics {
	return &Metrics{
		SessionsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vouch_sessions_started_total",
			Help: "Total number of fresh vendor sessions created",
		}),
		SessionsReused: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vouch_sessions_reused_total",
			Help: "Total number of start calls that reused an active vendor session",
		}),
		StatusPolls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vouch_status_polls_total",
			Help: "Total number of status polls by observed outcome",
		}, []string{"outcome"}),
		ConnectionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vouch_connections_created_total",
			Help: "Total number of peer connections created with the issuance network",
		}),
		CredentialsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vouch_credentials_issued_total",
			Help: "Total number of credentials submitted for issuance",
		}),
		ClaimsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vouch_claims_rejected_total",
			Help: "Total number of claim calls rejected because the session was not approved",
		}),
		WebhookRemaps: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vouch_webhook_remaps_total",
			Help: "Total number of session registry remaps triggered by vendor callbacks",
		}),
		VendorErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vouch_vendor_errors_total",
			Help: "Total number of failed vendor calls by operation",
		}, []string{"operation"}),
	}
}
