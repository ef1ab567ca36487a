// Package service implements the verification orchestrator: it mediates
// between the wallet-facing API, the KYC vendor, and the credential issuance
// network, tracking per-DID state in process-lifetime stores.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"vouch/internal/audit"
	"vouch/internal/verification/metrics"
	"vouch/internal/verification/store"
	"vouch/internal/verification/tracer"
	psync "vouch/pkg/platform/sync"
)

// Service orchestrates verification sessions, peer connections, and one-time
// credential issuance per DID.
type Service struct {
	sessions    *store.SessionRegistry
	connections *store.ConnectionCache
	gate        *store.IssuanceGate
	vendor      VendorClient
	issuance    IssuanceClient

	// claimLocks serializes the issuance gate check and the credential
	// submission per DID; connGroup collapses concurrent connection
	// creation for one DID into a single issuance call.
	claimLocks *psync.ShardedMutex
	connGroup  singleflight.Group

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
	audit   audit.Publisher
	now     func() time.Time
}

// New creates the orchestrator over the given stores and collaborator clients.
func New(
	sessions *store.SessionRegistry,
	connections *store.ConnectionCache,
	gate *store.IssuanceGate,
	vendor VendorClient,
	issuance IssuanceClient,
	opts ...Option,
) *Service {
	s := &Service{
		sessions:    sessions,
		connections: connections,
		gate:        gate,
		vendor:      vendor,
		issuance:    issuance,
		claimLocks:  psync.NewShardedMutex(),
		logger:      slog.Default(),
		tracer:      tracer.NewNoop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetConnectionRecord proxies the issuance network's connection record.
func (s *Service) GetConnectionRecord(ctx context.Context, connectionID string) (json.RawMessage, error) {
	return s.issuance.GetConnection(ctx, connectionID)
}

func (s *Service) publishAudit(ctx context.Context, event audit.Event) {
	if s.audit != nil {
		s.audit.Publish(ctx, event)
	}
}

func (s *Service) countStatusPoll(outcome string) {
	if s.metrics != nil {
		s.metrics.StatusPolls.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) countVendorError(operation string) {
	if s.metrics != nil {
		s.metrics.VendorErrors.WithLabelValues(operation).Inc()
	}
}
