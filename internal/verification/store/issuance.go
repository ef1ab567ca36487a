package store

import (
	"sync"

	"vouch/internal/verification/models"
)

// IssuanceGate records which DIDs already received a credential. The flag
// transitions false to true exactly once; marking an issued DID again is a
// no-op. Callers that need the gate check and the issuance submission to be
// atomic must serialize per DID around both (see the orchestrator).
type IssuanceGate struct {
	mu     sync.RWMutex
	issued map[models.DID]struct{}
}

// NewIssuanceGate constructs an empty gate.
func NewIssuanceGate() *IssuanceGate {
	return &IssuanceGate{issued: make(map[models.DID]struct{})}
}

// IsIssued reports whether a credential was already issued for the DID.
func (g *IssuanceGate) IsIssued(did models.DID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.issued[did]
	return ok
}

// MarkIssued flags the DID as issued. Idempotent.
func (g *IssuanceGate) MarkIssued(did models.DID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued[did] = struct{}{}
}
