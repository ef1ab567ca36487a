// Package store holds the process-lifetime state of the verification flow.
//
// All three stores are created empty at startup and never persisted. Losing
// them on restart is by design: the only recovery path is a client-supplied
// session id on the next status call.
package store

import (
	"sync"
	"time"

	"vouch/internal/verification/models"
)

// SessionRegistry maps a DID to its current vendor session. The entry is
// overwritten, never appended: it always holds the session id the next
// status or claim call should use.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[models.DID]*models.VerificationSession
}

// NewSessionRegistry constructs an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[models.DID]*models.VerificationSession)}
}

// Get returns the current vendor session id for the DID, or ok=false.
func (r *SessionRegistry) Get(did models.DID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[did]
	if !ok {
		return "", false
	}
	return session.VendorSessionID, true
}

// Find returns a copy of the full session record for the DID, or ok=false.
func (r *SessionRegistry) Find(did models.DID) (models.VerificationSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[did]
	if !ok {
		return models.VerificationSession{}, false
	}
	return *session, true
}

// Set records sessionID as the current session for the DID, replacing any
// previous entry. Last write wins.
func (r *SessionRegistry) Set(did models.DID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[did] = &models.VerificationSession{
		Subject:         did,
		VendorSessionID: sessionID,
	}
}

// ObserveStatus records the latest vendor-reported status for the DID's
// current session. A stale observation for a superseded session is dropped.
func (r *SessionRegistry) ObserveStatus(did models.DID, sessionID string, status models.Status, polledAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[did]
	if !ok || session.VendorSessionID != sessionID {
		return
	}
	session.LastKnownStatus = status
	session.LastPolledAt = polledAt
}
