package service

import (
	"context"

	"vouch/internal/audit"
	"vouch/internal/verification/models"
	"vouch/internal/verification/tracer"
	dErrors "vouch/pkg/domain-errors"
)

// StatusResult is the outcome of CheckStatus. Status is nil when the vendor
// could not be reached (degraded, caller should re-poll). Connection is set
// only on the first and subsequent approved polls before issuance.
type StatusResult struct {
	Status     *models.Status
	Connection *models.Connection
}

// CheckStatus polls the vendor for the DID's current session and, on the
// first observation of approval, creates the peer connection through the
// issuance network exactly once.
//
// A caller-supplied session id is adopted into the registry when the registry
// has no entry for the DID: this is the recovery path for state wiped by a
// restart. With neither, the call fails with session_not_found.
func (s *Service) CheckStatus(ctx context.Context, did models.DID, querySessionID string) (*StatusResult, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanStatus, tracer.String(tracer.AttrDID, string(did)))
	var err error
	defer func() { span.End(err) }()

	sessionID, ok := s.sessions.Get(did)
	if !ok && querySessionID != "" {
		s.sessions.Set(did, querySessionID)
		sessionID = querySessionID
		ok = true
		s.logger.InfoContext(ctx, "adopted client-supplied session id",
			"did", did,
			"session_id", querySessionID,
		)
	}
	if !ok {
		err = dErrors.New(dErrors.CodeSessionNotFound, "no verification session for this subject")
		return nil, err
	}
	span.SetAttributes(tracer.String(tracer.AttrSessionID, sessionID))

	state, fetchErr := s.vendor.FetchSession(ctx, sessionID)
	if fetchErr != nil {
		// Degraded, non-fatal: the caller re-polls.
		s.countVendorError("fetch_session")
		s.countStatusPoll("vendor_error")
		s.logger.WarnContext(ctx, "vendor status poll failed",
			"did", did,
			"session_id", sessionID,
			"error", fetchErr,
		)
		return &StatusResult{}, nil
	}

	prev, _ := s.sessions.Find(did)
	s.sessions.ObserveStatus(did, sessionID, state.Status, s.now())
	s.countStatusPoll(string(state.Status))
	span.SetAttributes(tracer.String(tracer.AttrStatus, string(state.Status)))

	if state.Status == models.StatusApproved && prev.LastKnownStatus != models.StatusApproved {
		s.publishAudit(ctx, audit.Event{
			Action:    audit.ActionApprovedObserved,
			DID:       string(did),
			SessionID: sessionID,
		})
	}

	result := &StatusResult{Status: &state.Status}
	if state.Status != models.StatusApproved || s.gate.IsIssued(did) {
		return result, nil
	}

	if conn, found := s.ensureConnection(ctx, did); found {
		result.Connection = &conn
	}
	return result, nil
}

// ensureConnection returns the memoized connection for the DID, creating it
// through the issuance network on first approval. Concurrent callers for the
// same DID collapse into one creation call; creation failures are logged and
// reported as absent so the wallet retries on its next poll.
func (s *Service) ensureConnection(ctx context.Context, did models.DID) (models.Connection, bool) {
	if conn, ok := s.connections.GetByDID(did); ok {
		return conn, true
	}

	v, err, _ := s.connGroup.Do(string(did), func() (any, error) {
		if existing, ok := s.connections.GetByDID(did); ok {
			return existing, nil
		}
		created, createErr := s.issuance.CreateConnection(ctx)
		if createErr != nil {
			return nil, createErr
		}
		stored := s.connections.PutIfAbsent(did, *created)
		if stored.ID == created.ID {
			if s.metrics != nil {
				s.metrics.ConnectionsCreated.Inc()
			}
			s.publishAudit(ctx, audit.Event{
				Action:       audit.ActionConnectionCreate,
				DID:          string(did),
				ConnectionID: stored.ID,
			})
		}
		return stored, nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "connection creation failed",
			"did", did,
			"error", err,
		)
		return models.Connection{}, false
	}
	return v.(models.Connection), true
}
