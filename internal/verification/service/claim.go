package service

import (
	"context"

	"vouch/internal/audit"
	"vouch/internal/verification/models"
	"vouch/internal/verification/tracer"
	dErrors "vouch/pkg/domain-errors"
)

// Claim call messages returned on the soft paths.
const (
	MsgClaimSuccess     = "success"
	MsgClaimNotAccepted = "claim not accepted"
	MsgNoVerification   = "no verification found for this connection"
	MsgDecisionPending  = "a decision has not been made yet"
)

// ClaimResult is the outcome of ClaimCredential.
type ClaimResult struct {
	Message string
}

// ClaimCredential re-validates approval for the connection's owning DID and
// submits the normalized claim record to the issuance network at most once.
//
// A repeated claim for an already-issued DID still returns success but never
// resubmits: the gate check and the submission run under a per-DID lock, so a
// duplicate call cannot interleave between them. A hard not_approved error is
// returned only on an affirmative non-approved decision; vendor lookup
// failures degrade to a soft "decision pending" message.
func (s *Service) ClaimCredential(ctx context.Context, connectionID string, accepted bool) (*ClaimResult, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanClaim, tracer.String(tracer.AttrConnectionID, connectionID))
	var err error
	defer func() { span.End(err) }()

	if !accepted {
		return &ClaimResult{Message: MsgClaimNotAccepted}, nil
	}

	did, ok := s.connections.ReverseLookup(connectionID)
	if !ok {
		s.logger.WarnContext(ctx, "claim for unknown connection", "connection_id", connectionID)
		return &ClaimResult{Message: MsgNoVerification}, nil
	}
	span.SetAttributes(tracer.String(tracer.AttrDID, string(did)))

	s.claimLocks.Lock(string(did))
	defer s.claimLocks.Unlock(string(did))

	if s.gate.IsIssued(did) {
		// Already issued; success without a second submission.
		return &ClaimResult{Message: MsgClaimSuccess}, nil
	}

	sessionID, ok := s.sessions.Get(did)
	if !ok {
		return &ClaimResult{Message: MsgDecisionPending}, nil
	}

	state, fetchErr := s.vendor.FetchSession(ctx, sessionID)
	if fetchErr != nil {
		s.countVendorError("fetch_session")
		s.logger.WarnContext(ctx, "vendor decision lookup failed during claim",
			"did", did,
			"session_id", sessionID,
			"error", fetchErr,
		)
		return &ClaimResult{Message: MsgDecisionPending}, nil
	}

	if state.Status != models.StatusApproved {
		if s.metrics != nil {
			s.metrics.ClaimsRejected.Inc()
		}
		err = dErrors.New(dErrors.CodeNotApproved, "verification has not been approved")
		return nil, err
	}

	claim := models.NormalizeClaim(state, s.now())
	if issueErr := s.issuance.IssueCredential(ctx, connectionID, claim); issueErr != nil {
		// Gate stays unmarked so the wallet can retry the claim.
		err = dErrors.Wrap(issueErr, dErrors.CodeVendorUnavailable, "credential issuance failed")
		return nil, err
	}

	s.gate.MarkIssued(did)
	if s.metrics != nil {
		s.metrics.CredentialsIssued.Inc()
	}
	s.publishAudit(ctx, audit.Event{
		Action:       audit.ActionCredentialIssued,
		DID:          string(did),
		SessionID:    sessionID,
		ConnectionID: connectionID,
	})

	return &ClaimResult{Message: MsgClaimSuccess}, nil
}
