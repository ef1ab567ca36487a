package service

import (
	"context"

	"vouch/internal/audit"
	"vouch/internal/verification/models"
	"vouch/internal/verification/tracer"
	dErrors "vouch/pkg/domain-errors"
)

// StartResult is the outcome of StartVerification: the session the wallet
// should continue with and the vendor URL that drives it.
type StartResult struct {
	SessionID string
	URL       string
}

// StartVerification resolves or creates the vendor session for the DID.
//
// An existing session (client-supplied id first, then the registry) is reused
// while the vendor still reports it active; a terminal status, or a vendor
// lookup failure, falls through to creating a fresh session (fail-open). The
// registry always holds the resulting session id before returning.
func (s *Service) StartVerification(ctx context.Context, did models.DID, clientSessionID string) (*StartResult, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanStart, tracer.String(tracer.AttrDID, string(did)))
	var err error
	defer func() { span.End(err) }()

	effective := clientSessionID
	if effective == "" {
		effective, _ = s.sessions.Get(did)
	}

	if effective != "" {
		state, fetchErr := s.vendor.FetchSession(ctx, effective)
		switch {
		case fetchErr != nil:
			// Fail open: an unreachable vendor must not strand the wallet on
			// a session we cannot inspect.
			s.countVendorError("fetch_session")
			s.logger.WarnContext(ctx, "vendor session lookup failed, creating fresh session",
				"did", did,
				"session_id", effective,
				"error", fetchErr,
			)
		case state.Status.Terminal():
			s.logger.InfoContext(ctx, "discarding terminal vendor session",
				"did", did,
				"session_id", effective,
				"status", state.Status,
			)
		default:
			s.sessions.Set(did, effective)
			s.sessions.ObserveStatus(did, effective, state.Status, s.now())
			if s.metrics != nil {
				s.metrics.SessionsReused.Inc()
			}
			span.SetAttributes(
				tracer.String(tracer.AttrSessionID, effective),
				tracer.Bool(tracer.AttrReused, true),
			)
			s.publishAudit(ctx, audit.Event{
				Action:    audit.ActionSessionReused,
				DID:       string(did),
				SessionID: effective,
			})
			return &StartResult{SessionID: effective, URL: state.URL}, nil
		}
	}

	created, createErr := s.vendor.CreateSession(ctx, did)
	if createErr != nil {
		s.countVendorError("create_session")
		err = dErrors.Wrap(createErr, dErrors.CodeVendorUnavailable, "could not create verification session")
		return nil, err
	}

	s.sessions.Set(did, created.ID)
	if s.metrics != nil {
		s.metrics.SessionsStarted.Inc()
	}
	span.SetAttributes(tracer.String(tracer.AttrSessionID, created.ID))
	s.publishAudit(ctx, audit.Event{
		Action:    audit.ActionSessionStarted,
		DID:       string(did),
		SessionID: created.ID,
	})

	return &StartResult{SessionID: created.ID, URL: created.URL}, nil
}
