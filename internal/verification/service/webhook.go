package service

import (
	"context"

	"vouch/internal/audit"
	"vouch/internal/verification/tracer"
)

// HandleCallback reconciles the session registry with an asynchronous vendor
// callback. The vendor's view wins: when the callback names a session id the
// registry does not hold for that subject (for example one assigned
// server-side that the client never round-tripped), the registry is remapped
// so later status calls find it. Last write wins.
//
// Vendor lookup failures are logged and swallowed; the HTTP responder
// acknowledges the callback regardless of the reconciliation outcome.
func (s *Service) HandleCallback(ctx context.Context, vendorSessionID string) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanCallback, tracer.String(tracer.AttrSessionID, vendorSessionID))
	defer span.End(nil)

	state, err := s.vendor.FetchSession(ctx, vendorSessionID)
	if err != nil {
		s.countVendorError("fetch_session")
		s.logger.WarnContext(ctx, "vendor callback reconciliation failed",
			"session_id", vendorSessionID,
			"error", err,
		)
		return
	}

	if state.Subject == "" {
		s.logger.WarnContext(ctx, "vendor callback carried no subject correlation",
			"session_id", vendorSessionID,
		)
		return
	}

	s.sessions.Set(state.Subject, vendorSessionID)
	s.sessions.ObserveStatus(state.Subject, vendorSessionID, state.Status, s.now())
	if s.metrics != nil {
		s.metrics.WebhookRemaps.Inc()
	}
	span.SetAttributes(tracer.String(tracer.AttrDID, string(state.Subject)))
	s.publishAudit(ctx, audit.Event{
		Action:    audit.ActionWebhookRemap,
		DID:       string(state.Subject),
		SessionID: vendorSessionID,
	})

	s.logger.InfoContext(ctx, "session registry remapped from vendor callback",
		"did", state.Subject,
		"session_id", vendorSessionID,
		"status", state.Status,
	)
}
