// Package audit records verification lifecycle events for compliance review.
// Events are best-effort: publishing failures are logged and never fail the
// request that produced them.
package audit

import (
	"context"
	"time"
)

// Action identifies a verification lifecycle event.
type Action string

const (
	ActionSessionStarted   Action = "session_started"
	ActionSessionReused    Action = "session_reused"
	ActionApprovedObserved Action = "approved_observed"
	ActionConnectionCreate Action = "connection_created"
	ActionCredentialIssued Action = "credential_issued"
	ActionWebhookRemap     Action = "webhook_remap"
)

// Event is a single audit record.
type Event struct {
	ID           string    `json:"id"`
	Action       Action    `json:"action"`
	DID          string    `json:"did,omitempty"`
	SessionID    string    `json:"session_id,omitempty"`
	ConnectionID string    `json:"connection_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher emits audit events to a sink.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}
