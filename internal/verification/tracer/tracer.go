// Package tracer provides a lightweight tracing abstraction for the
// verification flow. It keeps the orchestrator decoupled from OpenTelemetry
// APIs while still letting production deployments emit distributed traces.
//
// Implementations:
//   - NoopTracer: for tests (zero overhead)
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans for distributed tracing.
// Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	// The returned context contains the new span and should be passed to
	// child operations. The span must be ended by calling Span.End().
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Span names used by the verification flow.
const (
	SpanStart    = "verification.start"
	SpanStatus   = "verification.status"
	SpanClaim    = "verification.claim"
	SpanCallback = "verification.callback"
)

// Attribute keys used by the verification flow.
const (
	AttrDID          = "did"
	AttrSessionID    = "session_id"
	AttrConnectionID = "connection_id"
	AttrStatus       = "status"
	AttrReused       = "session.reused"
)
