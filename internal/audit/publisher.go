package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"vouch/internal/platform/kafka/producer"
)

// MessageProducer is the slice of the Kafka producer the publisher needs.
type MessageProducer interface {
	ProduceAsync(msg *producer.Message) error
}

// KafkaPublisher serializes events as JSON and produces them asynchronously,
// keyed by DID so events for one subject stay ordered within a partition.
type KafkaPublisher struct {
	producer MessageProducer
	topic    string
	logger   *slog.Logger
}

// NewKafkaPublisher creates a publisher writing to the given topic.
func NewKafkaPublisher(p MessageProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: p, topic: topic, logger: logger}
}

// Publish emits the event. Failures are logged and swallowed.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	stamp(&event)

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal audit event", "action", event.Action, "error", err)
		return
	}

	err = p.producer.ProduceAsync(&producer.Message{
		Topic: p.topic,
		Key:   []byte(event.DID),
		Value: value,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to produce audit event", "action", event.Action, "error", err)
	}
}

// LogPublisher emits audit events to the process logger. It is the fallback
// sink when Kafka is not configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a logger-backed publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish writes the event as a structured log line.
func (p *LogPublisher) Publish(ctx context.Context, event Event) {
	stamp(&event)
	p.logger.InfoContext(ctx, "audit event",
		"audit_id", event.ID,
		"action", event.Action,
		"did", event.DID,
		"session_id", event.SessionID,
		"connection_id", event.ConnectionID,
	)
}

func stamp(event *Event) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
}
