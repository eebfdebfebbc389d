// Package kafka publishes offer session events to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bibbank/offer-engine/internal/domain/event"
	pkgkafka "github.com/bibbank/offer-engine/pkg/kafka"
)

// Producer is satisfied by *pkgkafka.Producer.
type Producer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// EventPublisher implements port.EventPublisher by writing events to Kafka,
// keyed by session id so every event of a session lands on one partition.
type EventPublisher struct {
	producer Producer
	topic    string
	logger   *slog.Logger
}

// NewEventPublisher creates a publisher targeting producer and topic.
func NewEventPublisher(producer Producer, topic string, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish serialises and sends domain events in one batch.
func (p *EventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.DebugContext(ctx, "publishing domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
			"payload_size", len(payload),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"event_id":       evt.EventID(),
				"aggregate_type": evt.AggregateType(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}
	return nil
}
