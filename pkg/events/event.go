// Package events defines the envelope shared by every domain event the offer
// engine publishes.
package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent is embedded in concrete events. Its fields are exported so the
// envelope is serialised together with the event payload.
type BaseEvent struct {
	ID        string    `json:"event_id"`
	Type      string    `json:"event_type"`
	Aggregate string    `json:"aggregate_id"`
	Kind      string    `json:"aggregate_type"`
	At        time.Time `json:"occurred_at"`
}

// NewBaseEvent stamps a new envelope with a random id.
func NewBaseEvent(eventType, aggregateID, aggregateType string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Aggregate: aggregateID,
		Kind:      aggregateType,
		At:        occurredAt.UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) AggregateType() string { return e.Kind }
func (e BaseEvent) OccurredAt() time.Time { return e.At }
