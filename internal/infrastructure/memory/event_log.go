package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bibbank/offer-engine/internal/domain/event"
)

// EventLog implements port.EventPublisher for deployments without Kafka. It
// keeps every published event and logs it at debug level.
type EventLog struct {
	mu     sync.Mutex
	events []event.DomainEvent
	logger *slog.Logger
}

func NewEventLog(logger *slog.Logger) *EventLog {
	return &EventLog{logger: logger}
}

func (l *EventLog) Publish(ctx context.Context, events ...event.DomainEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, evt := range events {
		l.logger.DebugContext(ctx, "domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
		)
	}
	l.events = append(l.events, events...)
	return nil
}

// Events returns a copy of everything published so far.
func (l *EventLog) Events() []event.DomainEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]event.DomainEvent, len(l.events))
	copy(out, l.events)
	return out
}
