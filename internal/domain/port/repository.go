package port

import (
	"context"

	"github.com/bibbank/offer-engine/internal/domain/event"
	"github.com/bibbank/offer-engine/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// SessionRepository persists offer sessions with optimistic concurrency.
// Save stores s only if the stored version equals expectedVersion; an
// expectedVersion of 0 means s must not exist yet. A mismatch fails with
// valueobject.ErrVersionConflict. FindByID fails with
// valueobject.ErrSessionNotFound for unknown ids.
type SessionRepository interface {
	Save(ctx context.Context, s model.OfferSession, expectedVersion int) error
	FindByID(ctx context.Context, id string) (model.OfferSession, error)
}

// AcceptedOfferRepository records accepted offers and their schedules. Save
// fails with valueobject.ErrInvalidStatusTransition when the session already
// has a record; FindBySessionID fails with valueobject.ErrSessionNotFound
// when it has none.
type AcceptedOfferRepository interface {
	Save(ctx context.Context, offer model.AcceptedOffer) error
	FindBySessionID(ctx context.Context, sessionID string) (model.AcceptedOffer, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers. Use cases
// publish after the state change is saved and only log a failure, so
// delivery is at most once.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Instrumentation port
// ---------------------------------------------------------------------------

// Metrics records business counters for the offer flow.
type Metrics interface {
	SessionOpened(noOffer bool)
	TenuresDropped(n int)
	Reconciled(source string, applied bool)
	OfferAccepted(tenureMonths int)
}
