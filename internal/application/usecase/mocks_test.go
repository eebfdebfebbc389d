package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bibbank/offer-engine/internal/domain/event"
	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/service"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockSessionRepository struct {
	saveFunc     func(ctx context.Context, s model.OfferSession, expectedVersion int) error
	findByIDFunc func(ctx context.Context, id string) (model.OfferSession, error)
	sessions     map[string]model.OfferSession
	saves        int
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[string]model.OfferSession)}
}

func (m *mockSessionRepository) Save(ctx context.Context, s model.OfferSession, expectedVersion int) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, s, expectedVersion)
	}
	current, ok := m.sessions[s.ID()]
	stored := 0
	if ok {
		stored = current.Version()
	}
	if stored != expectedVersion {
		return fmt.Errorf("%w: stored %d expected %d", valueobject.ErrVersionConflict, stored, expectedVersion)
	}
	m.sessions[s.ID()] = s.ClearEvents()
	m.saves++
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (model.OfferSession, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	s, ok := m.sessions[id]
	if !ok {
		return model.OfferSession{}, fmt.Errorf("%w: %s", valueobject.ErrSessionNotFound, id)
	}
	return s, nil
}

type mockAcceptedOfferRepository struct {
	saveFunc            func(ctx context.Context, offer model.AcceptedOffer) error
	findBySessionIDFunc func(ctx context.Context, id string) (model.AcceptedOffer, error)
	saved               []model.AcceptedOffer
}

func (m *mockAcceptedOfferRepository) Save(ctx context.Context, offer model.AcceptedOffer) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, offer)
	}
	m.saved = append(m.saved, offer)
	return nil
}

func (m *mockAcceptedOfferRepository) FindBySessionID(ctx context.Context, id string) (model.AcceptedOffer, error) {
	if m.findBySessionIDFunc != nil {
		return m.findBySessionIDFunc(ctx, id)
	}
	for _, o := range m.saved {
		if o.SessionID == id {
			return o, nil
		}
	}
	return model.AcceptedOffer{}, fmt.Errorf("%w: %s", valueobject.ErrSessionNotFound, id)
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func (m *mockEventPublisher) types() []string {
	out := make([]string, len(m.publishedEvents))
	for i, e := range m.publishedEvents {
		out[i] = e.EventType()
	}
	return out
}

type mockMetrics struct {
	opened     int
	noOffer    int
	dropped    int
	reconciled map[string]int
	accepted   []int
}

func (m *mockMetrics) SessionOpened(noOffer bool) {
	m.opened++
	if noOffer {
		m.noOffer++
	}
}

func (m *mockMetrics) TenuresDropped(n int) { m.dropped += n }

func (m *mockMetrics) Reconciled(source string, applied bool) {
	if m.reconciled == nil {
		m.reconciled = make(map[string]int)
	}
	m.reconciled[fmt.Sprintf("%s/%t", source, applied)]++
}

func (m *mockMetrics) OfferAccepted(tenure int) { m.accepted = append(m.accepted, tenure) }

// --- Fixtures ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSelector() *service.TenureSelector {
	return service.NewTenureSelector(service.NewEmiCalculator())
}
