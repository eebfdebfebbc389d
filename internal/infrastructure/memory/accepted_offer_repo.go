package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

// AcceptedOfferRepository keeps accepted offers keyed by session.
type AcceptedOfferRepository struct {
	mu     sync.RWMutex
	offers map[string]model.AcceptedOffer
}

func NewAcceptedOfferRepository() *AcceptedOfferRepository {
	return &AcceptedOfferRepository{offers: make(map[string]model.AcceptedOffer)}
}

// Save records offer. A session can be accepted only once.
func (r *AcceptedOfferRepository) Save(_ context.Context, offer model.AcceptedOffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.offers[offer.SessionID]; ok {
		return fmt.Errorf("%w: session %s already accepted", valueobject.ErrInvalidStatusTransition, offer.SessionID)
	}
	r.offers[offer.SessionID] = copyOffer(offer)
	return nil
}

func (r *AcceptedOfferRepository) FindBySessionID(_ context.Context, sessionID string) (model.AcceptedOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offer, ok := r.offers[sessionID]
	if !ok {
		return model.AcceptedOffer{}, fmt.Errorf("%w: no accepted offer for %s", valueobject.ErrSessionNotFound, sessionID)
	}
	return copyOffer(offer), nil
}

func copyOffer(o model.AcceptedOffer) model.AcceptedOffer {
	sched := make([]model.AmortizationEntry, len(o.Schedule))
	copy(sched, o.Schedule)
	o.Schedule = sched
	return o
}
