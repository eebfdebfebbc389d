// Package memory holds in-process repositories for single-instance
// deployments and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

// SessionRepository keeps session snapshots in a map.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]model.OfferSessionSnapshot
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]model.OfferSessionSnapshot)}
}

// Save stores s if the stored version still equals expectedVersion.
func (r *SessionRepository) Save(_ context.Context, s model.OfferSession, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := 0
	if current, ok := r.sessions[s.ID()]; ok {
		stored = current.Version
	}
	if stored != expectedVersion {
		return fmt.Errorf("%w: session %s at version %d, expected %d",
			valueobject.ErrVersionConflict, s.ID(), stored, expectedVersion)
	}
	r.sessions[s.ID()] = s.Snapshot()
	return nil
}

func (r *SessionRepository) FindByID(_ context.Context, id string) (model.OfferSession, error) {
	r.mu.RLock()
	snap, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return model.OfferSession{}, fmt.Errorf("%w: %s", valueobject.ErrSessionNotFound, id)
	}
	return model.RestoreOfferSession(snap)
}

// Len returns the number of stored sessions.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
