// Package redis stores offer sessions in Redis so several offerd instances
// can serve the same applicant.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bibbank/offer-engine/internal/domain/model"
	"github.com/bibbank/offer-engine/internal/domain/valueobject"
)

const sessionKeyPrefix = "offer_session:"

// SessionRepository persists session snapshots as JSON strings with a TTL.
// Writes are optimistic: the key is WATCHed and the version compared before
// the MULTI/EXEC that replaces it.
type SessionRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewSessionRepository(client redis.UniversalClient, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *SessionRepository) Save(ctx context.Context, s model.OfferSession, expectedVersion int) error {
	data, err := encodeSession(s)
	if err != nil {
		return err
	}
	key := sessionKey(s.ID())

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		stored := 0
		current, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("get session: %w", err)
		default:
			snap, err := decodeSnapshot(current)
			if err != nil {
				return err
			}
			stored = snap.Version
		}
		if stored != expectedVersion {
			return fmt.Errorf("%w: session %s at version %d, expected %d",
				valueobject.ErrVersionConflict, s.ID(), stored, expectedVersion)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: session %s changed concurrently", valueobject.ErrVersionConflict, s.ID())
	}
	return err
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (model.OfferSession, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.OfferSession{}, fmt.Errorf("%w: %s", valueobject.ErrSessionNotFound, id)
	}
	if err != nil {
		return model.OfferSession{}, fmt.Errorf("get session: %w", err)
	}
	snap, err := decodeSnapshot(data)
	if err != nil {
		return model.OfferSession{}, err
	}
	return model.RestoreOfferSession(snap)
}

// Ping reports whether Redis is reachable.
func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func encodeSession(s model.OfferSession) ([]byte, error) {
	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (model.OfferSessionSnapshot, error) {
	var snap model.OfferSessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.OfferSessionSnapshot{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return snap, nil
}
