// Copyright (c) 2026 OpsDesk. All rights reserved.

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/opsdesk/portal/internal/platform/constants"
)

// RedisStore persists auth records as Redis hashes, one hash per browser
// session. This is the production default: records survive portal restarts
// and are shared across replicas.
//
// # Layout
//
// Each session lives at constants.RedisPrefixSession + sessionID with three
// hash fields named after the record's storage keys (authToken,
// loggedInUser, revision). Expiry rides on the key itself.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already-connected client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(sessionID string) string {
	return constants.RedisPrefixSession + sessionID
}

// Load implements [RecordStore]. A missing key yields ErrNoRecord; a key
// with any field absent is returned as-is so the caller can apply its
// partial-record policy.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (Record, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return Record{}, fmt.Errorf("session: redis load failed: %w", err)
	}
	if len(fields) == 0 {
		return Record{}, ErrNoRecord
	}

	return Record{
		AuthToken:    fields[constants.StorageKeyAuthToken],
		LoggedInUser: fields[constants.StorageKeyLoggedInUser],
		Revision:     fields[constants.StorageKeyRevision],
	}, nil
}

// Save implements [RecordStore]. The revision check and the write run under
// WATCH so a concurrent commit between check and write aborts the
// transaction instead of silently clobbering the newer record.
func (s *RedisStore) Save(ctx context.Context, sessionID string, record Record, expectRevision string, ttl time.Duration) error {
	key := sessionKey(sessionID)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, key, constants.StorageKeyRevision).Result()
		switch {
		case errors.Is(err, redis.Nil):
			if expectRevision != "" {
				return ErrRevisionConflict
			}
		case err != nil:
			return err
		case current != expectRevision:
			return ErrRevisionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key,
				constants.StorageKeyAuthToken, record.AuthToken,
				constants.StorageKeyLoggedInUser, record.LoggedInUser,
				constants.StorageKeyRevision, record.Revision,
			)
			pipe.Expire(ctx, key, ttl)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrRevisionConflict):
		return ErrRevisionConflict
	case errors.Is(err, redis.TxFailedErr):
		// Another writer touched the key mid-transaction.
		return ErrRevisionConflict
	default:
		return fmt.Errorf("session: redis save failed: %w", err)
	}
}

// Delete implements [RecordStore].
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("session: redis delete failed: %w", err)
	}
	return nil
}
