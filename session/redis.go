package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps backend failures from the Redis store.
var ErrRedisUnavailable = errors.New("redis unavailable")

// RedisStore is a Redis-backed [Store]. Records survive process restarts,
// which is what PersistedSessionAuth needs. Keys carry no TTL: expiration is
// a lazy policy applied on lookup by the strategy layer, and records persist
// until explicitly destroyed.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a [RedisStore] on the given client. prefix namespaces
// the session keys; empty defaults to "ag".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ag"
	}
	return &RedisStore{
		redis:  client,
		prefix: prefix,
	}
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + ":" + sessionID
}

// Get returns the stored record, (nil, nil) on a miss, or an error when the
// backend fails or the blob is corrupt.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Record, error) {
	data, err := s.redis.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}

	return Decode(data)
}

// Put stores the record under sessionID without a TTL.
func (s *RedisStore) Put(ctx context.Context, sessionID string, record Record) error {
	data, err := Encode(record)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.key(sessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	return nil
}

// Delete removes the record for sessionID. Deleting an absent id is a no-op.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}
	return nil
}
