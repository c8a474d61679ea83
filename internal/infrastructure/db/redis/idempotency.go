package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	// reservationTTL bounds how long a crashed request can hold a key.
	reservationTTL = time.Minute
	pendingValue   = "pending"
)

// IdempotencyStore maps an owner's Idempotency-Key to the content it created.
// Key format: idem:content:<owner_id>:<key>
//
// The key is claimed with SETNX and a "pending" placeholder before the insert,
// then overwritten with the content id once the insert succeeds.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A ttl <= 0 falls back to 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims key. If another request holds it, the recorded content id is
// returned, or primitive.NilObjectID while that request is still pending.
func (s *IdempotencyStore) Reserve(ctx context.Context, ownerID primitive.ObjectID, key string) (primitive.ObjectID, bool, error) {
	k := s.key(ownerID, key)

	ok, err := s.client.SetNX(ctx, k, pendingValue, reservationTTL).Result()
	if err != nil {
		return primitive.NilObjectID, false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return primitive.NilObjectID, true, nil
	}

	val, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) || val == pendingValue {
		// released or expired between SETNX and GET; report it as pending
		return primitive.NilObjectID, false, nil
	}
	if err != nil {
		return primitive.NilObjectID, false, fmt.Errorf("idempotency reserve: %w", err)
	}

	id, err := primitive.ObjectIDFromHex(val)
	if err != nil {
		return primitive.NilObjectID, false, fmt.Errorf("idempotency reserve: corrupt value %q: %w", val, err)
	}
	return id, false, nil
}

// Complete replaces the placeholder with contentID for the full TTL.
func (s *IdempotencyStore) Complete(ctx context.Context, ownerID primitive.ObjectID, key string, contentID primitive.ObjectID) error {
	if err := s.client.Set(ctx, s.key(ownerID, key), contentID.Hex(), s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release frees key so a later retry can create again.
func (s *IdempotencyStore) Release(ctx context.Context, ownerID primitive.ObjectID, key string) error {
	if err := s.client.Del(ctx, s.key(ownerID, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(ownerID primitive.ObjectID, key string) string {
	return fmt.Sprintf("idem:content:%s:%s", ownerID.Hex(), key)
}

// NopIdempotencyStore is used when Redis is not configured. Every reservation
// succeeds, so every request creates.
type NopIdempotencyStore struct{}

func (NopIdempotencyStore) Reserve(context.Context, primitive.ObjectID, string) (primitive.ObjectID, bool, error) {
	return primitive.NilObjectID, true, nil
}

func (NopIdempotencyStore) Complete(context.Context, primitive.ObjectID, string, primitive.ObjectID) error {
	return nil
}

func (NopIdempotencyStore) Release(context.Context, primitive.ObjectID, string) error {
	return nil
}
