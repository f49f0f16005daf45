package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers created ticket ids by client-supplied
// Idempotency-Key so replayed creates return the original ticket.
// Key format: ticket:idem:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the remembered ticket id and true when key has been seen.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (int64, bool, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: %w", err)
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency lookup: bad value %q: %w", val, err)
	}
	return id, true, nil
}

// Remember records the ticket id for key (expires after idempotencyTTL).
func (s *IdempotencyStore) Remember(ctx context.Context, key string, ticketID int64) error {
	return s.client.Set(ctx, s.key(key), strconv.FormatInt(ticketID, 10), idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(key string) string {
	return "ticket:idem:" + key
}
