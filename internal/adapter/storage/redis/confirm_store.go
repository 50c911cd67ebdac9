package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ConfirmStore implements ports.ConfirmClaimStore using Redis SET NX.
// Each confirmation callback id is claimed exactly once.
type ConfirmStore struct {
	client *goredis.Client
	prefix string
}

// NewConfirmStore creates a new Redis-backed confirm claim store.
func NewConfirmStore(client *goredis.Client) *ConfirmStore {
	return &ConfirmStore{
		client: client,
		prefix: "wd:claim:",
	}
}

// Claim atomically records the callback id, setting it if absent.
// Returns true if this is the first delivery, false on a duplicate.
func (s *ConfirmStore) Claim(ctx context.Context, callbackID string, ttl time.Duration) (bool, error) {
	key := s.prefix + callbackID
	result, err := s.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if err == goredis.Nil {
			// Key already exists, callback was already claimed
			return false, nil
		}
		return false, fmt.Errorf("redis confirm claim: %w", err)
	}
	return result == "OK", nil
}
