package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// TokenRevocationStore remembers revoked token IDs until they would have expired.
// Unlike Client it reports Redis errors, so callers can decide how to degrade.
type TokenRevocationStore struct {
	client *Client
}

// NewTokenRevocationStore creates a revocation store on top of c
func NewTokenRevocationStore(c *Client) *TokenRevocationStore {
	return &TokenRevocationStore{client: c}
}

// Revoke marks jti as revoked for ttl. A non-positive ttl is a no-op since the
// token has already expired.
func (s *TokenRevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if s.client == nil || s.client.client == nil {
		return errors.New("redis client not configured")
	}
	if err := s.client.client.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti has been revoked
func (s *TokenRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if s.client == nil || s.client.client == nil {
		return false, errors.New("redis client not configured")
	}
	n, err := s.client.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return n > 0, nil
}
