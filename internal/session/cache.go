// Package session holds the Redis-backed refresh-token cache. The cache
// keeps at most one live refresh token per user under refresh:<userId>;
// issuing a new token overwrites the previous one, which is what makes
// rotation and single-session revocation work. Multi-device sessions would
// need a set of tokens per user and are deliberately not supported.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when no refresh token is cached for a user.
var ErrNoSession = errors.New("no session for user")

// ErrCacheUnavailable wraps Redis transport failures.
var ErrCacheUnavailable = errors.New("session cache unavailable")

const keyPrefix = "refresh:"

// Cache stores the latest refresh token per user with a fixed TTL.
type Cache struct {
	redis redis.UniversalClient
	ttl   time.Duration
}

// NewCache creates a Cache over the given Redis client. ttl bounds how long
// a refresh token stays trusted without rotation.
func NewCache(client redis.UniversalClient, ttl time.Duration) *Cache {
	return &Cache{redis: client, ttl: ttl}
}

func (c *Cache) key(userID string) string {
	return keyPrefix + userID
}

// Store saves the refresh token for a user, overwriting any previous one
// and resetting the TTL. Last write wins under concurrent refreshes.
func (c *Cache) Store(ctx context.Context, userID, refreshToken string) error {
	if err := c.redis.Set(ctx, c.key(userID), refreshToken, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// Get returns the cached refresh token for a user, or ErrNoSession if none
// is stored (never issued, expired, or revoked).
func (c *Cache) Get(ctx context.Context, userID string) (string, error) {
	val, err := c.redis.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return val, nil
}

// Delete revokes the user's session. Deleting a missing key is not an error.
func (c *Cache) Delete(ctx context.Context, userID string) error {
	if err := c.redis.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}
