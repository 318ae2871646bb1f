package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix is the Redis key prefix for session identities.
const sessionKeyPrefix = "session:"

// DefaultSessionTTL bounds how long an established identity survives
// without activity.
const DefaultSessionTTL = 24 * time.Hour

// Session identity is a two-state machine per token: Anonymous (no key in
// Redis) and Authenticated (key holds the user ID). Establish overwrites,
// Clear deletes, Current is a pure read.

// EstablishSession associates the token with a user identity, replacing any
// prior identity held by the same token. Re-login replaces, never stacks.
func (c *Cache) EstablishSession(ctx context.Context, token, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	key := sessionKeyPrefix + token

	if err := c.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("establish session: %w", err)
	}
	return nil
}

// ClearSession transitions the token back to Anonymous.
// Clearing an unknown token is not an error.
func (c *Cache) ClearSession(ctx context.Context, token string) error {
	key := sessionKeyPrefix + token

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CurrentSession returns the user ID held by the token, or empty string for
// Anonymous. A missing token is not an error.
func (c *Cache) CurrentSession(ctx context.Context, token string) (string, error) {
	key := sessionKeyPrefix + token

	userID, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("read session: %w", err)
	}
	return userID, nil
}

// TouchSession extends the token's TTL without changing the identity.
// Called on authenticated reads to keep active sessions alive.
func (c *Cache) TouchSession(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	key := sessionKeyPrefix + token

	if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return nil
}
