package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/perchpost/perchpost/internal/auth"
	"github.com/perchpost/perchpost/internal/migrations"
	"github.com/perchpost/perchpost/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 511511

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema tears down and reapplies all migrations.
func ResetSchema(ctx context.Context, databaseURL string) error {
	if err := migrations.Reset(ctx, databaseURL); err != nil {
		return fmt.Errorf("reset schema: %w", err)
	}
	return nil
}

// TruncateAll empties every application table without touching the schema.
// Faster than a full migration cycle between tests.
func TruncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE TABLE follows, messages, users CASCADE")
	if err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// TestPassword is the plaintext password every factory user is created with.
const TestPassword = "s3cret-pw"

// NewTestUser creates a test user with sensible defaults. The password hash
// corresponds to TestPassword.
func NewTestUser(t testing.TB, username string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("hash test password: %v", err)
	}
	now := time.Now().UTC()
	u := &model.User{
		ID:           UniqueID("user"),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	u.ApplyImageDefaults()
	return u
}

// NewTestMessage creates a test message owned by the given user.
func NewTestMessage(t testing.TB, userID, text string) *model.Message {
	t.Helper()
	return &model.Message{
		ID:        UniqueID("msg"),
		Text:      text,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestFollow creates a follow edge where follower follows followed.
func NewTestFollow(t testing.TB, followerID, followedID string) *model.FollowEdge {
	t.Helper()
	return &model.FollowEdge{
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  time.Now().UTC(),
	}
}

// UniqueUsername generates a unique username for tests.
func UniqueUsername(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano()%1_000_000_000)
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
