package cache

import (
	"context"
	"testing"
	"time"

	"github.com/perchpost/perchpost/internal/testutil"
)

func newTestCache(t *testing.T, ctx context.Context) *Cache {
	t.Helper()

	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return c
}

func TestSession_EstablishAndCurrent(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, ctx)

	token := "ps_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b"

	if err := c.EstablishSession(ctx, token, "user-1", time.Minute); err != nil {
		t.Fatalf("EstablishSession failed: %v", err)
	}

	userID, err := c.CurrentSession(ctx, token)
	if err != nil {
		t.Fatalf("CurrentSession failed: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("CurrentSession = %q, want %q", userID, "user-1")
	}
}

func TestSession_Establish_ReplacesIdentity(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, ctx)

	token := "ps_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b"

	if err := c.EstablishSession(ctx, token, "user-1", time.Minute); err != nil {
		t.Fatalf("EstablishSession failed: %v", err)
	}
	if err := c.EstablishSession(ctx, token, "user-2", time.Minute); err != nil {
		t.Fatalf("EstablishSession (second) failed: %v", err)
	}

	userID, err := c.CurrentSession(ctx, token)
	if err != nil {
		t.Fatalf("CurrentSession failed: %v", err)
	}
	if userID != "user-2" {
		t.Errorf("re-establish should replace the identity, got %q", userID)
	}
}

func TestSession_UnknownToken_IsAnonymous(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, ctx)

	userID, err := c.CurrentSession(ctx, "ps_00000000000000000000000000000000")
	if err != nil {
		t.Fatalf("CurrentSession should not error on unknown token: %v", err)
	}
	if userID != "" {
		t.Errorf("unknown token should resolve to anonymous, got %q", userID)
	}
}

func TestSession_Clear(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, ctx)

	token := "ps_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b"

	if err := c.EstablishSession(ctx, token, "user-1", time.Minute); err != nil {
		t.Fatalf("EstablishSession failed: %v", err)
	}
	if err := c.ClearSession(ctx, token); err != nil {
		t.Fatalf("ClearSession failed: %v", err)
	}

	userID, err := c.CurrentSession(ctx, token)
	if err != nil {
		t.Fatalf("CurrentSession failed: %v", err)
	}
	if userID != "" {
		t.Errorf("cleared token should be anonymous, got %q", userID)
	}

	// Clearing an unknown token is a no-op, not an error.
	if err := c.ClearSession(ctx, "ps_00000000000000000000000000000000"); err != nil {
		t.Errorf("ClearSession on unknown token should not error: %v", err)
	}
}

func TestSession_Expiry(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, ctx)

	token := "ps_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b"

	if err := c.EstablishSession(ctx, token, "user-1", time.Second); err != nil {
		t.Fatalf("EstablishSession failed: %v", err)
	}

	time.Sleep(1500 * time.Millisecond)

	userID, err := c.CurrentSession(ctx, token)
	if err != nil {
		t.Fatalf("CurrentSession failed: %v", err)
	}
	if userID != "" {
		t.Errorf("expired token should be anonymous, got %q", userID)
	}
}

func TestSession_Touch_ExtendsTTL(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, ctx)

	token := "ps_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b"

	if err := c.EstablishSession(ctx, token, "user-1", time.Second); err != nil {
		t.Fatalf("EstablishSession failed: %v", err)
	}
	if err := c.TouchSession(ctx, token, time.Minute); err != nil {
		t.Fatalf("TouchSession failed: %v", err)
	}

	time.Sleep(1500 * time.Millisecond)

	userID, err := c.CurrentSession(ctx, token)
	if err != nil {
		t.Fatalf("CurrentSession failed: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("touched session should survive the original TTL, got %q", userID)
	}
}
