package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/perchpost/perchpost/internal/auth"
	"github.com/perchpost/perchpost/internal/model"
)

// SessionReader resolves an opaque session token to a user identity.
// Satisfied by *cache.Cache.
type SessionReader interface {
	CurrentSession(ctx context.Context, token string) (string, error)
	TouchSession(ctx context.Context, token string, ttl time.Duration) error
}

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger     *slog.Logger
	Store      SessionReader
	CookieName string
	TTL        time.Duration
}

// Session returns a middleware that resolves the caller's session token to
// a user identity and injects a SessionContext into the request context.
//
// It never rejects: anonymous requests and requests with stale tokens pass
// through with an anonymous context. Reads stay open to everyone; the
// authorization gate decides what mutations are allowed.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractSessionToken(r, cfg.CookieName)
			if token == "" || !auth.ValidateTokenFormat(token) {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := cfg.Store.CurrentSession(r.Context(), token)
			if err != nil {
				// A store outage downgrades to anonymous rather than
				// failing reads; mutations will be rejected by the gate.
				cfg.Logger.Error("session lookup failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Keep active sessions alive.
			_ = cfg.Store.TouchSession(r.Context(), token, cfg.TTL)

			sess := &model.SessionContext{
				Token:  token,
				UserID: userID,
			}
			ctx := auth.ContextWithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractSessionToken extracts the session token from the request.
// Supports the session cookie and "Authorization: Bearer <token>".
func extractSessionToken(r *http.Request, cookieName string) string {
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
			return c.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
