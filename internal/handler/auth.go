package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/perchpost/perchpost/internal/auth"
	"github.com/perchpost/perchpost/internal/handler/dto"
	"github.com/perchpost/perchpost/internal/service"
)

// SessionStore establishes and clears session identities.
// Satisfied by *cache.Cache.
type SessionStore interface {
	EstablishSession(ctx context.Context, token, userID string, ttl time.Duration) error
	ClearSession(ctx context.Context, token string) error
}

// AuthHandler handles signup, login, and logout.
type AuthHandler struct {
	users      *service.UserService
	sessions   SessionStore
	logger     *slog.Logger
	cookieName string
	sessionTTL time.Duration
	secure     bool
}

// AuthHandlerConfig holds dependencies for the AuthHandler.
type AuthHandlerConfig struct {
	Users         *service.UserService
	Sessions      SessionStore
	Logger        *slog.Logger
	CookieName    string
	SessionTTL    time.Duration
	SecureCookies bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		users:      cfg.Users,
		sessions:   cfg.Sessions,
		logger:     cfg.Logger,
		cookieName: cfg.CookieName,
		sessionTTL: cfg.SessionTTL,
		secure:     cfg.SecureCookies,
	}
}

// Signup handles POST /api/v1/auth/signup.
// A successful signup establishes a session immediately.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.users.SignUp(r.Context(), service.SignUpInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	if err := h.establish(w, r, user.ID); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("user_signed_up",
		"user_id", user.ID,
		"username", user.Username,
	)

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user, true))
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	if err := h.establish(w, r, user.ID); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user, true))
}

// Logout handles POST /api/v1/auth/logout.
// Clearing an anonymous session is a no-op, not an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	if sess != nil && sess.Token != "" {
		if err := h.sessions.ClearSession(r.Context(), sess.Token); err != nil {
			h.logger.Error("failed to clear session", "error", err)
		}
	}

	h.expireCookie(w)

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user, true))
}

// establish creates a fresh session token for the user and sets the
// session cookie. Re-login replaces any prior identity on the new token;
// the old token simply expires.
func (h *AuthHandler) establish(w http.ResponseWriter, r *http.Request, userID string) error {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return err
	}

	if err := h.sessions.EstablishSession(r.Context(), token, userID, h.sessionTTL); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// expireCookie instructs the browser to drop the session cookie.
func (h *AuthHandler) expireCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
