package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/perchpost/perchpost/internal/auth"
	"github.com/perchpost/perchpost/internal/handler/dto"
	"github.com/perchpost/perchpost/internal/model"
	"github.com/perchpost/perchpost/internal/service"
)

// UserHandler handles user profiles and the follow graph.
type UserHandler struct {
	users  *service.UserService
	graph  *service.GraphService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, graph *service.GraphService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		graph:  graph,
		logger: logger,
	}
}

// Get handles GET /api/v1/users/{username}.
// Readable without a session; relationship flags are false for anonymous
// viewers.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.resolveUser(w, r)
	if !ok {
		return
	}

	viewerID := auth.UserIDFromContext(r.Context())

	resp := dto.ProfileResponse{
		UserResponse: dto.ToUserResponse(user, viewerID == user.ID),
	}

	if viewerID != "" && viewerID != user.ID {
		following, err := h.graph.IsFollowing(r.Context(), viewerID, user.ID)
		if err != nil {
			handleServiceError(w, r, h.logger, err)
			return
		}
		followedBy, err := h.graph.IsFollowedBy(r.Context(), viewerID, user.ID)
		if err != nil {
			handleServiceError(w, r, h.logger, err)
			return
		}
		resp.IsFollowing = following
		resp.IsFollowedBy = followedBy
	}

	writeJSON(w, http.StatusOK, resp)
}

// UpdateMe handles PATCH /api/v1/users/me.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, service.UpdateProfileInput{
		Username:        req.Username,
		Email:           req.Email,
		ImageURL:        req.ImageURL,
		HeaderImageURL:  req.HeaderImageURL,
		Bio:             req.Bio,
		CurrentPassword: req.Password,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("profile_updated", "user_id", userID)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user, true))
}

// DeleteMe handles DELETE /api/v1/users/me.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.users.DeleteAccount(r.Context(), userID, userID); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("account_deleted", "user_id", userID)

	w.WriteHeader(http.StatusNoContent)
}

// Followers handles GET /api/v1/users/{username}/followers.
// Readable without a session.
func (h *UserHandler) Followers(w http.ResponseWriter, r *http.Request) {
	user, ok := h.resolveUser(w, r)
	if !ok {
		return
	}

	followers, err := h.graph.FollowersOf(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(followers))
}

// Following handles GET /api/v1/users/{username}/following.
func (h *UserHandler) Following(w http.ResponseWriter, r *http.Request) {
	user, ok := h.resolveUser(w, r)
	if !ok {
		return
	}

	following, err := h.graph.FollowingOf(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserListResponse(following))
}

// Follow handles PUT /api/v1/users/{username}/follow. The follower is
// always the session user regardless of anything in the request.
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	user, ok := h.resolveUser(w, r)
	if !ok {
		return
	}

	sessionUserID := auth.UserIDFromContext(r.Context())

	edge, err := h.graph.Follow(r.Context(), sessionUserID, user.ID)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("follow_created",
		"follower_id", edge.FollowerID,
		"followed_id", edge.FollowedID,
	)

	writeJSON(w, http.StatusCreated, map[string]any{
		"following":  true,
		"user_id":    edge.FollowedID,
		"created_at": edge.CreatedAt,
	})
}

// Unfollow handles DELETE /api/v1/users/{username}/follow.
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	user, ok := h.resolveUser(w, r)
	if !ok {
		return
	}

	sessionUserID := auth.UserIDFromContext(r.Context())

	if err := h.graph.Unfollow(r.Context(), sessionUserID, user.ID); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("follow_removed",
		"follower_id", sessionUserID,
		"followed_id", user.ID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// resolveUser looks up the {username} path parameter. On failure it writes
// the error response and returns ok=false.
func (h *UserHandler) resolveUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "MISSING_USERNAME", "Username is required")
		return nil, false
	}

	user, err := h.users.GetByUsername(r.Context(), username)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return nil, false
	}

	return user, true
}
