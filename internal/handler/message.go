package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/perchpost/perchpost/internal/auth"
	"github.com/perchpost/perchpost/internal/handler/dto"
	"github.com/perchpost/perchpost/internal/service"
)

// MessageHandler handles message creation, deletion, and listing.
type MessageHandler struct {
	messages *service.MessageService
	users    *service.UserService
	logger   *slog.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messages *service.MessageService, users *service.UserService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		messages: messages,
		users:    users,
		logger:   logger,
	}
}

// Create handles POST /api/v1/messages. The owner is always the session
// user; the payload carries only the text.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	sessionUserID := auth.UserIDFromContext(r.Context())

	msg, err := h.messages.Post(r.Context(), sessionUserID, req.Text)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("message_posted",
		"message_id", msg.ID,
		"user_id", msg.UserID,
	)

	writeJSON(w, http.StatusCreated, dto.ToMessageResponse(msg))
}

// Get handles GET /api/v1/messages/{id}.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "id")

	msg, err := h.messages.Get(r.Context(), messageID)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMessageResponse(msg))
}

// Delete handles DELETE /api/v1/messages/{id}.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "id")
	sessionUserID := auth.UserIDFromContext(r.Context())

	if err := h.messages.Delete(r.Context(), sessionUserID, messageID); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("message_deleted",
		"message_id", messageID,
		"user_id", sessionUserID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// ListByUser handles GET /api/v1/users/{username}/messages.
// Readable without a session.
func (h *MessageHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.users.GetByUsername(r.Context(), username)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	messages, err := h.messages.MessagesOf(r.Context(), user.ID, parseLimit(r))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMessageListResponse(messages))
}

// Timeline handles GET /api/v1/timeline.
func (h *MessageHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	sessionUserID := auth.UserIDFromContext(r.Context())

	messages, err := h.messages.Timeline(r.Context(), sessionUserID, parseLimit(r))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMessageListResponse(messages))
}

// parseLimit reads the ?limit query parameter. Invalid or absent values
// return 0 so the service applies its default.
func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
