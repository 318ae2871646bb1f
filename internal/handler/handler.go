// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/perchpost/perchpost/internal/auth"
	"github.com/perchpost/perchpost/internal/handler/dto"
	"github.com/perchpost/perchpost/internal/repository"
	"github.com/perchpost/perchpost/internal/service"
)

// Handler wraps shared handlers that need no dependencies.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Hello is the root info endpoint.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Hello from Perchpost!",
		"version": "0.1.0",
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps service errors to HTTP responses.
//
// Authorization failures map to 401 for anonymous callers and 403 for
// authenticated ones: an anonymous mutation attempt is turned away at the
// door, an authenticated-but-not-owning one is forbidden. Credential
// failures always get the same generic message.
func handleServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, service.ErrDuplicateIdentity):
		writeError(w, http.StatusConflict, "DUPLICATE_IDENTITY", "Username or email already taken")
	case errors.Is(err, service.ErrAuthFailed):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, service.ErrNotAuthorized):
		if auth.UserIDFromContext(r.Context()) == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		} else {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Not allowed")
		}
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUnknownUser):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, service.ErrAlreadyFollowing):
		writeError(w, http.StatusConflict, "ALREADY_FOLLOWING", "Already following this user")
	case errors.Is(err, service.ErrNotFollowing):
		writeError(w, http.StatusConflict, "NOT_FOLLOWING", "Not following this user")
	case errors.Is(err, service.ErrSelfFollow):
		writeError(w, http.StatusUnprocessableEntity, "SELF_FOLLOW", "Cannot follow yourself")
	case errors.Is(err, repository.ErrIntegrity):
		writeError(w, http.StatusUnprocessableEntity, "INTEGRITY_VIOLATION", "Request violates a storage constraint")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
