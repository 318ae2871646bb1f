package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/perchpost/perchpost/internal/authz"
	"github.com/perchpost/perchpost/internal/metrics"
	"github.com/perchpost/perchpost/internal/model"
	"github.com/perchpost/perchpost/internal/repository"
)

// DefaultMessageLimit bounds message listings when the caller does not
// specify a limit.
const DefaultMessageLimit = 100

// MessageService owns message creation, deletion, and listing.
type MessageService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewMessageService creates a new MessageService.
func NewMessageService(repo *repository.Repository, recorder metrics.Recorder) *MessageService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &MessageService{
		repo:    repo,
		metrics: recorder,
	}
}

// Post creates a message owned by the session user. The owner is always
// sessionUserID; any owner identifier a request payload may carry never
// reaches this function. The gate runs before validation and validation
// before any write, so a rejected post leaves the store untouched.
func (s *MessageService) Post(ctx context.Context, sessionUserID, text string) (*model.Message, error) {
	if !authz.CanCreateMessage(sessionUserID) {
		s.metrics.IncAuthzDenied("message.create")
		return nil, ErrNotAuthorized
	}

	if err := ValidateMessageText(text); err != nil {
		return nil, err
	}

	msg := &model.Message{
		ID:        newID(),
		Text:      text,
		UserID:    sessionUserID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		if errors.Is(err, repository.ErrMessageOwner) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncMessagePosted()

	return msg, nil
}

// Delete removes a message. Anonymous callers are rejected before the
// lookup; authenticated non-owners are rejected after it. Either way no
// state changes on rejection.
func (s *MessageService) Delete(ctx context.Context, sessionUserID, messageID string) error {
	if sessionUserID == "" {
		s.metrics.IncAuthzDenied("message.delete")
		return ErrNotAuthorized
	}

	msg, err := s.repo.GetMessageByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get message: %w", err)
	}

	if !authz.CanDeleteMessage(sessionUserID, msg) {
		s.metrics.IncAuthzDenied("message.delete")
		return ErrNotAuthorized
	}

	if err := s.repo.DeleteMessage(ctx, messageID); err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete message: %w", err)
	}

	s.metrics.IncMessageDeleted()

	return nil
}

// Get retrieves a single message.
func (s *MessageService) Get(ctx context.Context, messageID string) (*model.Message, error) {
	msg, err := s.repo.GetMessageByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return msg, nil
}

// MessagesOf lists a user's messages, newest first. Readable anonymously.
func (s *MessageService) MessagesOf(ctx context.Context, userID string, limit int) ([]*model.Message, error) {
	if limit <= 0 || limit > DefaultMessageLimit {
		limit = DefaultMessageLimit
	}

	messages, err := s.repo.ListMessagesByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// Timeline lists the session user's home timeline: own messages plus
// messages from followed users, newest first.
func (s *MessageService) Timeline(ctx context.Context, sessionUserID string, limit int) ([]*model.Message, error) {
	if sessionUserID == "" {
		return nil, ErrNotAuthorized
	}
	if limit <= 0 || limit > DefaultMessageLimit {
		limit = DefaultMessageLimit
	}

	messages, err := s.repo.ListTimeline(ctx, sessionUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline: %w", err)
	}
	return messages, nil
}
