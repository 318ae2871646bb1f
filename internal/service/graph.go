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

// GraphService owns the follow relation and its derived queries.
type GraphService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewGraphService creates a new GraphService.
func NewGraphService(repo *repository.Repository, recorder metrics.Recorder) *GraphService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &GraphService{
		repo:    repo,
		metrics: recorder,
	}
}

// Follow creates an edge from the session user to the target. The follower
// endpoint is always the session user. Self-follows are disallowed as a
// policy decision; duplicate edges fail idempotently via the composite key.
func (s *GraphService) Follow(ctx context.Context, sessionUserID, followedID string) (*model.FollowEdge, error) {
	if !authz.CanModifyFollow(sessionUserID) {
		s.metrics.IncAuthzDenied("follow.create")
		return nil, ErrNotAuthorized
	}
	if sessionUserID == followedID {
		return nil, ErrSelfFollow
	}

	edge := &model.FollowEdge{
		FollowedID: followedID,
		FollowerID: sessionUserID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.CreateFollow(ctx, edge); err != nil {
		switch {
		case errors.Is(err, repository.ErrEdgeExists):
			return nil, ErrAlreadyFollowing
		case errors.Is(err, repository.ErrEdgeEndpoints):
			return nil, ErrUnknownUser
		default:
			return nil, fmt.Errorf("failed to create follow: %w", err)
		}
	}

	s.metrics.IncFollowCreated()

	return edge, nil
}

// Unfollow removes the edge from the session user to the target.
func (s *GraphService) Unfollow(ctx context.Context, sessionUserID, followedID string) error {
	if !authz.CanModifyFollow(sessionUserID) {
		s.metrics.IncAuthzDenied("follow.remove")
		return ErrNotAuthorized
	}

	if err := s.repo.DeleteFollow(ctx, sessionUserID, followedID); err != nil {
		if errors.Is(err, repository.ErrEdgeNotFound) {
			return ErrNotFollowing
		}
		return fmt.Errorf("failed to remove follow: %w", err)
	}

	s.metrics.IncFollowRemoved()

	return nil
}

// FollowersOf returns the users following the given user.
// Readable anonymously; order is not significant.
func (s *GraphService) FollowersOf(ctx context.Context, userID string) ([]*model.User, error) {
	users, err := s.repo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return users, nil
}

// FollowingOf returns the users the given user follows.
func (s *GraphService) FollowingOf(ctx context.Context, userID string) ([]*model.User, error) {
	users, err := s.repo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return users, nil
}

// IsFollowing reports whether a follows b.
func (s *GraphService) IsFollowing(ctx context.Context, a, b string) (bool, error) {
	following, err := s.repo.IsFollowing(ctx, a, b)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return following, nil
}

// IsFollowedBy reports whether a is followed by b.
// IsFollowedBy(a, b) == IsFollowing(b, a) always holds.
func (s *GraphService) IsFollowedBy(ctx context.Context, a, b string) (bool, error) {
	return s.IsFollowing(ctx, b, a)
}
