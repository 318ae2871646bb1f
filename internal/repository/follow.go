package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/perchpost/perchpost/internal/model"
)

// Common errors for follow repository operations.
var (
	ErrEdgeExists    = errors.New("follow edge already exists")
	ErrEdgeNotFound  = errors.New("follow edge not found")
	ErrEdgeEndpoints = errors.New("follow edge references unknown user")
)

// CreateFollow inserts a follow edge. Uniqueness of the pair is enforced by
// the composite primary key at commit time, so concurrent follows cannot
// create duplicate edges.
func (r *Repository) CreateFollow(ctx context.Context, edge *model.FollowEdge) error {
	query := `
		INSERT INTO follows (user_being_followed_id, user_following_id, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query,
		edge.FollowedID,
		edge.FollowerID,
		edge.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrEdgeExists
		}
		if isForeignKeyViolation(err) {
			return ErrEdgeEndpoints
		}
		if isIntegrityViolation(err) {
			return fmt.Errorf("%w: %s", ErrIntegrity, "follows insert")
		}
		return fmt.Errorf("failed to create follow: %w", err)
	}

	return nil
}

// DeleteFollow removes a follow edge.
func (r *Repository) DeleteFollow(ctx context.Context, followerID, followedID string) error {
	query := `
		DELETE FROM follows
		WHERE user_being_followed_id = $1 AND user_following_id = $2
	`

	result, err := r.pool.Exec(ctx, query, followedID, followerID)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrEdgeNotFound
	}

	return nil
}

// IsFollowing reports whether follower currently follows followed.
func (r *Repository) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM follows
			WHERE user_being_followed_id = $1 AND user_following_id = $2
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, followedID, followerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check follow edge: %w", err)
	}

	return exists, nil
}

// ListFollowers retrieves the users following the given user.
// Result order is not significant; edges have no history.
func (r *Repository) ListFollowers(ctx context.Context, userID string) ([]*model.User, error) {
	query := userSelectColumns + `
		JOIN follows f ON f.user_following_id = users.id
		WHERE f.user_being_followed_id = $1`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUserFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan follower: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating followers: %w", err)
	}

	return users, nil
}

// ListFollowing retrieves the users the given user follows.
func (r *Repository) ListFollowing(ctx context.Context, userID string) ([]*model.User, error) {
	query := userSelectColumns + `
		JOIN follows f ON f.user_being_followed_id = users.id
		WHERE f.user_following_id = $1`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUserFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan following: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating following: %w", err)
	}

	return users, nil
}
