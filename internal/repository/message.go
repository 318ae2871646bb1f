package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/perchpost/perchpost/internal/model"
)

// Common errors for message repository operations.
var (
	ErrMessageNotFound = errors.New("message not found")
	ErrMessageOwner    = errors.New("message owner does not exist")
)

// CreateMessage inserts a new message into the database.
// Empty text trips the CHECK constraint and a missing owner trips the
// foreign key; both are surfaced as sentinels, never as raw pg errors.
func (r *Repository) CreateMessage(ctx context.Context, msg *model.Message) error {
	query := `
		INSERT INTO messages (id, text, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.Text,
		msg.UserID,
		msg.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrMessageOwner
		}
		if isIntegrityViolation(err) {
			return fmt.Errorf("%w: %s", ErrIntegrity, "messages insert")
		}
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// GetMessageByID retrieves a message by its ID.
func (r *Repository) GetMessageByID(ctx context.Context, id string) (*model.Message, error) {
	query := `
		SELECT id, text, user_id, created_at
		FROM messages
		WHERE id = $1
	`

	var msg model.Message
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID,
		&msg.Text,
		&msg.UserID,
		&msg.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message by ID: %w", err)
	}

	return &msg, nil
}

// DeleteMessage removes a message by its ID.
func (r *Repository) DeleteMessage(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrMessageNotFound
	}

	return nil
}

// ListMessagesByUser retrieves a user's messages, newest first.
func (r *Repository) ListMessagesByUser(ctx context.Context, userID string, limit int) ([]*model.Message, error) {
	query := `
		SELECT id, text, user_id, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	return collectMessages(rows)
}

// ListTimeline retrieves the home timeline for a user: their own messages
// plus messages from everyone they follow, newest first.
func (r *Repository) ListTimeline(ctx context.Context, userID string, limit int) ([]*model.Message, error) {
	query := `
		SELECT m.id, m.text, m.user_id, m.created_at
		FROM messages m
		WHERE m.user_id = $1
		   OR m.user_id IN (
			SELECT user_being_followed_id
			FROM follows
			WHERE user_following_id = $1
		   )
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeline: %w", err)
	}
	defer rows.Close()

	return collectMessages(rows)
}

// CountMessages returns the total number of messages in the store.
func (r *Repository) CountMessages(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// collectMessages drains rows into message models.
func collectMessages(rows pgx.Rows) ([]*model.Message, error) {
	var messages []*model.Message
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(&msg.ID, &msg.Text, &msg.UserID, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}
