package dto

import (
	"time"

	"github.com/perchpost/perchpost/internal/model"
)

// CreateMessageRequest is the payload for POST /api/v1/messages.
// There is deliberately no owner field: the owner is always the session
// user, and any identifier a client sends is ignored.
type CreateMessageRequest struct {
	Text string `json:"text"`
}

// MessageResponse is the public representation of a message.
type MessageResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ToMessageResponse converts a message model to its public representation.
func ToMessageResponse(m *model.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Text:      m.Text,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}

// MessageListResponse is an ordered list of messages, newest first.
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Count    int               `json:"count"`
}

// ToMessageListResponse converts message models to a list response.
func ToMessageListResponse(messages []*model.Message) MessageListResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, ToMessageResponse(m))
	}
	return MessageListResponse{
		Messages: out,
		Count:    len(out),
	}
}
