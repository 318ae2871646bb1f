package model

import "time"

// Message represents a single post. Messages are immutable after creation;
// there is no edit operation, only create and delete.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// IsOwnedBy reports whether the message belongs to the given user.
func (m *Message) IsOwnedBy(userID string) bool {
	return userID != "" && m.UserID == userID
}
