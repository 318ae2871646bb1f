package authz

import (
	"testing"
	"time"

	"github.com/perchpost/perchpost/internal/model"
)

func testMessage(ownerID string) *model.Message {
	return &model.Message{
		ID:        "msg-1",
		Text:      "hello",
		UserID:    ownerID,
		CreatedAt: time.Now().UTC(),
	}
}

func TestCanCreateMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		sessionUserID string
		want          bool
	}{
		{"authenticated", "user-1", true},
		{"anonymous", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt := tt
			t.Parallel()

			if got := CanCreateMessage(tt.sessionUserID); got != tt.want {
				t.Errorf("CanCreateMessage(%q) = %v, want %v", tt.sessionUserID, got, tt.want)
			}
		})
	}
}

func TestCanDeleteMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		sessionUserID string
		msg           *model.Message
		want          bool
	}{
		{"owner", "user-1", testMessage("user-1"), true},
		{"non-owner", "user-2", testMessage("user-1"), false},
		{"anonymous", "", testMessage("user-1"), false},
		{"nil message", "user-1", nil, false},
		{"anonymous and ownerless", "", testMessage(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt := tt
			t.Parallel()

			if got := CanDeleteMessage(tt.sessionUserID, tt.msg); got != tt.want {
				t.Errorf("CanDeleteMessage(%q, msg) = %v, want %v", tt.sessionUserID, got, tt.want)
			}
		})
	}
}

func TestCanModifyFollow(t *testing.T) {
	t.Parallel()

	if !CanModifyFollow("user-1") {
		t.Error("authenticated user should be allowed to modify follows")
	}
	if CanModifyFollow("") {
		t.Error("anonymous caller should not be allowed to modify follows")
	}
}

func TestCanModifyProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		sessionUserID string
		targetUserID  string
		want          bool
	}{
		{"self", "user-1", "user-1", true},
		{"other user", "user-1", "user-2", false},
		{"anonymous", "", "user-1", false},
		{"both empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt := tt
			t.Parallel()

			if got := CanModifyProfile(tt.sessionUserID, tt.targetUserID); got != tt.want {
				t.Errorf("CanModifyProfile(%q, %q) = %v, want %v",
					tt.sessionUserID, tt.targetUserID, got, tt.want)
			}
		})
	}
}
