package dto

import (
	"time"

	"github.com/perchpost/perchpost/internal/model"
)

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	ImageURL       string    `json:"image_url"`
	HeaderImageURL string    `json:"header_image_url"`
	Bio            string    `json:"bio"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToUserResponse converts a user model to its public representation.
// The email is only included when the user is viewing themself.
func ToUserResponse(u *model.User, includeEmail bool) UserResponse {
	resp := UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		ImageURL:       u.ImageURL,
		HeaderImageURL: u.HeaderImageURL,
		Bio:            u.Bio,
		CreatedAt:      u.CreatedAt,
	}
	if includeEmail {
		resp.Email = u.Email
	}
	return resp
}

// ProfileResponse is a user profile with relationship context.
type ProfileResponse struct {
	UserResponse
	IsFollowing  bool `json:"is_following"`
	IsFollowedBy bool `json:"is_followed_by"`
}

// UserListResponse is a set of users (followers or following).
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

// ToUserListResponse converts user models to a list response.
func ToUserListResponse(users []*model.User) UserListResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u, false))
	}
	return UserListResponse{
		Users: out,
		Count: len(out),
	}
}

// UpdateProfileRequest is the payload for PATCH /api/v1/users/me.
// Nil fields are left unchanged; Password is the re-authentication step.
type UpdateProfileRequest struct {
	Username       *string `json:"username,omitempty"`
	Email          *string `json:"email,omitempty"`
	ImageURL       *string `json:"image_url,omitempty"`
	HeaderImageURL *string `json:"header_image_url,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	Password       string  `json:"password"`
}
