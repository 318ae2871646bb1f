// Package model defines domain entities for the application.
package model

import "time"

// DefaultImageURL is used when a user signs up without a profile image.
const DefaultImageURL = "/static/images/default-pic.png"

// DefaultHeaderImageURL is used when a user has not set a header image.
const DefaultHeaderImageURL = "/static/images/default-header.jpg"

// User represents a registered account.
// PasswordHash always holds an argon2id PHC string, never plaintext.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	ImageURL       string    `json:"image_url"`
	HeaderImageURL string    `json:"header_image_url"`
	Bio            string    `json:"bio"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ApplyImageDefaults fills empty image fields with the system placeholders.
func (u *User) ApplyImageDefaults() {
	if u.ImageURL == "" {
		u.ImageURL = DefaultImageURL
	}
	if u.HeaderImageURL == "" {
		u.HeaderImageURL = DefaultHeaderImageURL
	}
}
