package service

import (
	"fmt"
	"regexp"
	"strings"
)

// Validation limits.
const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6

	// MaxUsernameLength is the maximum length for a username.
	MaxUsernameLength = 30

	// MinUsernameLength is the minimum length for a username.
	MinUsernameLength = 3

	// MaxMessageLength is the maximum length for a message text.
	MaxMessageLength = 140

	// MaxBioLength is the maximum length for a profile bio.
	MaxBioLength = 400
)

// Validation errors. All wrap ErrValidation so callers can match the class.
var (
	ErrUsernameRequired = fmt.Errorf("%w: username is required", ErrValidation)
	ErrUsernameInvalid  = fmt.Errorf("%w: username has invalid length or characters", ErrValidation)
	ErrUsernameReserved = fmt.Errorf("%w: username is reserved", ErrValidation)
	ErrEmailRequired    = fmt.Errorf("%w: email is required", ErrValidation)
	ErrEmailInvalid     = fmt.Errorf("%w: email is malformed", ErrValidation)
	ErrPasswordRequired = fmt.Errorf("%w: password is required", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password is too short", ErrValidation)
	ErrTextRequired     = fmt.Errorf("%w: message text is required", ErrValidation)
	ErrTextTooLong      = fmt.Errorf("%w: message text is too long", ErrValidation)
	ErrBioTooLong       = fmt.Errorf("%w: bio is too long", ErrValidation)
)

// reservedUsernames contains names that cannot be registered.
// These collide with system routes or invite impersonation.
var reservedUsernames = map[string]bool{
	"admin":     true,
	"api":       true,
	"auth":      true,
	"healthz":   true,
	"readyz":    true,
	"me":        true,
	"timeline":  true,
	"messages":  true,
	"users":     true,
	"perchpost": true,
	"support":   true,
	"static":    true,
}

// validUsernamePattern matches valid username characters.
// Allowed: a-z, A-Z, 0-9, hyphen, underscore
var validUsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// emailPattern is a light structural check; the mailbox is never verified
// here, only obviously broken input is rejected before a write is attempted.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateUsername validates a username for signup or profile update.
func ValidateUsername(username string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return ErrUsernameInvalid
	}
	if !validUsernamePattern.MatchString(username) {
		return ErrUsernameInvalid
	}
	if reservedUsernames[strings.ToLower(username)] {
		return ErrUsernameReserved
	}
	return nil
}

// ValidateEmail validates an email address shape.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// ValidatePassword validates a plaintext password before hashing.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateMessageText validates message text before a write is attempted.
// The storage CHECK constraint backs this up for any path that skips the
// service layer.
func ValidateMessageText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrTextRequired
	}
	if len(text) > MaxMessageLength {
		return ErrTextTooLong
	}
	return nil
}

// ValidateBio validates a profile bio.
func ValidateBio(bio string) error {
	if len(bio) > MaxBioLength {
		return ErrBioTooLong
	}
	return nil
}
