package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
)

// Session token format: ps_<secret>
// Example: ps_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b
// Tokens are opaque: they carry no claims and are only meaningful as keys
// into the session store.
const tokenSecretLen = 32 // hex encoded 16 bytes

var (
	// ErrInvalidTokenFormat indicates the session token format is invalid.
	ErrInvalidTokenFormat = errors.New("invalid session token format")
	// tokenFormatRegex validates the token format.
	tokenFormatRegex = regexp.MustCompile(`^ps_[a-f0-9]{32}$`)
)

// GenerateSessionToken creates a new opaque session token.
func GenerateSessionToken() (string, error) {
	secretBytes := make([]byte, 16)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("generate token secret: %w", err)
	}
	return fmt.Sprintf("ps_%s", hex.EncodeToString(secretBytes)), nil
}

// ValidateTokenFormat checks if the token matches the expected format.
func ValidateTokenFormat(token string) bool {
	return tokenFormatRegex.MatchString(token)
}
