package auth

import (
	"strings"
	"testing"
)

func TestGenerateSessionToken_Format(t *testing.T) {
	t.Parallel()

	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	if !strings.HasPrefix(token, "ps_") {
		t.Errorf("token should have ps_ prefix, got: %s", token)
	}

	if len(token) != 3+tokenSecretLen {
		t.Errorf("token length = %d, want %d", len(token), 3+tokenSecretLen)
	}

	if !ValidateTokenFormat(token) {
		t.Errorf("generated token should pass format validation: %s", token)
	}
}

func TestGenerateSessionToken_Uniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateSessionToken()
		if err != nil {
			t.Fatalf("GenerateSessionToken failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}

func TestValidateTokenFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"valid", "ps_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b", true},
		{"empty", "", false},
		{"missing prefix", "4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b", false},
		{"wrong prefix", "pk_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b", false},
		{"too short", "ps_4f8d2e1b", false},
		{"too long", "ps_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b00", false},
		{"uppercase hex", "ps_4F8D2E1B9C7A5F3D2E1B9C7A5F3D2E1B", false},
		{"non-hex chars", "ps_zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", false},
		{"embedded whitespace", "ps_4f8d2e1b 9c7a5f3d2e1b9c7a5f3d2e1b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt := tt
			t.Parallel()

			if got := ValidateTokenFormat(tt.token); got != tt.want {
				t.Errorf("ValidateTokenFormat(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}
