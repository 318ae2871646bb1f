package model

// SessionContext is the per-request association between a caller and an
// authenticated user identity. A zero UserID means the caller is anonymous.
// The request layer creates it at request start and discards it at request
// end; it is never stored globally.
type SessionContext struct {
	Token  string
	UserID string
}

// IsAuthenticated reports whether the context carries a user identity.
func (s *SessionContext) IsAuthenticated() bool {
	return s != nil && s.UserID != ""
}
