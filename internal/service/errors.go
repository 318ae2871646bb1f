// Package service provides business logic for the application.
package service

import "errors"

// Failure taxonomy surfaced to the request layer. Validation failures are
// raised before any write attempt; integrity violations are discovered at
// commit and translated here from the repository sentinels, never leaked
// as raw storage errors.
var (
	// ErrValidation indicates a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateIdentity indicates the username or email is already taken.
	ErrDuplicateIdentity = errors.New("username or email already taken")
	// ErrAuthFailed indicates a credential mismatch. The same error covers
	// unknown usernames and wrong passwords; callers must not distinguish.
	ErrAuthFailed = errors.New("invalid credentials")
	// ErrNotAuthorized indicates the caller is anonymous or not permitted
	// to perform the mutation.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyFollowing indicates the follow edge already exists.
	ErrAlreadyFollowing = errors.New("already following")
	// ErrNotFollowing indicates the follow edge does not exist.
	ErrNotFollowing = errors.New("not following")
	// ErrUnknownUser indicates a referenced user does not exist.
	ErrUnknownUser = errors.New("unknown user")
	// ErrSelfFollow indicates a user attempted to follow themself.
	ErrSelfFollow = errors.New("cannot follow yourself")
)
