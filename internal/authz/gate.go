// Package authz contains the authorization gate: pure decision functions
// consulted before every mutating action. The gate never touches storage
// and never mutates state; callers surface a rejection (401/403) whenever
// a decision is false, never a partial success.
//
// The identity passed in is always the session-derived user ID. Identifiers
// supplied in request payloads are advisory only and must not reach these
// functions.
package authz

import "github.com/perchpost/perchpost/internal/model"

// CanCreateMessage reports whether the given session user may post a new
// message. Only authenticated users may post; the new message's owner is
// always the session user.
func CanCreateMessage(sessionUserID string) bool {
	return sessionUserID != ""
}

// CanDeleteMessage reports whether the given session user may delete the
// message. Only the owner may delete. The decision is independent of
// whether the message still exists; a missing message is a separate
// not-found condition.
func CanDeleteMessage(sessionUserID string, msg *model.Message) bool {
	if sessionUserID == "" || msg == nil {
		return false
	}
	return msg.IsOwnedBy(sessionUserID)
}

// CanModifyFollow reports whether the given session user may create or
// remove follow edges. The session user is always the follower endpoint;
// acting as another follower is impossible by construction.
func CanModifyFollow(sessionUserID string) bool {
	return sessionUserID != ""
}

// CanModifyProfile reports whether the session user may mutate the target
// user's profile or delete the account. Users manage only themselves.
func CanModifyProfile(sessionUserID, targetUserID string) bool {
	return sessionUserID != "" && sessionUserID == targetUserID
}
