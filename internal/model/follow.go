package model

import "time"

// FollowEdge is a directed follow relationship: follower -> followed.
// The (FollowedID, FollowerID) pair is unique; an edge has no identity
// beyond the pair.
type FollowEdge struct {
	FollowedID string    `json:"user_being_followed_id"`
	FollowerID string    `json:"user_following_id"`
	CreatedAt  time.Time `json:"created_at"`
}
