package domain

import "time"

// FollowState is the lifecycle state of a follow request.
type FollowState string

const (
	FollowPending  FollowState = "pending"
	FollowAccepted FollowState = "accepted"
	FollowRejected FollowState = "rejected"
)

// FollowRequest links a follower to a followed user. At most one outstanding
// request may exist per (follower, followed) pair.
type FollowRequest struct {
	ID         string      `json:"id"`
	FollowerID string      `json:"followerId"`
	FollowedID string      `json:"followedId"`
	State      FollowState `json:"state"`
	CreatedAt  time.Time   `json:"createdAt"`
}
