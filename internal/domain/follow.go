package domain

import "context"

// Follow is an edge from follower to followed. Row existence denotes an
// active follow; self-follows are rejected at the action layer.
type Follow struct {
	Followed string
	Follower string
}

// FollowRepository abstracts follow edge persistence.
type FollowRepository interface {
	// Toggle removes the edge if present, creates it otherwise, and reports
	// whether the follower now follows the followed user.
	Toggle(ctx context.Context, followed, follower string) (bool, error)
	IsFollowing(ctx context.Context, followed, follower string) (bool, error)
	CountFollowers(ctx context.Context, username string) (int, error)
}
