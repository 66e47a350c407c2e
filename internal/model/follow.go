package model

import (
	"errors"
	"time"
)

// Follow is one directed edge of the follow graph: the follower's feed
// includes the followed user's posts.
type Follow struct {
	FollowerID int64     `db:"follower_id" json:"follower_id"`
	FollowedID int64     `db:"followed_id" json:"followed_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// UserSummary is a lightweight user representation for lists and post authors.
type UserSummary struct {
	ID          int64  `db:"id" json:"id"`
	Username    string `db:"username" json:"username"`
	AvatarURL   string `json:"avatar_url"`
	IsFollowing bool   `json:"is_following"`
}

// UserPage is one page of a follower or following list.
type UserPage struct {
	Users   []UserSummary `json:"users"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
	Total   int           `json:"total"`
	HasNext bool          `json:"has_next"`
	HasPrev bool          `json:"has_prev"`
}

var (
	// ErrCannotFollowSelf is returned when a user tries to follow themselves.
	// Self-edges are also rejected by a CHECK constraint in the follows table.
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)
