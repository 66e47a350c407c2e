package repository

import (
	"context"
	"time"

	"microblog/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id int64, username string, aboutMe *string) error
	UpdatePassword(ctx context.Context, id int64, passwordHashed string) error
	UpdateLastSeen(ctx context.Context, id int64) error
}

type FollowRepository interface {
	// Follow inserts the edge if absent and maintains the denormalized
	// follower/following counters in one transaction. Returns whether a
	// new edge was created.
	Follow(ctx context.Context, followerID, followedID int64) (bool, error)
	// Unfollow removes the edge if present, maintaining the counters in
	// one transaction. Returns whether an edge was removed.
	Unfollow(ctx context.Context, followerID, followedID int64) (bool, error)
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	GetFollowedIDs(ctx context.Context, followerID int64) ([]int64, error)
	GetFollowers(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	GetFollowing(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	CountFollowers(ctx context.Context, userID int64) (int, error)
	CountFollowing(ctx context.Context, userID int64) (int, error)
	CheckFollows(ctx context.Context, followerID int64, followedIDs []int64) (map[int64]bool, error)
}

type PostRepository interface {
	Create(ctx context.Context, userID int64, body string) (*model.Post, error)
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	// ListByAuthors returns posts authored by any of authorIDs, newest first,
	// with ties broken by descending id.
	ListByAuthors(ctx context.Context, authorIDs []int64, limit, offset int) ([]model.Post, error)
	CountByAuthors(ctx context.Context, authorIDs []int64) (int, error)
	ListAll(ctx context.Context, limit, offset int) ([]model.Post, error)
	CountAll(ctx context.Context) (int, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id string, replacedBy *string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}
