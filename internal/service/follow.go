package service

import (
	"context"

	"microblog/internal/model"
	"microblog/internal/repository"
)

// FollowService owns the follow graph: directed, deduplicated edges between
// users. All operations are idempotent; only a self-follow or a missing
// target user is an error.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow adds the follower -> followed edge. Following a user twice is a
// no-op, not an error. The edge and the denormalized counters are written in
// one transaction by the repository.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		return model.ErrCannotFollowSelf
	}

	if _, err := s.userRepo.GetByID(ctx, followedID); err != nil {
		return err
	}

	_, err := s.followRepo.Follow(ctx, followerID, followedID)
	return err
}

// Unfollow removes the follower -> followed edge. Unfollowing a user who was
// never followed is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID int64) error {
	_, err := s.followRepo.Unfollow(ctx, followerID, followedID)
	return err
}

// IsFollowing reports whether the follower -> followed edge exists.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followedID)
}

// FollowedIDs returns the ids of every user the follower follows.
func (s *FollowService) FollowedIDs(ctx context.Context, followerID int64) ([]int64, error) {
	return s.followRepo.GetFollowedIDs(ctx, followerID)
}

// GetFollowers returns one page of users following userID, newest edge first.
func (s *FollowService) GetFollowers(ctx context.Context, userID int64, page, perPage int, viewerID *int64) (*model.UserPage, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	page, offset := pageOffset(page, perPage)

	total, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}

	users, err := s.followRepo.GetFollowers(ctx, userID, perPage, offset)
	if err != nil {
		return nil, err
	}

	if viewerID != nil {
		users = s.enrichWithFollowStatus(ctx, *viewerID, users)
	}

	return &model.UserPage{
		Users:   users,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		HasNext: page*perPage < total,
		HasPrev: page > 1,
	}, nil
}

// GetFollowing returns one page of users userID follows, newest edge first.
func (s *FollowService) GetFollowing(ctx context.Context, userID int64, page, perPage int, viewerID *int64) (*model.UserPage, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	page, offset := pageOffset(page, perPage)

	total, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	users, err := s.followRepo.GetFollowing(ctx, userID, perPage, offset)
	if err != nil {
		return nil, err
	}

	if viewerID != nil {
		users = s.enrichWithFollowStatus(ctx, *viewerID, users)
	}

	return &model.UserPage{
		Users:   users,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		HasNext: page*perPage < total,
		HasPrev: page > 1,
	}, nil
}

// enrichWithFollowStatus batch-checks whether the viewer follows each listed
// user. One CheckFollows query, not a query per user. A failed check degrades
// to is_following=false rather than failing the request.
func (s *FollowService) enrichWithFollowStatus(ctx context.Context, viewerID int64, users []model.UserSummary) []model.UserSummary {
	if len(users) == 0 {
		return users
	}

	userIDs := make([]int64, len(users))
	for i, user := range users {
		userIDs[i] = user.ID
	}

	followMap, err := s.followRepo.CheckFollows(ctx, viewerID, userIDs)
	if err != nil {
		return users
	}

	for i := range users {
		users[i].IsFollowing = followMap[users[i].ID]
	}

	return users
}
