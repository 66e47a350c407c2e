package service

import (
	"context"
	"fmt"

	"microblog/internal/model"
	"microblog/internal/repository"
)

// FeedService composes the follow graph and the post store into paginated,
// time-ordered feeds. Pages are one-indexed; a page past the end of the data
// is an empty page, never an error.
type FeedService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFeedService(
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// FollowedPosts returns one page of the viewer's feed: their own posts plus
// posts by everyone they follow, newest first.
//
// The union is computed as a deduplicated author set (followed ∪ self) fed
// into one explicit query, so a duplicate author can never yield duplicate
// posts and ordering is decided here rather than by storage-layer accident.
func (s *FeedService) FollowedPosts(ctx context.Context, viewerID int64, page, perPage int) (*model.PostPage, error) {
	if _, err := s.userRepo.GetByID(ctx, viewerID); err != nil {
		return nil, err
	}

	followedIDs, err := s.followRepo.GetFollowedIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("get followed ids: %w", err)
	}

	authorIDs := unionAuthors(followedIDs, viewerID)

	return s.pageByAuthors(ctx, authorIDs, page, perPage)
}

// Explore returns one page over every post regardless of follow relationship.
func (s *FeedService) Explore(ctx context.Context, page, perPage int) (*model.PostPage, error) {
	page, offset := pageOffset(page, perPage)

	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	posts, err := s.postRepo.ListAll(ctx, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return newPostPage(posts, page, perPage, total), nil
}

// UserPosts returns one page of posts authored by the named user.
func (s *FeedService) UserPosts(ctx context.Context, username string, page, perPage int) (*model.PostPage, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.pageByAuthors(ctx, []int64{user.ID}, page, perPage)
}

func (s *FeedService) pageByAuthors(ctx context.Context, authorIDs []int64, page, perPage int) (*model.PostPage, error) {
	page, offset := pageOffset(page, perPage)

	total, err := s.postRepo.CountByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return newPostPage(posts, page, perPage, total), nil
}

// unionAuthors merges the followed set with the viewer, dropping duplicates.
func unionAuthors(followedIDs []int64, viewerID int64) []int64 {
	seen := make(map[int64]struct{}, len(followedIDs)+1)
	authors := make([]int64, 0, len(followedIDs)+1)
	for _, id := range append(followedIDs, viewerID) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		authors = append(authors, id)
	}
	return authors
}

// pageOffset clamps the page number to one-indexed and derives the offset.
func pageOffset(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	return page, (page - 1) * perPage
}

func newPostPage(posts []model.Post, page, perPage, total int) *model.PostPage {
	if posts == nil {
		posts = []model.Post{}
	}
	return &model.PostPage{
		Posts:   posts,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		HasNext: page*perPage < total,
		HasPrev: page > 1,
	}
}
