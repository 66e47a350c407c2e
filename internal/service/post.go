package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"microblog/internal/model"
	"microblog/internal/repository"
)

// PostService handles post creation and lookup. Posts are immutable: there is
// no edit or delete.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// Create validates and stores a new post for the given author.
func (s *PostService) Create(ctx context.Context, userID int64, body string) (*model.Post, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, model.ErrEmptyPost
	}
	if utf8.RuneCountInString(body) > model.MaxPostBodyLength {
		return nil, model.ErrPostTooLong
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	return s.postRepo.Create(ctx, userID, body)
}

// GetByID retrieves a single post.
func (s *PostService) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}
