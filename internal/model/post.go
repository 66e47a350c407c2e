package model

import (
	"errors"
	"time"
)

// Post represents a status update. Posts are immutable once created.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined field (not in posts table)
	Author *UserSummary `json:"author,omitempty"`
}

// PostPage is one page of a time-ordered feed. Pages are one-indexed;
// a page past the end of the data is empty, not an error.
type PostPage struct {
	Posts   []Post `json:"posts"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Total   int    `json:"total"`
	HasNext bool   `json:"has_next"`
	HasPrev bool   `json:"has_prev"`
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Body string `json:"body" validate:"required,max=140"`
}

// MaxPostBodyLength is the maximum post length in characters.
const MaxPostBodyLength = 140

var (
	ErrPostNotFound = errors.New("post not found")
	ErrEmptyPost    = errors.New("post body is empty")
	ErrPostTooLong  = errors.New("post body too long")
)
