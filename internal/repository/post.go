package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"microblog/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post. Posts are immutable after this point.
func (r *postRepository) Create(ctx context.Context, userID int64, body string) (*model.Post, error) {
	query := `
		INSERT INTO posts (user_id, body)
		VALUES ($1, $2)
		RETURNING id, user_id, body, created_at
	`
	var post model.Post
	err := r.db.GetContext(ctx, &post, query, userID, body)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return &post, nil
}

type postRow struct {
	ID             int64     `db:"id"`
	UserID         int64     `db:"user_id"`
	Body           string    `db:"body"`
	CreatedAt      time.Time `db:"created_at"`
	AuthorUsername string    `db:"author_username"`
	AuthorEmail    string    `db:"author_email"`
}

// postSelect joins the author so one query yields display-ready posts.
const postSelect = `
	SELECT p.id, p.user_id, p.body, p.created_at,
	       u.username AS author_username, u.email AS author_email
	FROM posts p
	JOIN users u ON u.id = p.user_id
`

func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	query := postSelect + `WHERE p.id = $1`

	var row postRow
	err := r.db.GetContext(ctx, &row, query, postID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post := row.toPost()
	return &post, nil
}

// ListByAuthors returns one page of posts authored by any of authorIDs.
// Ordered by created_at descending with id descending as the stable tiebreak,
// so concatenating pages reproduces the full feed with no gaps or duplicates.
func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []int64, limit, offset int) ([]model.Post, error) {
	if len(authorIDs) == 0 {
		return []model.Post{}, nil
	}

	query := postSelect + `
		WHERE p.user_id = ANY($1)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`
	var rows []postRow
	err := r.db.SelectContext(ctx, &rows, query, pq.Array(authorIDs), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by authors: %w", err)
	}

	return toPosts(rows), nil
}

func (r *postRepository) CountByAuthors(ctx context.Context, authorIDs []int64) (int, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}

	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM posts WHERE user_id = ANY($1)`, pq.Array(authorIDs))
	if err != nil {
		return 0, fmt.Errorf("failed to count posts by authors: %w", err)
	}
	return count, nil
}

// ListAll returns one page over every post regardless of follow relationship
// (the explore feed). Same ordering as ListByAuthors.
func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]model.Post, error) {
	query := postSelect + `
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`
	var rows []postRow
	err := r.db.SelectContext(ctx, &rows, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return toPosts(rows), nil
}

func (r *postRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

func (row postRow) toPost() model.Post {
	return model.Post{
		ID:        row.ID,
		UserID:    row.UserID,
		Body:      row.Body,
		CreatedAt: row.CreatedAt,
		Author: &model.UserSummary{
			ID:        row.UserID,
			Username:  row.AuthorUsername,
			AvatarURL: model.Gravatar(row.AuthorEmail, model.AvatarSizePost),
		},
	}
}

func toPosts(rows []postRow) []model.Post {
	posts := make([]model.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.toPost()
	}
	return posts
}
