package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"microblog/internal/model"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts a follow edge and its counter updates in one transaction.
// ON CONFLICT DO NOTHING keeps repeated follows idempotent; RowsAffected
// tells us whether the edge is new and the counters need maintaining.
func (r *followRepository) Follow(ctx context.Context, followerID, followedID int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`
	result, err := tx.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to create follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, nil
	}

	if err := r.adjustCounts(ctx, tx, followerID, followedID, 1); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}

	return true, nil
}

// Unfollow removes a follow edge. Removing an absent edge is not an error.
func (r *followRepository) Unfollow(ctx context.Context, followerID, followedID int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`
	result, err := tx.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	if err := r.adjustCounts(ctx, tx, followerID, followedID, -1); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}

	return true, nil
}

func (r *followRepository) adjustCounts(ctx context.Context, tx *sqlx.Tx, followerID, followedID int64, delta int) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE users SET following_count = following_count + $1 WHERE id = $2`, delta, followerID)
	if err != nil {
		return fmt.Errorf("failed to update following count: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET follower_count = follower_count + $1 WHERE id = $2`, delta, followedID)
	if err != nil {
		return fmt.Errorf("failed to update follower count: %w", err)
	}

	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow existence: %w", err)
	}
	return exists, nil
}

// GetFollowedIDs returns the ids of every user the follower follows.
func (r *followRepository) GetFollowedIDs(ctx context.Context, followerID int64) ([]int64, error) {
	query := `SELECT followed_id FROM follows WHERE follower_id = $1`
	var ids []int64
	err := r.db.SelectContext(ctx, &ids, query, followerID)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get followed ids: %w", err)
	}
	return ids, nil
}

type followUserRow struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Email    string `db:"email"`
}

func (r *followRepository) GetFollowers(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	query := `
		SELECT u.id, u.username, u.email
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followed_id = $1
		ORDER BY f.created_at DESC, u.id DESC
		LIMIT $2 OFFSET $3
	`
	var rows []followUserRow
	err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}

	return summaries(rows), nil
}

func (r *followRepository) GetFollowing(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	query := `
		SELECT u.id, u.username, u.email
		FROM follows f
		JOIN users u ON u.id = f.followed_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC, u.id DESC
		LIMIT $2 OFFSET $3
	`
	var rows []followUserRow
	err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}

	return summaries(rows), nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE followed_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}
	return count, nil
}

// CheckFollows batch-checks which of followedIDs the follower follows.
// One query with ANY($2) instead of a query per user.
func (r *followRepository) CheckFollows(ctx context.Context, followerID int64, followedIDs []int64) (map[int64]bool, error) {
	if len(followedIDs) == 0 {
		return make(map[int64]bool), nil
	}

	query := `SELECT followed_id FROM follows WHERE follower_id = $1 AND followed_id = ANY($2)`
	var matched []int64
	err := r.db.SelectContext(ctx, &matched, query, followerID, pq.Array(followedIDs))
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check follows: %w", err)
	}

	result := make(map[int64]bool)
	for _, id := range followedIDs {
		result[id] = false
	}
	for _, id := range matched {
		result[id] = true
	}

	return result, nil
}

func summaries(rows []followUserRow) []model.UserSummary {
	users := make([]model.UserSummary, len(rows))
	for i, row := range rows {
		users[i] = model.UserSummary{
			ID:        row.ID,
			Username:  row.Username,
			AvatarURL: model.Gravatar(row.Email, model.AvatarSizePost),
		}
	}
	return users
}
