package model

import (
	"errors"
	"time"
)

// RefreshToken is a persisted, rotating session credential. Only the
// sha256 hash of the raw token is stored.
type RefreshToken struct {
	ID         string     `db:"id" json:"id"`
	UserID     int64      `db:"user_id" json:"user_id"`
	TokenHash  string     `db:"token_hash" json:"-"`
	ExpiresAt  time.Time  `db:"expires_at" json:"expires_at"`
	RevokedAt  *time.Time `db:"revoked_at" json:"-"`
	ReplacedBy *string    `db:"replaced_by" json:"-"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// TokenPair is the login/refresh response payload.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Error codes surfaced to clients alongside 401 responses
const (
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
)

var (
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrRefreshTokenReused   = errors.New("refresh token reused")

	// ErrInvalidResetToken covers every reset-token failure mode (malformed,
	// bad signature, expired) so callers cannot tell which check failed.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)
