package service

import (
	"context"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"microblog/internal/model"
	"microblog/internal/repository"
)

// ResetTokenService issues and verifies password-reset tokens. Tokens are
// self-contained HS256 JWTs binding a user id and an expiry; nothing is
// persisted. Verification is pure and stateless.
type ResetTokenService struct {
	secret []byte
}

func NewResetTokenService(secret string) *ResetTokenService {
	return &ResetTokenService{secret: []byte(secret)}
}

// Issue produces a signed token authorizing a password reset for userID
// until now+ttl.
func (s *ResetTokenService) Issue(userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"reset_password": userID,
		"exp":            now.Add(ttl).Unix(),
		"iat":            now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the token's signature and expiry and returns the bound user
// id. Every failure mode (malformed, forged, expired) collapses into the one
// ErrInvalidResetToken so callers cannot tell which check failed.
func (s *ResetTokenService) Verify(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return 0, model.ErrInvalidResetToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, model.ErrInvalidResetToken
	}

	userIDFloat, ok := claims["reset_password"].(float64)
	if !ok {
		return 0, model.ErrInvalidResetToken
	}

	return int64(userIDFloat), nil
}

// ResetMailer delivers the password-reset link. Implementations are expected
// to send in the background and never block the request.
type ResetMailer interface {
	SendPasswordReset(to, username, token string)
}

// PasswordResetService drives the reset flow: issue a token and mail it, then
// exchange a valid token for a new password.
type PasswordResetService struct {
	tokens           *ResetTokenService
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	mailer           ResetMailer
	ttl              time.Duration
}

func NewPasswordResetService(
	tokens *ResetTokenService,
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	mailer ResetMailer,
	ttl time.Duration,
) *PasswordResetService {
	return &PasswordResetService{
		tokens:           tokens,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		mailer:           mailer,
		ttl:              ttl,
	}
}

// RequestReset mails a reset link to the account with the given email.
// An unknown email is not an error, so the endpoint cannot be used to probe
// which addresses are registered.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil
		}
		return err
	}

	token, err := s.tokens.Issue(user.ID, s.ttl)
	if err != nil {
		return err
	}

	s.mailer.SendPasswordReset(user.Email, user.Username, token)
	return nil
}

// ResetPassword verifies the token and replaces the user's password hash.
// All of the user's refresh tokens are revoked so stolen sessions die with
// the old password.
func (s *PasswordResetService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	userID, err := s.tokens.Verify(tokenString)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return model.ErrInvalidResetToken
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return err
	}

	if err := s.refreshTokenRepo.RevokeAllForUser(ctx, user.ID); err != nil {
		log.Printf("[PasswordReset] Failed to revoke sessions for user=%d: %v", user.ID, err)
	}

	return nil
}
