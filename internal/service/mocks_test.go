package service

import (
	"context"
	"time"

	"microblog/internal/model"
)

// Mock repositories for the service tests. Because every service depends on
// the repository INTERFACES rather than the sqlx implementations, the tests
// can swap in these mocks and never touch a database.
//
// Each mock exposes function fields so individual tests define exactly the
// behavior they need, plus call slices for asserting what was invoked.

type mockUserRepository struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*model.User, error)
	getByEmailFn       func(ctx context.Context, email string) (*model.User, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
	existsByEmailFn    func(ctx context.Context, email string) (bool, error)
	updateProfileFn    func(ctx context.Context, id int64, username string, aboutMe *string) error
	updatePasswordFn   func(ctx context.Context, id int64, passwordHashed string) error
	updateLastSeenFn   func(ctx context.Context, id int64) error

	createCalls         []*model.User
	updatePasswordCalls []updatePasswordCall
}

type updatePasswordCall struct {
	UserID         int64
	PasswordHashed string
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id int64, username string, aboutMe *string) error {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, id, username, aboutMe)
	}
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHashed string) error {
	m.updatePasswordCalls = append(m.updatePasswordCalls, updatePasswordCall{
		UserID:         id,
		PasswordHashed: passwordHashed,
	})
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, id, passwordHashed)
	}
	return nil
}

func (m *mockUserRepository) UpdateLastSeen(ctx context.Context, id int64) error {
	if m.updateLastSeenFn != nil {
		return m.updateLastSeenFn(ctx, id)
	}
	return nil
}

type followCall struct {
	FollowerID int64
	FollowedID int64
}

type mockFollowRepository struct {
	followFn          func(ctx context.Context, followerID, followedID int64) (bool, error)
	unfollowFn        func(ctx context.Context, followerID, followedID int64) (bool, error)
	existsFn          func(ctx context.Context, followerID, followedID int64) (bool, error)
	getFollowedIDsFn  func(ctx context.Context, followerID int64) ([]int64, error)
	getFollowersFn    func(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	getFollowingFn    func(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error)
	countFollowersFn  func(ctx context.Context, userID int64) (int, error)
	countFollowingFn  func(ctx context.Context, userID int64) (int, error)
	checkFollowsFn    func(ctx context.Context, followerID int64, followedIDs []int64) (map[int64]bool, error)

	followCalls   []followCall
	unfollowCalls []followCall
}

func (m *mockFollowRepository) Follow(ctx context.Context, followerID, followedID int64) (bool, error) {
	m.followCalls = append(m.followCalls, followCall{followerID, followedID})
	if m.followFn != nil {
		return m.followFn(ctx, followerID, followedID)
	}
	return true, nil
}

func (m *mockFollowRepository) Unfollow(ctx context.Context, followerID, followedID int64) (bool, error) {
	m.unfollowCalls = append(m.unfollowCalls, followCall{followerID, followedID})
	if m.unfollowFn != nil {
		return m.unfollowFn(ctx, followerID, followedID)
	}
	return true, nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, followedID)
	}
	return false, nil
}

func (m *mockFollowRepository) GetFollowedIDs(ctx context.Context, followerID int64) ([]int64, error) {
	if m.getFollowedIDsFn != nil {
		return m.getFollowedIDsFn(ctx, followerID)
	}
	return nil, nil
}

func (m *mockFollowRepository) GetFollowers(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	if m.getFollowersFn != nil {
		return m.getFollowersFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockFollowRepository) GetFollowing(ctx context.Context, userID int64, limit, offset int) ([]model.UserSummary, error) {
	if m.getFollowingFn != nil {
		return m.getFollowingFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockFollowRepository) CountFollowers(ctx context.Context, userID int64) (int, error) {
	if m.countFollowersFn != nil {
		return m.countFollowersFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockFollowRepository) CountFollowing(ctx context.Context, userID int64) (int, error) {
	if m.countFollowingFn != nil {
		return m.countFollowingFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockFollowRepository) CheckFollows(ctx context.Context, followerID int64, followedIDs []int64) (map[int64]bool, error) {
	if m.checkFollowsFn != nil {
		return m.checkFollowsFn(ctx, followerID, followedIDs)
	}
	return make(map[int64]bool), nil
}

type mockPostRepository struct {
	createFn         func(ctx context.Context, userID int64, body string) (*model.Post, error)
	getByIDFn        func(ctx context.Context, postID int64) (*model.Post, error)
	listByAuthorsFn  func(ctx context.Context, authorIDs []int64, limit, offset int) ([]model.Post, error)
	countByAuthorsFn func(ctx context.Context, authorIDs []int64) (int, error)
	listAllFn        func(ctx context.Context, limit, offset int) ([]model.Post, error)
	countAllFn       func(ctx context.Context) (int, error)
}

func (m *mockPostRepository) Create(ctx context.Context, userID int64, body string) (*model.Post, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, body)
	}
	return &model.Post{ID: 1, UserID: userID, Body: body, CreatedAt: time.Now()}, nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) ListByAuthors(ctx context.Context, authorIDs []int64, limit, offset int) ([]model.Post, error) {
	if m.listByAuthorsFn != nil {
		return m.listByAuthorsFn(ctx, authorIDs, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) CountByAuthors(ctx context.Context, authorIDs []int64) (int, error) {
	if m.countByAuthorsFn != nil {
		return m.countByAuthorsFn(ctx, authorIDs)
	}
	return 0, nil
}

func (m *mockPostRepository) ListAll(ctx context.Context, limit, offset int) ([]model.Post, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) CountAll(ctx context.Context) (int, error) {
	if m.countAllFn != nil {
		return m.countAllFn(ctx)
	}
	return 0, nil
}

type mockRefreshTokenRepository struct {
	createFn           func(ctx context.Context, token *model.RefreshToken) error
	findByTokenHashFn  func(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	revokeFn           func(ctx context.Context, id string, replacedBy *string) error
	revokeAllForUserFn func(ctx context.Context, userID int64) error

	revokeAllCalls []int64
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	if m.createFn != nil {
		return m.createFn(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	if m.findByTokenHashFn != nil {
		return m.findByTokenHashFn(ctx, tokenHash)
	}
	return nil, model.ErrRefreshTokenNotFound
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, id string, replacedBy *string) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, id, replacedBy)
	}
	return nil
}

func (m *mockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	m.revokeAllCalls = append(m.revokeAllCalls, userID)
	if m.revokeAllForUserFn != nil {
		return m.revokeAllForUserFn(ctx, userID)
	}
	return nil
}

func (m *mockRefreshTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}

type sentMail struct {
	To       string
	Username string
	Token    string
}

type mockResetMailer struct {
	sent []sentMail
}

func (m *mockResetMailer) SendPasswordReset(to, username, token string) {
	m.sent = append(m.sent, sentMail{To: to, Username: username, Token: token})
}
