package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"microblog/internal/model"
)

// fakePostStore backs the feed tests with an in-memory post table that honors
// the same ordering contract as the SQL implementation: created_at descending,
// ties broken by descending id.
type fakePostStore struct {
	posts []model.Post
}

func (f *fakePostStore) byAuthors(authorIDs []int64) []model.Post {
	allowed := make(map[int64]bool, len(authorIDs))
	for _, id := range authorIDs {
		allowed[id] = true
	}

	var matched []model.Post
	for _, p := range f.posts {
		if allowed[p.UserID] {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return matched
}

func page(posts []model.Post, limit, offset int) []model.Post {
	if offset >= len(posts) {
		return nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}

func (f *fakePostStore) repo() *mockPostRepository {
	return &mockPostRepository{
		listByAuthorsFn: func(ctx context.Context, authorIDs []int64, limit, offset int) ([]model.Post, error) {
			return page(f.byAuthors(authorIDs), limit, offset), nil
		},
		countByAuthorsFn: func(ctx context.Context, authorIDs []int64) (int, error) {
			return len(f.byAuthors(authorIDs)), nil
		},
		listAllFn: func(ctx context.Context, limit, offset int) ([]model.Post, error) {
			all := f.byAuthors(authorIDsOf(f.posts))
			return page(all, limit, offset), nil
		},
		countAllFn: func(ctx context.Context) (int, error) {
			return len(f.posts), nil
		},
	}
}

func authorIDsOf(posts []model.Post) []int64 {
	var ids []int64
	for _, p := range posts {
		ids = append(ids, p.UserID)
	}
	return ids
}

func feedServiceWith(store *fakePostStore, follows map[int64][]int64) *FeedService {
	followRepo := &mockFollowRepository{
		getFollowedIDsFn: func(ctx context.Context, followerID int64) ([]int64, error) {
			return follows[followerID], nil
		},
	}
	userRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			names := map[string]int64{"john": 1, "susan": 2, "mary": 3, "david": 4}
			if id, ok := names[username]; ok {
				return &model.User{ID: id, Username: username}, nil
			}
			return nil, model.ErrUserNotFound
		},
	}
	return NewFeedService(store.repo(), followRepo, userRepo)
}

func postAt(id, userID int64, minutesAgo int) model.Post {
	return model.Post{
		ID:        id,
		UserID:    userID,
		CreatedAt: time.Now().Add(-time.Duration(minutesAgo) * time.Minute),
	}
}

// The classic four-user scenario: each user's feed holds their own posts plus
// those of everyone they follow, newest first, and nothing else.
func TestFeedService_FollowedPosts(t *testing.T) {
	store := &fakePostStore{posts: []model.Post{
		postAt(1, 1, 1), // john, newest
		postAt(2, 2, 4), // susan, oldest
		postAt(3, 3, 3), // mary
		postAt(4, 4, 2), // david
	}}

	// john follows susan and david; susan follows mary; mary follows david.
	follows := map[int64][]int64{
		1: {2, 4},
		2: {3},
		3: {4},
	}
	svc := feedServiceWith(store, follows)

	tests := []struct {
		name     string
		viewerID int64
		wantIDs  []int64
	}{
		{name: "john sees own, susan's, david's", viewerID: 1, wantIDs: []int64{1, 4, 2}},
		{name: "susan sees own and mary's", viewerID: 2, wantIDs: []int64{3, 2}},
		{name: "mary sees own and david's", viewerID: 3, wantIDs: []int64{4, 3}},
		{name: "david follows nobody, sees only own", viewerID: 4, wantIDs: []int64{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed, err := svc.FollowedPosts(context.Background(), tt.viewerID, 1, 25)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertPostIDs(t, feed.Posts, tt.wantIDs)
		})
	}
}

func TestFeedService_FollowedPosts_ViewerNotFound(t *testing.T) {
	svc := NewFeedService(&mockPostRepository{}, &mockFollowRepository{}, &mockUserRepository{})

	_, err := svc.FollowedPosts(context.Background(), 999, 1, 25)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}

// Simultaneous posts must still order deterministically: descending id breaks
// the created_at tie.
func TestFeedService_OrderingTieBreak(t *testing.T) {
	now := time.Now()
	store := &fakePostStore{posts: []model.Post{
		{ID: 1, UserID: 1, CreatedAt: now},
		{ID: 3, UserID: 1, CreatedAt: now},
		{ID: 2, UserID: 1, CreatedAt: now},
	}}
	svc := feedServiceWith(store, nil)

	feed, err := svc.FollowedPosts(context.Background(), 1, 1, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPostIDs(t, feed.Posts, []int64{3, 2, 1})
}

// Walking the feed page by page must visit every post exactly once, in order.
func TestFeedService_PaginationConcatenation(t *testing.T) {
	store := &fakePostStore{}
	for i := 1; i <= 7; i++ {
		store.posts = append(store.posts, postAt(int64(i), 1, 100-i))
	}
	svc := feedServiceWith(store, nil)
	ctx := context.Background()

	const perPage = 3
	var collected []int64
	for pageNum := 1; ; pageNum++ {
		feed, err := svc.FollowedPosts(ctx, 1, pageNum, perPage)
		if err != nil {
			t.Fatalf("page %d: %v", pageNum, err)
		}

		if feed.HasPrev != (pageNum > 1) {
			t.Errorf("page %d: has_prev = %v", pageNum, feed.HasPrev)
		}

		for _, p := range feed.Posts {
			collected = append(collected, p.ID)
		}
		if !feed.HasNext {
			if len(feed.Posts) == 0 {
				t.Errorf("last page %d is empty", pageNum)
			}
			break
		}
	}

	assertIDs(t, collected, []int64{7, 6, 5, 4, 3, 2, 1})
}

func TestFeedService_PageBeyondEnd(t *testing.T) {
	store := &fakePostStore{posts: []model.Post{postAt(1, 1, 1)}}
	svc := feedServiceWith(store, nil)

	feed, err := svc.FollowedPosts(context.Background(), 1, 2, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(feed.Posts) != 0 {
		t.Errorf("got %d posts past the end, want 0", len(feed.Posts))
	}
	if feed.Posts == nil {
		t.Error("posts should be an empty slice, not nil")
	}
	if feed.HasNext {
		t.Error("has_next should be false past the end")
	}
	if !feed.HasPrev {
		t.Error("has_prev should be true on page 2")
	}
}

func TestFeedService_PageClampedToOne(t *testing.T) {
	store := &fakePostStore{posts: []model.Post{postAt(1, 1, 1)}}
	svc := feedServiceWith(store, nil)

	feed, err := svc.FollowedPosts(context.Background(), 1, 0, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if feed.Page != 1 {
		t.Errorf("page = %d, want 1", feed.Page)
	}
	assertPostIDs(t, feed.Posts, []int64{1})
}

// After an unfollow the former followee's posts drop out of the feed but stay
// visible in explore.
func TestFeedService_UnfollowRemovesPostsFromFeed(t *testing.T) {
	store := &fakePostStore{posts: []model.Post{
		postAt(1, 1, 2), // alice
		postAt(2, 2, 1), // bob
	}}

	follows := map[int64][]int64{1: {2}}
	svc := feedServiceWith(store, follows)
	ctx := context.Background()

	feed, err := svc.FollowedPosts(ctx, 1, 1, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPostIDs(t, feed.Posts, []int64{2, 1})

	delete(follows, 1)

	feed, err = svc.FollowedPosts(ctx, 1, 1, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPostIDs(t, feed.Posts, []int64{1})

	explore, err := svc.Explore(ctx, 1, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPostIDs(t, explore.Posts, []int64{2, 1})
}

func TestFeedService_UserPosts(t *testing.T) {
	store := &fakePostStore{posts: []model.Post{
		postAt(1, 1, 3),
		postAt(2, 2, 2),
		postAt(3, 1, 1),
	}}
	svc := feedServiceWith(store, nil)

	feed, err := svc.UserPosts(context.Background(), "john", 1, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPostIDs(t, feed.Posts, []int64{3, 1})

	if _, err := svc.UserPosts(context.Background(), "nobody", 1, 25); !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}

func assertPostIDs(t *testing.T, posts []model.Post, want []int64) {
	t.Helper()
	got := make([]int64, len(posts))
	for i, p := range posts {
		got[i] = p.ID
	}
	assertIDs(t, got, want)
}

func assertIDs(t *testing.T, got, want []int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got ids %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got ids %v, want %v", got, want)
		}
	}
}
