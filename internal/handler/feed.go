package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

type FeedHandler struct {
	feedService *service.FeedService
	perPage     int
}

// NewFeedHandler wires the feed endpoints. perPage is the process-wide page
// size from configuration.
func NewFeedHandler(feedService *service.FeedService, perPage int) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		perPage:     perPage,
	}
}

// GetFeed returns one page of the viewer's followed-posts feed
// GET /feed?page=N (one-indexed, default 1)
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	feed, err := h.feedService.FollowedPosts(r.Context(), userID, pageParam(r), h.perPage)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] GetFeed handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to get feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, feed)
}

// Explore returns one page over all posts regardless of follow relationship
// GET /explore?page=N
func (h *FeedHandler) Explore(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feedService.Explore(r.Context(), pageParam(r), h.perPage)
	if err != nil {
		log.Printf("[ERROR] Explore handler: %v", err)
		httputil.WriteInternalError(w, "Failed to get explore feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, feed)
}

// GetUserPosts returns one page of the named user's own posts
// GET /users/{username}/posts?page=N
func (h *FeedHandler) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	feed, err := h.feedService.UserPosts(r.Context(), username, pageParam(r), h.perPage)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] GetUserPosts handler: %v", err)
		httputil.WriteInternalError(w, "Failed to get user posts")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, feed)
}
