package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
	userService   *service.UserService
	perPage       int
}

func NewFollowHandler(followService *service.FollowService, userService *service.UserService, perPage int) *FollowHandler {
	return &FollowHandler{
		followService: followService,
		userService:   userService,
		perPage:       perPage,
	}
}

// Follow adds a follow edge from the viewer to the named user
// POST /users/{username}/follow
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	followerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	followed, err := h.userService.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Follow handler: %v", err)
		httputil.WriteInternalError(w, "Failed to follow user")
		return
	}

	if err := h.followService.Follow(r.Context(), followerID, followed.ID); err != nil {
		switch {
		case errors.Is(err, model.ErrCannotFollowSelf):
			httputil.WriteBadRequest(w, "You cannot follow yourself")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[ERROR] Follow handler: %v", err)
			httputil.WriteInternalError(w, "Failed to follow user")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "You are following " + followed.Username,
	})
}

// Unfollow removes the follow edge from the viewer to the named user
// DELETE /users/{username}/follow
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	followerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	followed, err := h.userService.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Unfollow handler: %v", err)
		httputil.WriteInternalError(w, "Failed to unfollow user")
		return
	}

	if err := h.followService.Unfollow(r.Context(), followerID, followed.ID); err != nil {
		log.Printf("[ERROR] Unfollow handler: %v", err)
		httputil.WriteInternalError(w, "Failed to unfollow user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "You are not following " + followed.Username,
	})
}

// GetFollowers lists users following the named user
// GET /users/{username}/followers
func (h *FollowHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	h.listEdges(w, r, h.followService.GetFollowers)
}

// GetFollowing lists users the named user follows
// GET /users/{username}/following
func (h *FollowHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	h.listEdges(w, r, h.followService.GetFollowing)
}

func (h *FollowHandler) listEdges(
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, userID int64, page, perPage int, viewerID *int64) (*model.UserPage, error),
) {
	user, err := h.userService.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] listEdges handler: %v", err)
		httputil.WriteInternalError(w, "Failed to load users")
		return
	}

	var viewerID *int64
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		viewerID = &id
	}

	page, err := list(r.Context(), user.ID, pageParam(r), h.perPage, viewerID)
	if err != nil {
		log.Printf("[ERROR] listEdges handler: %v", err)
		httputil.WriteInternalError(w, "Failed to load users")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, page)
}
