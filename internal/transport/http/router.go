package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"microblog/internal/handler"
	"microblog/internal/httputil"
	"microblog/internal/service"
	authmw "microblog/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler   *handler.AuthHandler
	UserHandler   *handler.UserHandler
	FollowHandler *handler.FollowHandler
	FeedHandler   *handler.FeedHandler
	PostHandler   *handler.PostHandler
	UserService   *service.UserService
	SecretKey     string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/refresh", cfg.AuthHandler.Refresh)
		r.Post("/logout", cfg.AuthHandler.Logout)
		r.Post("/reset_password", cfg.AuthHandler.RequestPasswordReset)
		r.Post("/reset_password/{token}", cfg.AuthHandler.ResetPassword)
	})

	// Public user endpoints with optional authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.OptionalAuthMiddleware(cfg.SecretKey))

		r.Get("/users/{username}", cfg.UserHandler.GetProfile)
		r.Get("/users/{username}/posts", cfg.FeedHandler.GetUserPosts)
		r.Get("/users/{username}/followers", cfg.FollowHandler.GetFollowers)
		r.Get("/users/{username}/following", cfg.FollowHandler.GetFollowing)
		r.Get("/posts/{id}", cfg.PostHandler.GetByID)
	})

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.SecretKey))
		r.Use(authmw.LastSeenMiddleware(cfg.UserService))

		r.Get("/me", cfg.AuthHandler.Me)
		r.Put("/me", cfg.UserHandler.UpdateProfile)
		r.Post("/auth/logout-all", cfg.AuthHandler.LogoutAll)

		r.Post("/users/{username}/follow", cfg.FollowHandler.Follow)
		r.Delete("/users/{username}/follow", cfg.FollowHandler.Unfollow)

		r.Get("/feed", cfg.FeedHandler.GetFeed)
		r.Get("/explore", cfg.FeedHandler.Explore)

		r.Post("/posts", cfg.PostHandler.Create)
	})

	return r
}
