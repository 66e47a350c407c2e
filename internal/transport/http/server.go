package http

import (
	"fmt"
	"log"
	stdhttp "net/http"
	"time"

	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/handler"
	"microblog/internal/mailer"
	"microblog/internal/repository"
	"microblog/internal/service"
)

// Run loads configuration, wires every layer together and serves HTTP until
// the process exits.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Services
	userService := service.NewUserService(userRepo, followRepo)
	followService := service.NewFollowService(followRepo, userRepo)
	feedService := service.NewFeedService(postRepo, followRepo, userRepo)
	postService := service.NewPostService(postRepo, userRepo)
	authService := service.NewAuthService(refreshTokenRepo, cfg)
	resetTokens := service.NewResetTokenService(cfg.SecretKey)
	resetService := service.NewPasswordResetService(
		resetTokens,
		userRepo,
		refreshTokenRepo,
		mailer.New(cfg),
		time.Duration(cfg.ResetTokenMaxAge)*time.Second,
	)

	// Handlers
	router := NewRouter(RouterConfig{
		AuthHandler:   handler.NewAuthHandler(userService, authService, resetService),
		UserHandler:   handler.NewUserHandler(userService),
		FollowHandler: handler.NewFollowHandler(followService, userService, cfg.PostsPerPage),
		FeedHandler:   handler.NewFeedHandler(feedService, cfg.PostsPerPage),
		PostHandler:   handler.NewPostHandler(postService),
		UserService:   userService,
		SecretKey:     cfg.SecretKey,
	})

	server := &stdhttp.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on :%s", cfg.ServerPort)
	return server.ListenAndServe()
}
