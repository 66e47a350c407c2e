package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"microblog/internal/httputil"
	"microblog/internal/model"
	"microblog/internal/service"
	"microblog/internal/transport/http/middleware"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService  *service.UserService
	authService  *service.AuthService
	resetService *service.PasswordResetService
}

// NewAuthHandler wires dependencies for authentication endpoints.
func NewAuthHandler(
	userService *service.UserService,
	authService *service.AuthService,
	resetService *service.PasswordResetService,
) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		authService:  authService,
		resetService: resetService,
	}
}

// Register handles user registration
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, "Username already exists")
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteConflict(w, "Email already exists")
		default:
			log.Printf("[ERROR] Register handler: %v", err)
			httputil.WriteInternalError(w, "Failed to register user")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, user)
}

// Login handles user login
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		httputil.WriteUnauthorized(w, "Invalid username or password")
		return
	}

	tokens, err := h.authService.GenerateTokenPair(r.Context(), user.ID)
	if err != nil {
		log.Printf("[ERROR] Login handler: user=%d err=%v", user.ID, err)
		httputil.WriteInternalError(w, "Failed to create session")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user":   user,
		"tokens": tokens,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh rotates a refresh token into a new token pair
// POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	tokens, _, err := h.authService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrRefreshTokenExpired):
			httputil.WriteUnauthorizedWithCode(w, model.CodeTokenExpired, "Refresh token has expired")
		case errors.Is(err, model.ErrRefreshTokenNotFound), errors.Is(err, model.ErrRefreshTokenReused):
			httputil.WriteUnauthorizedWithCode(w, model.CodeTokenInvalid, "Invalid refresh token")
		default:
			log.Printf("[ERROR] Refresh handler: %v", err)
			httputil.WriteInternalError(w, "Failed to refresh session")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, tokens)
}

// Logout revokes the presented refresh token
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	// Revoking an unknown token is a no-op from the client's perspective.
	if err := h.authService.RevokeRefreshToken(r.Context(), req.RefreshToken); err != nil &&
		!errors.Is(err, model.ErrRefreshTokenNotFound) {
		log.Printf("[ERROR] Logout handler: %v", err)
		httputil.WriteInternalError(w, "Failed to log out")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// LogoutAll revokes every session of the authenticated user
// POST /auth/logout-all
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := h.authService.RevokeAllUserTokens(r.Context(), userID); err != nil {
		log.Printf("[ERROR] LogoutAll handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to log out")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out everywhere"})
}

// Me returns the authenticated user's own record
// GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Me handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, "Failed to load user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

type resetRequestBody struct {
	Email string `json:"email" validate:"required,email"`
}

// RequestPasswordReset mails a reset link to the given address
// POST /auth/reset_password
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.resetService.RequestReset(r.Context(), req.Email); err != nil {
		log.Printf("[ERROR] RequestPasswordReset handler: %v", err)
		httputil.WriteInternalError(w, "Failed to process reset request")
		return
	}

	// Same response whether or not the email is registered.
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Check your email for the instructions to reset your password",
	})
}

type resetPasswordBody struct {
	Password string `json:"password" validate:"required,min=6"`
}

// ResetPassword exchanges a valid reset token for a new password
// POST /auth/reset_password/{token}
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req resetPasswordBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.resetService.ResetPassword(r.Context(), token, req.Password); err != nil {
		if errors.Is(err, model.ErrInvalidResetToken) {
			httputil.WriteBadRequestWithCode(w, model.CodeTokenInvalid, "Invalid or expired reset token")
			return
		}
		log.Printf("[ERROR] ResetPassword handler: %v", err)
		httputil.WriteInternalError(w, "Failed to reset password")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Your password has been reset"})
}
