package middleware

import (
	"log"
	"net/http"

	"microblog/internal/service"
)

// LastSeenMiddleware refreshes the authenticated user's last-seen timestamp
// on every request, before the handler runs. Failures are logged and never
// block the request.
func LastSeenMiddleware(userService *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := GetUserIDFromContext(r.Context()); ok {
				if err := userService.TouchLastSeen(r.Context(), userID); err != nil {
					log.Printf("[LastSeen] Failed to update last seen for user=%d: %v", userID, err)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
