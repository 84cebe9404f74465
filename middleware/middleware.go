package middleware

import (
	"net/http"
	"strings"

	"github.com/kos3l/manageable-kanban-api/logging"
	"github.com/kos3l/manageable-kanban-api/services"
	"github.com/kos3l/manageable-kanban-api/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JWTAuthMiddleware validates the access token and places the caller's user
// id on the request context for every protected route.
func JWTAuthMiddleware(jwtService *services.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
				http.Error(w, "Authorization header missing", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			userIDHex, err := jwtService.ValidateAccessToken(tokenStr)
			if err != nil {
				logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			userID, err := primitive.ObjectIDFromHex(userIDHex)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithUserID(r.Context(), userID)))
		})
	}
}
