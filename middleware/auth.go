package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-storefront/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// AuthMiddleware verifies JWT tokens and attaches user information to the context
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.JSONError(w, http.StatusUnauthorized, "Authorization header missing", nil)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.JSONError(w, http.StatusUnauthorized, "Invalid Authorization header format", nil)
			return
		}

		claims, err := utils.ParseJWT(parts[1])
		if err != nil {
			utils.JSONError(w, http.StatusUnauthorized, "Invalid token", nil)
			return
		}

		// Attach user information to the request context
		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware ensures that the user has admin privileges
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
		if !ok || claims.Role != utils.RoleAdmin {
			utils.JSONError(w, http.StatusForbidden, "Forbidden: Admins only", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
