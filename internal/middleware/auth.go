package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/auth"
)

// ContextKey context key type for middleware values.
type ContextKey string

const UserContextKey ContextKey = "user"

// AuthMiddleware validates the bearer token and stores its claims in the
// request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Msg("Missing Authorization header")
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			log.Warn().
				Str("path", r.URL.Path).
				Msg("Invalid Authorization format")
			http.Error(w, "Authorization format: 'Bearer <token>'", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ValidateToken(tokenParts[1])
		if err != nil {
			log.Warn().
				Err(err).
				Str("path", r.URL.Path).
				Msg("Token validation failed")
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		r = r.WithContext(ctx)

		log.Debug().
			Int("user_id", claims.UserID).
			Str("role", claims.Role).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg("🔐 Authentication successful")

		next.ServeHTTP(w, r)
	})
}
