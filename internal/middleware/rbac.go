package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/auth"
	"github.com/mskard-business-solutions/gogreen-backend/internal/middleware/errors"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// Permission represents a specific permission.
type Permission string

const (
	// Shared permissions
	PermViewCatalog    Permission = "view_catalog"
	PermViewOwnProfile Permission = "view_own_profile"

	// Editor permissions: editors have no direct-write path into the
	// catalog; their only mutation route is submitting a pending change.
	PermSubmitChange   Permission = "submit_change"
	PermViewOwnChanges Permission = "view_own_changes"

	// Admin permissions
	PermWriteCatalog   Permission = "write_catalog"
	PermReviewChanges  Permission = "review_changes"
	PermManageUsers    Permission = "manage_users"
	PermViewAuditTrail Permission = "view_audit_trail"
)

// RolePermissions defines permissions for each role.
var RolePermissions = map[string][]Permission{
	models.RoleEditor: {
		PermViewCatalog,
		PermViewOwnProfile,
		PermSubmitChange,
		PermViewOwnChanges,
	},
	models.RoleAdmin: {
		PermViewCatalog,
		PermViewOwnProfile,
		PermViewOwnChanges,
		PermWriteCatalog,
		PermReviewChanges,
		PermManageUsers,
		PermViewAuditTrail,
	},
}

// RequirePermission creates middleware gating the route on a permission.
// This is the route-level half of the role gate: which of the two write
// paths (direct apply vs. deferred approval) a request may even reach.
func RequirePermission(permission Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(UserContextKey).(*auth.Claims)
			if !ok {
				log.Error().
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("RBAC: user context not found - AuthMiddleware might be missing")

				panic(&errors.AuthError{
					Message:    "Authentication required",
					StatusCode: http.StatusUnauthorized,
				})
			}

			if !hasPermission(claims.Role, permission) {
				log.Warn().
					Int("user_id", claims.UserID).
					Str("role", claims.Role).
					Str("required_permission", string(permission)).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("RBAC: access denied")

				panic(&errors.RBACError{
					Message:    "You are not allowed to perform this action",
					StatusCode: http.StatusForbidden,
					Resource:   r.URL.Path,
					Action:     r.Method,
				})
			}

			next.ServeHTTP(w, r)
		})
	}
}

// hasPermission checks whether the role grants the permission.
func hasPermission(role string, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// RequireAdmin gates a route on catalog write access.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequirePermission(PermWriteCatalog)
}
