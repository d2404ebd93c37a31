package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/auth"
	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// UserHandler identity endpoints: registration, login/logout, profile, and
// the admin-only account management surface.
type UserHandler struct {
	userService interfaces.UserServiceInterface
	audit       interfaces.AuditServiceInterface
}

// NewUserHandler creates a new handler.
func NewUserHandler(userService interfaces.UserServiceInterface, audit interfaces.AuditServiceInterface) *UserHandler {
	return &UserHandler{userService: userService, audit: audit}
}

// Register creates an editor account.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("❌ Registration validation failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.userService.Register(&req)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		log.Error().Err(err).Msg("Registration failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusCreated, user)

	log.Info().Str("email", user.Email).Str("role", user.Role).Msg("✅ New user registered")
}

// Login verifies credentials, returns a token and records the login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("❌ Login validation failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.userService.Login(&req)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("❌ Login rejected")
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	meta := requestMeta(r)
	h.audit.Record(&models.AuditLog{
		UserID:     &resp.User.ID,
		Action:     models.AuditActionLogin,
		EntityType: "user",
		EntityID:   &resp.User.ID,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	respondJSON(w, http.StatusOK, resp)

	log.Info().Str("email", resp.User.Email).Str("role", resp.User.Role).Msg("🔐 User logged in")
}

// Refresh exchanges an expired token for a fresh one.
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	newToken, expiresIn, err := auth.RefreshToken(req.Token)
	if err != nil {
		log.Warn().Err(err).Msg("❌ Token refresh rejected")
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	respondJSON(w, http.StatusOK, models.RefreshResponse{
		Success:   true,
		Token:     newToken,
		ExpiresIn: expiresIn,
		Message:   "token refreshed",
	})
}

// Logout records the logout. Tokens are stateless, so this is purely an
// audit trail event.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	meta := requestMeta(r)
	h.audit.Record(&models.AuditLog{
		UserID:     &claims.UserID,
		Action:     models.AuditActionLogout,
		EntityType: "user",
		EntityID:   &claims.UserID,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	respondJSON(w, http.StatusOK, successResponse(nil, "logged out"))
}

// GetProfile returns the authenticated user's own record.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		log.Error().Err(err).Int("user_id", claims.UserID).Msg("Profile lookup failed")
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// GetAllUsers lists accounts.
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	users, totalCount, err := h.userService.GetAllUsers(limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Listing users failed")
		http.Error(w, "could not list users", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(map[string]interface{}{
		"users":       users,
		"total_count": totalCount,
		"limit":       limit,
		"offset":      offset,
	}, "users listed"))
}

// GetUserByID returns a single account.
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(user, "user found"))
}

// UpdateUser applies a partial account update.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	userID, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updatedUser, err := h.userService.UpdateUser(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUserNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrAdminProtected):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, models.ErrEmailTaken):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Error().Err(err).Int("user_id", userID).Msg("User update failed")
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	meta := requestMeta(r)
	h.audit.Record(&models.AuditLog{
		UserID:     &claims.UserID,
		Action:     models.AuditActionUpdate,
		EntityType: "user",
		EntityID:   &updatedUser.ID,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	respondJSON(w, http.StatusOK, successResponse(updatedUser, "user updated"))

	log.Info().Int("user_id", userID).Str("updated_by", claims.Email).Msg("✅ User updated")
}

// DeleteUser removes an account.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	userID, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		switch {
		case errors.Is(err, models.ErrUserNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrAdminProtected):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			log.Error().Err(err).Int("user_id", userID).Msg("User delete failed")
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	meta := requestMeta(r)
	h.audit.Record(&models.AuditLog{
		UserID:     &claims.UserID,
		Action:     models.AuditActionDelete,
		EntityType: "user",
		EntityID:   &userID,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	respondJSON(w, http.StatusOK, successResponse(nil, "user deleted"))

	log.Info().Int("user_id", userID).Str("deleted_by", claims.Email).Msg("✅ User deleted")
}
