package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Roles known to the system. Admins apply catalog changes directly;
// editors route every mutation through the approval workflow.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already in use")
	ErrAdminProtected = errors.New("admin accounts cannot be demoted, deactivated or deleted")
)

// User represents an authenticated identity.
type User struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Role      string    `json:"role" db:"role"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateUserRequest registration / admin user creation payload.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks the create payload before it reaches the service layer.
func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if r.Role != "" && r.Role != RoleAdmin && r.Role != RoleEditor {
		return fmt.Errorf("unknown role: %s", r.Role)
	}
	return nil
}

// UpdateUserRequest partial user update; nil fields are left untouched.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Validate checks the update payload.
func (r *UpdateUserRequest) Validate() error {
	if r.Name == nil && r.Email == nil && r.Password == nil && r.Role == nil && r.IsActive == nil {
		return fmt.Errorf("at least one field must be provided")
	}
	if r.Email != nil && !strings.Contains(*r.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if r.Password != nil && len(*r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if r.Role != nil && *r.Role != RoleAdmin && *r.Role != RoleEditor {
		return fmt.Errorf("unknown role: %s", *r.Role)
	}
	return nil
}

// LoginRequest login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login payload.
func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	return nil
}

// LoginResponse login result with the signed token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// RefreshResponse token refresh result.
type RefreshResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	Message   string `json:"message"`
}
