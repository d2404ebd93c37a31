package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	maxSlugLength = 50
	maxNameLength = 200
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugTaken        = errors.New("slug already in use")
)

// Category top-level catalog grouping.
type Category struct {
	ID          int       `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	Position    int       `json:"position" db:"position"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCategoryRequest category creation payload.
type CreateCategoryRequest struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
	IsActive    bool   `json:"is_active"`
}

// Validate checks the create payload.
func (r *CreateCategoryRequest) Validate() error {
	if err := validateSlug(r.Slug); err != nil {
		return err
	}
	return validateName(r.Name)
}

// UpdateCategoryRequest partial category update.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Position    *int    `json:"position,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Validate checks the update payload.
func (r *UpdateCategoryRequest) Validate() error {
	if r.Name == nil && r.Description == nil && r.Position == nil && r.IsActive == nil {
		return fmt.Errorf("at least one field must be provided")
	}
	if r.Name != nil {
		return validateName(*r.Name)
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" || len(slug) > maxSlugLength {
		return fmt.Errorf("slug must be 1-%d characters", maxSlugLength)
	}
	if strings.ContainsAny(slug, " \t") {
		return fmt.Errorf("slug must not contain whitespace")
	}
	return nil
}

func validateName(name string) error {
	if name == "" || len(name) > maxNameLength {
		return fmt.Errorf("name must be 1-%d characters", maxNameLength)
	}
	return nil
}
