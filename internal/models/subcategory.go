package models

import (
	"errors"
	"fmt"
	"time"
)

var ErrSubcategoryNotFound = errors.New("subcategory not found")

// Subcategory second-level catalog grouping under a category.
type Subcategory struct {
	ID          int       `json:"id" db:"id"`
	CategoryID  int       `json:"category_id" db:"category_id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	Position    int       `json:"position" db:"position"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateSubcategoryRequest subcategory creation payload.
type CreateSubcategoryRequest struct {
	CategoryID  int    `json:"category_id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
	IsActive    bool   `json:"is_active"`
}

// Validate checks the create payload.
func (r *CreateSubcategoryRequest) Validate() error {
	if r.CategoryID <= 0 {
		return fmt.Errorf("category_id is required")
	}
	if err := validateSlug(r.Slug); err != nil {
		return err
	}
	return validateName(r.Name)
}

// UpdateSubcategoryRequest partial subcategory update.
type UpdateSubcategoryRequest struct {
	CategoryID  *int    `json:"category_id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Position    *int    `json:"position,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Validate checks the update payload.
func (r *UpdateSubcategoryRequest) Validate() error {
	if r.CategoryID == nil && r.Name == nil && r.Description == nil && r.Position == nil && r.IsActive == nil {
		return fmt.Errorf("at least one field must be provided")
	}
	if r.Name != nil {
		return validateName(*r.Name)
	}
	return nil
}
