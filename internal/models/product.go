package models

import (
	"errors"
	"fmt"
	"time"
)

const (
	minPriceCents = 1
	maxPriceCents = 100_000_000_000
)

var ErrProductNotFound = errors.New("product not found")

// Product a sellable catalog item.
type Product struct {
	ID            int       `json:"id" db:"id"`
	SubcategoryID int       `json:"subcategory_id" db:"subcategory_id"`
	Slug          string    `json:"slug" db:"slug"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description,omitempty" db:"description"`
	PriceCents    int64     `json:"price_cents" db:"price_cents"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CreateProductRequest product creation payload.
type CreateProductRequest struct {
	SubcategoryID int    `json:"subcategory_id"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	PriceCents    int64  `json:"price_cents"`
	IsActive      bool   `json:"is_active"`
}

// Validate checks the create payload.
func (r *CreateProductRequest) Validate() error {
	if r.SubcategoryID <= 0 {
		return fmt.Errorf("subcategory_id is required")
	}
	if err := validateSlug(r.Slug); err != nil {
		return err
	}
	if err := validateName(r.Name); err != nil {
		return err
	}
	return validatePrice(r.PriceCents)
}

// UpdateProductRequest partial product update.
type UpdateProductRequest struct {
	SubcategoryID *int    `json:"subcategory_id,omitempty"`
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	PriceCents    *int64  `json:"price_cents,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// Validate checks the update payload.
func (r *UpdateProductRequest) Validate() error {
	if r.SubcategoryID == nil && r.Name == nil && r.Description == nil && r.PriceCents == nil && r.IsActive == nil {
		return fmt.Errorf("at least one field must be provided")
	}
	if r.Name != nil {
		if err := validateName(*r.Name); err != nil {
			return err
		}
	}
	if r.PriceCents != nil {
		return validatePrice(*r.PriceCents)
	}
	return nil
}

func validatePrice(cents int64) error {
	if cents < minPriceCents || cents > maxPriceCents {
		return fmt.Errorf("price_cents must be between %d and %d", minPriceCents, maxPriceCents)
	}
	return nil
}
