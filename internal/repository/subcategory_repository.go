package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// SubcategoryRepository subcategory database operations.
type SubcategoryRepository struct {
	db *sql.DB
}

// NewSubcategoryRepository creates a new repository.
func NewSubcategoryRepository(db *sql.DB) *SubcategoryRepository {
	return &SubcategoryRepository{db: db}
}

// Create stores a new subcategory.
func (r *SubcategoryRepository) Create(req *models.CreateSubcategoryRequest) (*models.Subcategory, error) {
	query := `
		INSERT INTO subcategories (category_id, slug, name, description, position, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, category_id, slug, name, description, position, is_active, created_at, updated_at
	`

	var sub models.Subcategory
	err := r.db.QueryRow(query, req.CategoryID, req.Slug, req.Name, req.Description, req.Position, req.IsActive).Scan(
		&sub.ID,
		&sub.CategoryID,
		&sub.Slug,
		&sub.Name,
		&sub.Description,
		&sub.Position,
		&sub.IsActive,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrSlugTaken
		}
		return nil, fmt.Errorf("creating subcategory: %w", err)
	}

	return &sub, nil
}

// GetByID finds a subcategory by id.
func (r *SubcategoryRepository) GetByID(id int) (*models.Subcategory, error) {
	query := `
		SELECT id, category_id, slug, name, description, position, is_active, created_at, updated_at
		FROM subcategories
		WHERE id = $1
	`

	var sub models.Subcategory
	err := r.db.QueryRow(query, id).Scan(
		&sub.ID,
		&sub.CategoryID,
		&sub.Slug,
		&sub.Name,
		&sub.Description,
		&sub.Position,
		&sub.IsActive,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrSubcategoryNotFound
		}
		return nil, fmt.Errorf("querying subcategory: %w", err)
	}

	return &sub, nil
}

// Update applies a partial update and returns the new row.
func (r *SubcategoryRepository) Update(id int, req *models.UpdateSubcategoryRequest) (*models.Subcategory, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.CategoryID != nil {
		addSet("category_id", *req.CategoryID)
	}
	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.Position != nil {
		addSet("position", *req.Position)
	}
	if req.IsActive != nil {
		addSet("is_active", *req.IsActive)
	}

	query := fmt.Sprintf(`
		UPDATE subcategories SET %s
		WHERE id = $%d
		RETURNING id, category_id, slug, name, description, position, is_active, created_at, updated_at
	`, strings.Join(sets, ", "), argPos)
	args = append(args, id)

	var sub models.Subcategory
	err := r.db.QueryRow(query, args...).Scan(
		&sub.ID,
		&sub.CategoryID,
		&sub.Slug,
		&sub.Name,
		&sub.Description,
		&sub.Position,
		&sub.IsActive,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrSubcategoryNotFound
		}
		return nil, fmt.Errorf("updating subcategory: %w", err)
	}

	return &sub, nil
}

// Delete removes a subcategory.
func (r *SubcategoryRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting subcategory: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if affected == 0 {
		return models.ErrSubcategoryNotFound
	}

	return nil
}

// GetByCategory lists subcategories under a category ordered by position.
func (r *SubcategoryRepository) GetByCategory(categoryID int, limit, offset int) ([]*models.Subcategory, error) {
	query := `
		SELECT id, category_id, slug, name, description, position, is_active, created_at, updated_at
		FROM subcategories
		WHERE category_id = $1
		ORDER BY position ASC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing subcategories: %w", err)
	}
	defer rows.Close()

	var subs []*models.Subcategory
	for rows.Next() {
		var sub models.Subcategory
		err := rows.Scan(
			&sub.ID,
			&sub.CategoryID,
			&sub.Slug,
			&sub.Name,
			&sub.Description,
			&sub.Position,
			&sub.IsActive,
			&sub.CreatedAt,
			&sub.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning subcategory row: %w", err)
		}
		subs = append(subs, &sub)
	}

	return subs, rows.Err()
}
