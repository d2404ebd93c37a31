package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// CategoryRepository category database operations.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new repository.
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create stores a new category. Slug uniqueness is enforced by the unique
// index; a violation surfaces as models.ErrSlugTaken.
func (r *CategoryRepository) Create(req *models.CreateCategoryRequest) (*models.Category, error) {
	query := `
		INSERT INTO categories (slug, name, description, position, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, slug, name, description, position, is_active, created_at, updated_at
	`

	var category models.Category
	err := r.db.QueryRow(query, req.Slug, req.Name, req.Description, req.Position, req.IsActive).Scan(
		&category.ID,
		&category.Slug,
		&category.Name,
		&category.Description,
		&category.Position,
		&category.IsActive,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrSlugTaken
		}
		return nil, fmt.Errorf("creating category: %w", err)
	}

	return &category, nil
}

// GetByID finds a category by id.
func (r *CategoryRepository) GetByID(id int) (*models.Category, error) {
	query := `
		SELECT id, slug, name, description, position, is_active, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	var category models.Category
	err := r.db.QueryRow(query, id).Scan(
		&category.ID,
		&category.Slug,
		&category.Name,
		&category.Description,
		&category.Position,
		&category.IsActive,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("querying category: %w", err)
	}

	return &category, nil
}

// Update applies a partial update and returns the new row.
func (r *CategoryRepository) Update(id int, req *models.UpdateCategoryRequest) (*models.Category, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
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
		UPDATE categories SET %s
		WHERE id = $%d
		RETURNING id, slug, name, description, position, is_active, created_at, updated_at
	`, strings.Join(sets, ", "), argPos)
	args = append(args, id)

	var category models.Category
	err := r.db.QueryRow(query, args...).Scan(
		&category.ID,
		&category.Slug,
		&category.Name,
		&category.Description,
		&category.Position,
		&category.IsActive,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("updating category: %w", err)
	}

	return &category, nil
}

// Delete removes a category.
func (r *CategoryRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if affected == 0 {
		return models.ErrCategoryNotFound
	}

	return nil
}

// GetAll lists categories ordered by position.
func (r *CategoryRepository) GetAll(limit, offset int) ([]*models.Category, error) {
	query := `
		SELECT id, slug, name, description, position, is_active, created_at, updated_at
		FROM categories
		ORDER BY position ASC, created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		err := rows.Scan(
			&category.ID,
			&category.Slug,
			&category.Name,
			&category.Description,
			&category.Position,
			&category.IsActive,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}
