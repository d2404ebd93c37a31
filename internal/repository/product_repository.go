package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// ProductRepository product database operations.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new repository.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create stores a new product.
func (r *ProductRepository) Create(req *models.CreateProductRequest) (*models.Product, error) {
	query := `
		INSERT INTO products (subcategory_id, slug, name, description, price_cents, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, subcategory_id, slug, name, description, price_cents, is_active, created_at, updated_at
	`

	var product models.Product
	err := r.db.QueryRow(query, req.SubcategoryID, req.Slug, req.Name, req.Description, req.PriceCents, req.IsActive).Scan(
		&product.ID,
		&product.SubcategoryID,
		&product.Slug,
		&product.Name,
		&product.Description,
		&product.PriceCents,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrSlugTaken
		}
		return nil, fmt.Errorf("creating product: %w", err)
	}

	return &product, nil
}

// GetByID finds a product by id.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	query := `
		SELECT id, subcategory_id, slug, name, description, price_cents, is_active, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product models.Product
	err := r.db.QueryRow(query, id).Scan(
		&product.ID,
		&product.SubcategoryID,
		&product.Slug,
		&product.Name,
		&product.Description,
		&product.PriceCents,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("querying product: %w", err)
	}

	return &product, nil
}

// Update applies a partial update and returns the new row.
func (r *ProductRepository) Update(id int, req *models.UpdateProductRequest) (*models.Product, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.SubcategoryID != nil {
		addSet("subcategory_id", *req.SubcategoryID)
	}
	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.PriceCents != nil {
		addSet("price_cents", *req.PriceCents)
	}
	if req.IsActive != nil {
		addSet("is_active", *req.IsActive)
	}

	query := fmt.Sprintf(`
		UPDATE products SET %s
		WHERE id = $%d
		RETURNING id, subcategory_id, slug, name, description, price_cents, is_active, created_at, updated_at
	`, strings.Join(sets, ", "), argPos)
	args = append(args, id)

	var product models.Product
	err := r.db.QueryRow(query, args...).Scan(
		&product.ID,
		&product.SubcategoryID,
		&product.Slug,
		&product.Name,
		&product.Description,
		&product.PriceCents,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("updating product: %w", err)
	}

	return &product, nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if affected == 0 {
		return models.ErrProductNotFound
	}

	return nil
}

// GetAll lists products, optionally filtered by subcategory, newest first.
func (r *ProductRepository) GetAll(subcategoryID *int, limit, offset int) ([]*models.Product, error) {
	var query strings.Builder
	args := []interface{}{}
	argPos := 1

	query.WriteString(`
		SELECT id, subcategory_id, slug, name, description, price_cents, is_active, created_at, updated_at
		FROM products
		WHERE 1=1`)

	if subcategoryID != nil {
		query.WriteString(fmt.Sprintf(" AND subcategory_id = $%d", argPos))
		args = append(args, *subcategoryID)
		argPos++
	}

	query.WriteString(" ORDER BY created_at DESC")
	query.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID,
			&product.SubcategoryID,
			&product.Slug,
			&product.Name,
			&product.Description,
			&product.PriceCents,
			&product.IsActive,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, &product)
	}

	return products, rows.Err()
}
