package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// UserRepository user database operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user.
func (r *UserRepository) Create(user *models.CreateUserRequest) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, role, is_active, created_at
	`

	var result models.User
	err := r.db.QueryRow(query, user.Name, user.Email, user.Password, user.Role).Scan(
		&result.ID,
		&result.Name,
		&result.Email,
		&result.Role,
		&result.IsActive,
		&result.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return &result, nil
}

// GetByEmail finds a user by email.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password, role, is_active, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user by email: %w", err)
	}

	return &user, nil
}

// GetByID finds a user by id.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	query := `
		SELECT id, name, email, role, is_active, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user by id: %w", err)
	}

	return &user, nil
}

// Update applies a partial update and returns the new row.
func (r *UserRepository) Update(id int, req *models.UpdateUserRequest) (*models.User, error) {
	sets := []string{}
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
	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.Password != nil {
		addSet("password", *req.Password)
	}
	if req.Role != nil {
		addSet("role", *req.Role)
	}
	if req.IsActive != nil {
		addSet("is_active", *req.IsActive)
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE users SET %s
		WHERE id = $%d
		RETURNING id, name, email, role, is_active, created_at
	`, strings.Join(sets, ", "), argPos)
	args = append(args, id)

	var user models.User
	err := r.db.QueryRow(query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return nil, models.ErrEmailTaken
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return &user, nil
}

// Delete removes a user.
func (r *UserRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if affected == 0 {
		return models.ErrUserNotFound
	}

	return nil
}

// GetAll lists users with pagination, returning the total count.
func (r *UserRepository) GetAll(limit, offset int) ([]*models.User, int, error) {
	var totalCount int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}

	query := `
		SELECT id, name, email, role, is_active, created_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Role,
			&user.IsActive,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, &user)
	}

	return users, totalCount, rows.Err()
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
