package interfaces

import (
	"time"

	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// UserRepositoryInterface user persistence operations.
type UserRepositoryInterface interface {
	// Create stores a new user.
	Create(user *models.CreateUserRequest) (*models.User, error)

	// GetByEmail finds a user by email.
	GetByEmail(email string) (*models.User, error)

	// GetByID finds a user by id.
	GetByID(id int) (*models.User, error)

	// Update applies a partial update and returns the new row.
	Update(id int, user *models.UpdateUserRequest) (*models.User, error)

	// Delete removes a user.
	Delete(id int) error

	// GetAll lists users with pagination, returning the total count.
	GetAll(limit, offset int) ([]*models.User, int, error)
}

// CategoryRepositoryInterface category persistence operations.
type CategoryRepositoryInterface interface {
	Create(req *models.CreateCategoryRequest) (*models.Category, error)
	GetByID(id int) (*models.Category, error)
	Update(id int, req *models.UpdateCategoryRequest) (*models.Category, error)
	Delete(id int) error
	GetAll(limit, offset int) ([]*models.Category, error)
}

// SubcategoryRepositoryInterface subcategory persistence operations.
type SubcategoryRepositoryInterface interface {
	Create(req *models.CreateSubcategoryRequest) (*models.Subcategory, error)
	GetByID(id int) (*models.Subcategory, error)
	Update(id int, req *models.UpdateSubcategoryRequest) (*models.Subcategory, error)
	Delete(id int) error
	GetByCategory(categoryID int, limit, offset int) ([]*models.Subcategory, error)
}

// ProductRepositoryInterface product persistence operations.
type ProductRepositoryInterface interface {
	Create(req *models.CreateProductRequest) (*models.Product, error)
	GetByID(id int) (*models.Product, error)
	Update(id int, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(id int) error
	GetAll(subcategoryID *int, limit, offset int) ([]*models.Product, error)
}

// PendingChangeRepositoryInterface pending change persistence operations.
type PendingChangeRepositoryInterface interface {
	// Create stores a new pending change with status pending.
	Create(submittedBy int, req *models.SubmitChangeRequest) (*models.PendingChange, error)

	// GetByID finds a pending change by id.
	GetByID(id int) (*models.PendingChange, error)

	// GetByStatus lists changes in the given status, newest first.
	GetByStatus(status string, limit, offset int) ([]*models.PendingChange, error)

	// GetBySubmitter lists a user's changes, newest first.
	GetBySubmitter(userID int, limit, offset int) ([]*models.PendingChange, error)

	// Review transitions a change out of pending as a single conditional
	// update. Returns models.ErrChangeNotFound when no pending row matched,
	// without distinguishing a missing row from an already reviewed one;
	// callers disambiguate with GetByID.
	Review(id, reviewerID int, status, notes string) (*models.PendingChange, error)

	// Delete removes a change regardless of status (administrative purge).
	Delete(id int) error
}

// AuditRepositoryInterface audit log persistence operations.
type AuditRepositoryInterface interface {
	// Create appends an audit entry and returns it with id and timestamp.
	Create(log *models.AuditLog) (*models.AuditLog, error)

	// GetByUser lists entries by acting user, newest first.
	GetByUser(userID int, limit, offset int) ([]*models.AuditLog, error)

	// GetByEntity lists entries touching a resource, newest first.
	GetByEntity(entityType string, entityID int, limit, offset int) ([]*models.AuditLog, error)

	// GetByDateRange lists entries in a time window, newest first.
	GetByDateRange(start, end time.Time, limit, offset int) ([]*models.AuditLog, error)
}
