package interfaces

import (
	"time"

	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// UserServiceInterface user business logic.
type UserServiceInterface interface {
	// Register creates an editor account.
	Register(req *models.CreateUserRequest) (*models.User, error)

	// Login verifies credentials and returns a signed token.
	Login(req *models.LoginRequest) (*models.LoginResponse, error)

	// GetUserByID fetches a user.
	GetUserByID(userID int) (*models.User, error)

	// UpdateUser applies a partial update, enforcing admin protections.
	UpdateUser(userID int, req *models.UpdateUserRequest) (*models.User, error)

	// DeleteUser removes a user, enforcing admin protections.
	DeleteUser(userID int) error

	// GetAllUsers lists users with pagination.
	GetAllUsers(limit, offset int) ([]*models.User, int, error)
}

// CategoryServiceInterface category business logic.
type CategoryServiceInterface interface {
	Create(req *models.CreateCategoryRequest) (*models.Category, error)
	GetByID(id int) (*models.Category, error)
	Update(id int, req *models.UpdateCategoryRequest) (*models.Category, error)
	Delete(id int) error
	GetAll(limit, offset int) ([]*models.Category, error)
}

// SubcategoryServiceInterface subcategory business logic.
type SubcategoryServiceInterface interface {
	Create(req *models.CreateSubcategoryRequest) (*models.Subcategory, error)
	GetByID(id int) (*models.Subcategory, error)
	Update(id int, req *models.UpdateSubcategoryRequest) (*models.Subcategory, error)
	Delete(id int) error
	GetByCategory(categoryID int, limit, offset int) ([]*models.Subcategory, error)
}

// ProductServiceInterface product business logic.
type ProductServiceInterface interface {
	Create(req *models.CreateProductRequest) (*models.Product, error)
	GetByID(id int) (*models.Product, error)
	Update(id int, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(id int) error
	GetAll(subcategoryID *int, limit, offset int) ([]*models.Product, error)
}

// ApprovalServiceInterface the pending-change workflow: submission policy,
// the review state machine, and their audit side effects.
type ApprovalServiceInterface interface {
	// Submit records a deferred mutation for a non-admin identity. Admins
	// get models.ErrAdminDirectApply; they apply changes directly.
	Submit(submitterID int, submitterRole string, req *models.SubmitChangeRequest, meta models.RequestMeta) (*models.PendingChange, error)

	// Review transitions a pending change to approved or rejected, exactly
	// once. Returns models.ErrChangeNotFound or models.ErrAlreadyReviewed.
	Review(changeID, reviewerID int, req *models.ReviewRequest, meta models.RequestMeta) (*models.PendingChange, error)

	// GetByID fetches a change.
	GetByID(id int) (*models.PendingChange, error)

	// ListPending lists changes awaiting review, newest first.
	ListPending(limit, offset int) ([]*models.PendingChange, error)

	// ListBySubmitter lists a user's changes, newest first.
	ListBySubmitter(userID int, limit, offset int) ([]*models.PendingChange, error)

	// ListByStatus lists changes in a status, newest first.
	ListByStatus(status string, limit, offset int) ([]*models.PendingChange, error)

	// Purge removes a change regardless of status.
	Purge(id, actorID int, meta models.RequestMeta) error
}

// AuditServiceInterface audit recording and queries.
type AuditServiceInterface interface {
	// Record appends an audit entry, best-effort: storage failures are
	// logged and swallowed, never failing the caller. Returns the stored
	// entry, or nil when recording failed.
	Record(entry *models.AuditLog) *models.AuditLog

	// GetByUser lists entries by acting user, newest first.
	GetByUser(userID int, limit, offset int) ([]*models.AuditLog, error)

	// GetByEntity lists entries touching a resource, newest first.
	GetByEntity(entityType string, entityID int, limit, offset int) ([]*models.AuditLog, error)

	// GetByDateRange lists entries in a time window, newest first.
	GetByDateRange(start, end time.Time, limit, offset int) ([]*models.AuditLog, error)
}
