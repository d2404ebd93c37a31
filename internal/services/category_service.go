package services

import (
	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// CategoryService category business logic.
type CategoryService struct {
	categoryRepo interfaces.CategoryRepositoryInterface
}

// NewCategoryService creates a new service.
func NewCategoryService(categoryRepo interfaces.CategoryRepositoryInterface) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create stores a new category.
func (s *CategoryService) Create(req *models.CreateCategoryRequest) (*models.Category, error) {
	return s.categoryRepo.Create(req)
}

// GetByID fetches a category.
func (s *CategoryService) GetByID(id int) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// Update applies a partial update.
func (s *CategoryService) Update(id int, req *models.UpdateCategoryRequest) (*models.Category, error) {
	return s.categoryRepo.Update(id, req)
}

// Delete removes a category.
func (s *CategoryService) Delete(id int) error {
	return s.categoryRepo.Delete(id)
}

// GetAll lists categories.
func (s *CategoryService) GetAll(limit, offset int) ([]*models.Category, error) {
	limit, offset = clampPagination(limit, offset)
	return s.categoryRepo.GetAll(limit, offset)
}
