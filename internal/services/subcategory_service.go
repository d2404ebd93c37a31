package services

import (
	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// SubcategoryService subcategory business logic.
type SubcategoryService struct {
	subcategoryRepo interfaces.SubcategoryRepositoryInterface
	categoryRepo    interfaces.CategoryRepositoryInterface
}

// NewSubcategoryService creates a new service.
func NewSubcategoryService(subcategoryRepo interfaces.SubcategoryRepositoryInterface, categoryRepo interfaces.CategoryRepositoryInterface) *SubcategoryService {
	return &SubcategoryService{subcategoryRepo: subcategoryRepo, categoryRepo: categoryRepo}
}

// Create stores a new subcategory after checking the parent exists.
func (s *SubcategoryService) Create(req *models.CreateSubcategoryRequest) (*models.Subcategory, error) {
	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		return nil, err
	}
	return s.subcategoryRepo.Create(req)
}

// GetByID fetches a subcategory.
func (s *SubcategoryService) GetByID(id int) (*models.Subcategory, error) {
	return s.subcategoryRepo.GetByID(id)
}

// Update applies a partial update, checking a new parent when moved.
func (s *SubcategoryService) Update(id int, req *models.UpdateSubcategoryRequest) (*models.Subcategory, error) {
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*req.CategoryID); err != nil {
			return nil, err
		}
	}
	return s.subcategoryRepo.Update(id, req)
}

// Delete removes a subcategory.
func (s *SubcategoryService) Delete(id int) error {
	return s.subcategoryRepo.Delete(id)
}

// GetByCategory lists subcategories under a category.
func (s *SubcategoryService) GetByCategory(categoryID int, limit, offset int) ([]*models.Subcategory, error) {
	limit, offset = clampPagination(limit, offset)
	return s.subcategoryRepo.GetByCategory(categoryID, limit, offset)
}
