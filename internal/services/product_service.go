package services

import (
	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// ProductService product business logic.
type ProductService struct {
	productRepo     interfaces.ProductRepositoryInterface
	subcategoryRepo interfaces.SubcategoryRepositoryInterface
}

// NewProductService creates a new service.
func NewProductService(productRepo interfaces.ProductRepositoryInterface, subcategoryRepo interfaces.SubcategoryRepositoryInterface) *ProductService {
	return &ProductService{productRepo: productRepo, subcategoryRepo: subcategoryRepo}
}

// Create stores a new product after checking the parent exists.
func (s *ProductService) Create(req *models.CreateProductRequest) (*models.Product, error) {
	if _, err := s.subcategoryRepo.GetByID(req.SubcategoryID); err != nil {
		return nil, err
	}
	return s.productRepo.Create(req)
}

// GetByID fetches a product.
func (s *ProductService) GetByID(id int) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// Update applies a partial update, checking a new parent when moved.
func (s *ProductService) Update(id int, req *models.UpdateProductRequest) (*models.Product, error) {
	if req.SubcategoryID != nil {
		if _, err := s.subcategoryRepo.GetByID(*req.SubcategoryID); err != nil {
			return nil, err
		}
	}
	return s.productRepo.Update(id, req)
}

// Delete removes a product.
func (s *ProductService) Delete(id int) error {
	return s.productRepo.Delete(id)
}

// GetAll lists products, optionally filtered by subcategory.
func (s *ProductService) GetAll(subcategoryID *int, limit, offset int) ([]*models.Product, error) {
	limit, offset = clampPagination(limit, offset)
	return s.productRepo.GetAll(subcategoryID, limit, offset)
}
