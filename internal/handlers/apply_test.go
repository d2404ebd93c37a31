package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// MockCategoryService mocks CategoryServiceInterface.
type MockCategoryService struct {
	mock.Mock
}

var _ interfaces.CategoryServiceInterface = (*MockCategoryService)(nil)

func (m *MockCategoryService) Create(req *models.CreateCategoryRequest) (*models.Category, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}
func (m *MockCategoryService) GetByID(id int) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}
func (m *MockCategoryService) Update(id int, req *models.UpdateCategoryRequest) (*models.Category, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}
func (m *MockCategoryService) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockCategoryService) GetAll(limit, offset int) ([]*models.Category, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]*models.Category), args.Error(1)
}

// MockSubcategoryService mocks SubcategoryServiceInterface.
type MockSubcategoryService struct {
	mock.Mock
}

var _ interfaces.SubcategoryServiceInterface = (*MockSubcategoryService)(nil)

func (m *MockSubcategoryService) Create(req *models.CreateSubcategoryRequest) (*models.Subcategory, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subcategory), args.Error(1)
}
func (m *MockSubcategoryService) GetByID(id int) (*models.Subcategory, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subcategory), args.Error(1)
}
func (m *MockSubcategoryService) Update(id int, req *models.UpdateSubcategoryRequest) (*models.Subcategory, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subcategory), args.Error(1)
}
func (m *MockSubcategoryService) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockSubcategoryService) GetByCategory(categoryID int, limit, offset int) ([]*models.Subcategory, error) {
	args := m.Called(categoryID, limit, offset)
	return args.Get(0).([]*models.Subcategory), args.Error(1)
}

// MockProductService mocks ProductServiceInterface.
type MockProductService struct {
	mock.Mock
}

var _ interfaces.ProductServiceInterface = (*MockProductService)(nil)

func (m *MockProductService) Create(req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}
func (m *MockProductService) GetByID(id int) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}
func (m *MockProductService) Update(id int, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}
func (m *MockProductService) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockProductService) GetAll(subcategoryID *int, limit, offset int) ([]*models.Product, error) {
	args := m.Called(subcategoryID, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func newTestApplier() (*ChangeApplier, *MockCategoryService, *MockSubcategoryService, *MockProductService) {
	categories := new(MockCategoryService)
	subcategories := new(MockSubcategoryService)
	products := new(MockProductService)
	return NewChangeApplier(categories, subcategories, products), categories, subcategories, products
}

func TestChangeApplier_CreateProduct(t *testing.T) {
	// Arrange
	applier, _, _, products := newTestApplier()

	products.On("Create", mock.MatchedBy(func(req *models.CreateProductRequest) bool {
		return req.Slug == "mini-solar-panel" && req.SubcategoryID == 4
	})).Return(&models.Product{ID: 9, Slug: "mini-solar-panel"}, nil)

	change := &models.PendingChange{
		Action:       models.ChangeActionCreate,
		ResourceType: "product",
		ChangeData:   json.RawMessage(`{"subcategory_id":4,"slug":"mini-solar-panel","name":"Mini Solar Panel","price_cents":4999}`),
	}

	// Act
	err := applier.Apply(change)

	// Assert
	assert.NoError(t, err)
	products.AssertExpectations(t)
}

func TestChangeApplier_UpdateCategory(t *testing.T) {
	// Arrange
	applier, categories, _, _ := newTestApplier()

	resourceID := 2
	categories.On("Update", 2, mock.MatchedBy(func(req *models.UpdateCategoryRequest) bool {
		return req.Name != nil && *req.Name == "Garden"
	})).Return(&models.Category{ID: 2, Name: "Garden"}, nil)

	change := &models.PendingChange{
		Action:       models.ChangeActionUpdate,
		ResourceType: "category",
		ResourceID:   &resourceID,
		ChangeData:   json.RawMessage(`{"name":"Garden"}`),
	}

	// Act
	err := applier.Apply(change)

	// Assert
	assert.NoError(t, err)
	categories.AssertExpectations(t)
}

func TestChangeApplier_DeleteSubcategory(t *testing.T) {
	// Arrange
	applier, _, subcategories, _ := newTestApplier()

	resourceID := 6
	subcategories.On("Delete", 6).Return(nil)

	change := &models.PendingChange{
		Action:       models.ChangeActionDelete,
		ResourceType: "subcategory",
		ResourceID:   &resourceID,
	}

	// Act
	err := applier.Apply(change)

	// Assert
	assert.NoError(t, err)
	subcategories.AssertExpectations(t)
}

func TestChangeApplier_UnknownResourceType(t *testing.T) {
	// Arrange
	applier, _, _, _ := newTestApplier()

	// Act
	err := applier.Apply(&models.PendingChange{
		Action:       models.ChangeActionCreate,
		ResourceType: "warehouse",
		ChangeData:   json.RawMessage(`{}`),
	})

	// Assert
	assert.Error(t, err)
}

func TestChangeApplier_UpdateWithoutResourceID(t *testing.T) {
	// Arrange
	applier, categories, _, _ := newTestApplier()

	// Act
	err := applier.Apply(&models.PendingChange{
		Action:       models.ChangeActionUpdate,
		ResourceType: "category",
		ChangeData:   json.RawMessage(`{"name":"x"}`),
	})

	// Assert
	assert.Error(t, err)
	categories.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
