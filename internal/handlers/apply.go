package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// ChangeApplier executes an approved pending change against the catalog
// services. It runs after the review decision is committed; an apply failure
// never rolls the decision back.
type ChangeApplier struct {
	categories    interfaces.CategoryServiceInterface
	subcategories interfaces.SubcategoryServiceInterface
	products      interfaces.ProductServiceInterface
}

// NewChangeApplier creates a new applier.
func NewChangeApplier(categories interfaces.CategoryServiceInterface, subcategories interfaces.SubcategoryServiceInterface, products interfaces.ProductServiceInterface) *ChangeApplier {
	return &ChangeApplier{categories: categories, subcategories: subcategories, products: products}
}

// Apply dispatches the change to the right catalog service.
func (a *ChangeApplier) Apply(change *models.PendingChange) error {
	switch change.ResourceType {
	case "category":
		return a.applyCategory(change)
	case "subcategory":
		return a.applySubcategory(change)
	case "product":
		return a.applyProduct(change)
	default:
		return fmt.Errorf("unknown resource type %q", change.ResourceType)
	}
}

func (a *ChangeApplier) applyCategory(change *models.PendingChange) error {
	switch change.Action {
	case models.ChangeActionCreate:
		var req models.CreateCategoryRequest
		if err := json.Unmarshal(change.ChangeData, &req); err != nil {
			return fmt.Errorf("decoding change data: %w", err)
		}
		_, err := a.categories.Create(&req)
		return err
	case models.ChangeActionUpdate:
		if change.ResourceID == nil {
			return fmt.Errorf("update change has no resource id")
		}
		var req models.UpdateCategoryRequest
		if err := json.Unmarshal(change.ChangeData, &req); err != nil {
			return fmt.Errorf("decoding change data: %w", err)
		}
		_, err := a.categories.Update(*change.ResourceID, &req)
		return err
	case models.ChangeActionDelete:
		if change.ResourceID == nil {
			return fmt.Errorf("delete change has no resource id")
		}
		return a.categories.Delete(*change.ResourceID)
	default:
		return fmt.Errorf("unknown action %q", change.Action)
	}
}

func (a *ChangeApplier) applySubcategory(change *models.PendingChange) error {
	switch change.Action {
	case models.ChangeActionCreate:
		var req models.CreateSubcategoryRequest
		if err := json.Unmarshal(change.ChangeData, &req); err != nil {
			return fmt.Errorf("decoding change data: %w", err)
		}
		_, err := a.subcategories.Create(&req)
		return err
	case models.ChangeActionUpdate:
		if change.ResourceID == nil {
			return fmt.Errorf("update change has no resource id")
		}
		var req models.UpdateSubcategoryRequest
		if err := json.Unmarshal(change.ChangeData, &req); err != nil {
			return fmt.Errorf("decoding change data: %w", err)
		}
		_, err := a.subcategories.Update(*change.ResourceID, &req)
		return err
	case models.ChangeActionDelete:
		if change.ResourceID == nil {
			return fmt.Errorf("delete change has no resource id")
		}
		return a.subcategories.Delete(*change.ResourceID)
	default:
		return fmt.Errorf("unknown action %q", change.Action)
	}
}

func (a *ChangeApplier) applyProduct(change *models.PendingChange) error {
	switch change.Action {
	case models.ChangeActionCreate:
		var req models.CreateProductRequest
		if err := json.Unmarshal(change.ChangeData, &req); err != nil {
			return fmt.Errorf("decoding change data: %w", err)
		}
		_, err := a.products.Create(&req)
		return err
	case models.ChangeActionUpdate:
		if change.ResourceID == nil {
			return fmt.Errorf("update change has no resource id")
		}
		var req models.UpdateProductRequest
		if err := json.Unmarshal(change.ChangeData, &req); err != nil {
			return fmt.Errorf("decoding change data: %w", err)
		}
		_, err := a.products.Update(*change.ResourceID, &req)
		return err
	case models.ChangeActionDelete:
		if change.ResourceID == nil {
			return fmt.Errorf("delete change has no resource id")
		}
		return a.products.Delete(*change.ResourceID)
	default:
		return fmt.Errorf("unknown action %q", change.Action)
	}
}
