package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// CategoryHandler category endpoints. Reads are open to any authenticated
// role; writes sit behind the admin-only route middleware and are audited
// after the mutation succeeds.
type CategoryHandler struct {
	categoryService interfaces.CategoryServiceInterface
	audit           interfaces.AuditServiceInterface
}

// NewCategoryHandler creates a new handler.
func NewCategoryHandler(categoryService interfaces.CategoryServiceInterface, audit interfaces.AuditServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, audit: audit}
}

// Create stores a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req models.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	category, err := h.categoryService.Create(&req)
	if err != nil {
		if errors.Is(err, models.ErrSlugTaken) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		log.Error().Err(err).Str("slug", req.Slug).Msg("Category create failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	meta := requestMeta(r)
	h.audit.Record(&models.AuditLog{
		UserID:     &claims.UserID,
		Action:     models.AuditActionCreate,
		EntityType: "category",
		EntityID:   &category.ID,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	respondJSON(w, http.StatusCreated, successResponse(category, "category created"))

	log.Info().Int("category_id", category.ID).Str("slug", category.Slug).Msg("✅ Category created")
}

// GetByID returns a single category.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	category, err := h.categoryService.GetByID(id)
	if err != nil {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(category, "category found"))
}

// GetAll lists categories.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	categories, err := h.categoryService.GetAll(limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Listing categories failed")
		http.Error(w, "could not list categories", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(map[string]interface{}{
		"categories": categories,
		"limit":      limit,
		"offset":     offset,
	}, "categories listed"))
}

// Update applies a partial update.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	var req models.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	category, err := h.categoryService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrCategoryNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrSlugTaken):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Error().Err(err).Int("category_id", id).Msg("Category update failed")
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	meta := requestMeta(r)
	h.audit.Record(&models.AuditLog{
		UserID:     &claims.UserID,
		Action:     models.AuditActionUpdate,
		EntityType: "category",
		EntityID:   &category.ID,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	respondJSON(w, http.StatusOK, successResponse(category, "category updated"))
}

// Delete removes a category.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid category id", http.StatusBadRequest)
		return
	}

	if err := h.categoryService.Delete(id); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int("category_id", id).Msg("Category delete failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	meta := requestMeta(r)
	h.audit.Record(&models.AuditLog{
		UserID:     &claims.UserID,
		Action:     models.AuditActionDelete,
		EntityType: "category",
		EntityID:   &id,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	respondJSON(w, http.StatusOK, successResponse(nil, "category deleted"))
}
