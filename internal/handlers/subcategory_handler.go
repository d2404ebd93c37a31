package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// SubcategoryHandler subcategory endpoints, same access split as categories.
type SubcategoryHandler struct {
	subcategoryService interfaces.SubcategoryServiceInterface
	audit              interfaces.AuditServiceInterface
}

// NewSubcategoryHandler creates a new handler.
func NewSubcategoryHandler(subcategoryService interfaces.SubcategoryServiceInterface, audit interfaces.AuditServiceInterface) *SubcategoryHandler {
	return &SubcategoryHandler{subcategoryService: subcategoryService, audit: audit}
}

// Create stores a new subcategory.
func (h *SubcategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req models.CreateSubcategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	subcategory, err := h.subcategoryService.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrCategoryNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrSlugTaken):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Error().Err(err).Str("slug", req.Slug).Msg("Subcategory create failed")
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	meta := requestMeta(r)
	h.audit.Record(&models.AuditLog{
		UserID:     &claims.UserID,
		Action:     models.AuditActionCreate,
		EntityType: "subcategory",
		EntityID:   &subcategory.ID,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	respondJSON(w, http.StatusCreated, successResponse(subcategory, "subcategory created"))

	log.Info().Int("subcategory_id", subcategory.ID).Str("slug", subcategory.Slug).Msg("✅ Subcategory created")
}

// GetByID returns a single subcategory.
func (h *SubcategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid subcategory id", http.StatusBadRequest)
		return
	}

	subcategory, err := h.subcategoryService.GetByID(id)
	if err != nil {
		http.Error(w, "subcategory not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(subcategory, "subcategory found"))
}

// GetByCategory lists subcategories under a category, via ?category_id=.
func (h *SubcategoryHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.Atoi(r.URL.Query().Get("category_id"))
	if err != nil {
		http.Error(w, "category_id query parameter required", http.StatusBadRequest)
		return
	}

	limit, offset := parsePagination(r)

	subcategories, err := h.subcategoryService.GetByCategory(categoryID, limit, offset)
	if err != nil {
		log.Error().Err(err).Int("category_id", categoryID).Msg("Listing subcategories failed")
		http.Error(w, "could not list subcategories", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(map[string]interface{}{
		"subcategories": subcategories,
		"category_id":   categoryID,
		"limit":         limit,
		"offset":        offset,
	}, "subcategories listed"))
}

// Update applies a partial update.
func (h *SubcategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid subcategory id", http.StatusBadRequest)
		return
	}

	var req models.UpdateSubcategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	subcategory, err := h.subcategoryService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSubcategoryNotFound), errors.Is(err, models.ErrCategoryNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrSlugTaken):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Error().Err(err).Int("subcategory_id", id).Msg("Subcategory update failed")
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	meta := requestMeta(r)
	h.audit.Record(&models.AuditLog{
		UserID:     &claims.UserID,
		Action:     models.AuditActionUpdate,
		EntityType: "subcategory",
		EntityID:   &subcategory.ID,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	respondJSON(w, http.StatusOK, successResponse(subcategory, "subcategory updated"))
}

// Delete removes a subcategory.
func (h *SubcategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid subcategory id", http.StatusBadRequest)
		return
	}

	if err := h.subcategoryService.Delete(id); err != nil {
		if errors.Is(err, models.ErrSubcategoryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int("subcategory_id", id).Msg("Subcategory delete failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	meta := requestMeta(r)
	h.audit.Record(&models.AuditLog{
		UserID:     &claims.UserID,
		Action:     models.AuditActionDelete,
		EntityType: "subcategory",
		EntityID:   &id,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	respondJSON(w, http.StatusOK, successResponse(nil, "subcategory deleted"))
}
