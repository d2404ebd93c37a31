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

// ProductHandler product endpoints, same access split as categories.
type ProductHandler struct {
	productService interfaces.ProductServiceInterface
	audit          interfaces.AuditServiceInterface
}

// NewProductHandler creates a new handler.
func NewProductHandler(productService interfaces.ProductServiceInterface, audit interfaces.AuditServiceInterface) *ProductHandler {
	return &ProductHandler{productService: productService, audit: audit}
}

// Create stores a new product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product, err := h.productService.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSubcategoryNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrSlugTaken):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Error().Err(err).Str("slug", req.Slug).Msg("Product create failed")
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	meta := requestMeta(r)
	h.audit.Record(&models.AuditLog{
		UserID:     &claims.UserID,
		Action:     models.AuditActionCreate,
		EntityType: "product",
		EntityID:   &product.ID,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	respondJSON(w, http.StatusCreated, successResponse(product, "product created"))

	log.Info().Int("product_id", product.ID).Str("slug", product.Slug).Msg("✅ Product created")
}

// GetByID returns a single product.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	product, err := h.productService.GetByID(id)
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(product, "product found"))
}

// GetAll lists products, optionally filtered by ?subcategory_id=.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	var subcategoryID *int
	if subStr := r.URL.Query().Get("subcategory_id"); subStr != "" {
		parsed, err := strconv.Atoi(subStr)
		if err != nil {
			http.Error(w, "invalid subcategory_id", http.StatusBadRequest)
			return
		}
		subcategoryID = &parsed
	}

	products, err := h.productService.GetAll(subcategoryID, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Listing products failed")
		http.Error(w, "could not list products", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(map[string]interface{}{
		"products": products,
		"limit":    limit,
		"offset":   offset,
	}, "products listed"))
}

// Update applies a partial update.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var req models.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product, err := h.productService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound), errors.Is(err, models.ErrSubcategoryNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrSlugTaken):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Error().Err(err).Int("product_id", id).Msg("Product update failed")
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	meta := requestMeta(r)
	h.audit.Record(&models.AuditLog{
		UserID:     &claims.UserID,
		Action:     models.AuditActionUpdate,
		EntityType: "product",
		EntityID:   &product.ID,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	respondJSON(w, http.StatusOK, successResponse(product, "product updated"))
}

// Delete removes a product.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.productService.Delete(id); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int("product_id", id).Msg("Product delete failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	meta := requestMeta(r)
	h.audit.Record(&models.AuditLog{
		UserID:     &claims.UserID,
		Action:     models.AuditActionDelete,
		EntityType: "product",
		EntityID:   &id,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	respondJSON(w, http.StatusOK, successResponse(nil, "product deleted"))
}
