package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mskard-business-solutions/gogreen-backend/internal/auth"
	"github.com/mskard-business-solutions/gogreen-backend/internal/middleware"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
	"github.com/mskard-business-solutions/gogreen-backend/internal/utils"
)

// respondJSON writes a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// successResponse standard success envelope.
func successResponse(data interface{}, message string) map[string]interface{} {
	return map[string]interface{}{
		"success": true,
		"data":    data,
		"message": message,
	}
}

// claimsFrom pulls the authenticated identity set by the auth middleware.
func claimsFrom(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*auth.Claims)
	return claims, ok
}

// requestMeta captures client address and agent for audit entries.
func requestMeta(r *http.Request) models.RequestMeta {
	return models.RequestMeta{
		IPAddress: utils.GetClientIP(r),
		UserAgent: utils.GetClientInfo(r),
	}
}

// parseIDParam reads the {id} route variable.
func parseIDParam(r *http.Request) (int, error) {
	idStr, exists := mux.Vars(r)["id"]
	if !exists {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(idStr)
}

// parsePagination reads limit/offset query parameters with defaults.
// Services clamp the final values.
func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return limit, offset
}
