package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
)

// AuditHandler read-only audit trail queries, admin only.
type AuditHandler struct {
	auditService interfaces.AuditServiceInterface
}

// NewAuditHandler creates a new handler.
func NewAuditHandler(auditService interfaces.AuditServiceInterface) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// GetByUser lists entries recorded for an acting user.
func (h *AuditHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(mux.Vars(r)["user_id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	limit, offset := parsePagination(r)

	entries, err := h.auditService.GetByUser(userID, limit, offset)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("Audit query by user failed")
		http.Error(w, "could not query audit trail", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(map[string]interface{}{
		"entries": entries,
		"user_id": userID,
		"limit":   limit,
		"offset":  offset,
	}, "audit entries listed"))
}

// GetByEntity lists entries touching one resource, e.g. /audit/product/42.
func (h *AuditHandler) GetByEntity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	entityType := vars["entity_type"]
	entityID, err := strconv.Atoi(vars["entity_id"])
	if err != nil {
		http.Error(w, "invalid entity id", http.StatusBadRequest)
		return
	}

	limit, offset := parsePagination(r)

	entries, err := h.auditService.GetByEntity(entityType, entityID, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("entity_type", entityType).Int("entity_id", entityID).Msg("Audit query by entity failed")
		http.Error(w, "could not query audit trail", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(map[string]interface{}{
		"entries":     entries,
		"entity_type": entityType,
		"entity_id":   entityID,
		"limit":       limit,
		"offset":      offset,
	}, "audit entries listed"))
}

// GetByDateRange lists entries between ?from= and ?to= (RFC 3339).
func (h *AuditHandler) GetByDateRange(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "from must be an RFC 3339 timestamp", http.StatusBadRequest)
		return
	}

	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "to must be an RFC 3339 timestamp", http.StatusBadRequest)
		return
	}

	if to.Before(from) {
		http.Error(w, "to must not precede from", http.StatusBadRequest)
		return
	}

	limit, offset := parsePagination(r)

	entries, err := h.auditService.GetByDateRange(from, to, limit, offset)
	if err != nil {
		log.Error().Err(err).Time("from", from).Time("to", to).Msg("Audit query by date range failed")
		http.Error(w, "could not query audit trail", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(map[string]interface{}{
		"entries": entries,
		"from":    from,
		"to":      to,
		"limit":   limit,
		"offset":  offset,
	}, "audit entries listed"))
}
