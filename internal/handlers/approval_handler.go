package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// ApprovalHandler pending-change endpoints: editor submissions, review by
// admins, and the listing surfaces for both roles.
type ApprovalHandler struct {
	approvalService interfaces.ApprovalServiceInterface
	applier         *ChangeApplier
}

// NewApprovalHandler creates a new handler.
func NewApprovalHandler(approvalService interfaces.ApprovalServiceInterface, applier *ChangeApplier) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService, applier: applier}
}

// Submit queues a catalog mutation for review.
func (h *ApprovalHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req models.SubmitChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Int("user_id", claims.UserID).Msg("❌ Change submission validation failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	change, err := h.approvalService.Submit(claims.UserID, claims.Role, &req, requestMeta(r))
	if err != nil {
		if errors.Is(err, models.ErrAdminDirectApply) {
			http.Error(w, "admins apply catalog changes directly", http.StatusForbidden)
			return
		}
		log.Error().Err(err).Int("user_id", claims.UserID).Msg("Change submission failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusCreated, successResponse(change, "change submitted for review"))

	log.Info().
		Int("change_id", change.ID).
		Int("submitted_by", claims.UserID).
		Str("action", change.Action).
		Str("resource_type", change.ResourceType).
		Msg("✅ Change submitted")
}

// Review moves a pending change to approved or rejected. Approval triggers
// the apply step; its outcome is reported alongside the decision, which is
// final either way.
func (h *ApprovalHandler) Review(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	changeID, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid change id", http.StatusBadRequest)
		return
	}

	var req models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	change, err := h.approvalService.Review(changeID, claims.UserID, &req, requestMeta(r))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrChangeNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrAlreadyReviewed):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Error().Err(err).Int("change_id", changeID).Msg("Review failed")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	result := models.ReviewResult{Change: change}

	if change.Status == models.ChangeStatusApproved {
		if applyErr := h.applier.Apply(change); applyErr != nil {
			result.ApplyError = applyErr.Error()
			log.Error().
				Err(applyErr).
				Int("change_id", change.ID).
				Msg("❌ Approved change could not be applied")
		} else {
			result.Applied = true
		}
	}

	respondJSON(w, http.StatusOK, successResponse(result, "change reviewed"))

	log.Info().
		Int("change_id", change.ID).
		Int("reviewed_by", claims.UserID).
		Str("decision", change.Status).
		Bool("applied", result.Applied).
		Msg("✅ Change reviewed")
}

// GetByID returns a single change. Editors only see their own submissions.
func (h *ApprovalHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	changeID, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid change id", http.StatusBadRequest)
		return
	}

	change, err := h.approvalService.GetByID(changeID)
	if err != nil {
		http.Error(w, "pending change not found", http.StatusNotFound)
		return
	}

	if claims.Role != models.RoleAdmin && change.SubmittedBy != claims.UserID {
		http.Error(w, "pending change not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(change, "change found"))
}

// ListPending lists the review queue.
func (h *ApprovalHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	changes, err := h.approvalService.ListPending(limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Listing pending changes failed")
		http.Error(w, "could not list pending changes", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(map[string]interface{}{
		"changes": changes,
		"limit":   limit,
		"offset":  offset,
	}, "pending changes listed"))
}

// ListMine lists the caller's own submissions, any status.
func (h *ApprovalHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	limit, offset := parsePagination(r)

	changes, err := h.approvalService.ListBySubmitter(claims.UserID, limit, offset)
	if err != nil {
		log.Error().Err(err).Int("user_id", claims.UserID).Msg("Listing own changes failed")
		http.Error(w, "could not list changes", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(map[string]interface{}{
		"changes": changes,
		"limit":   limit,
		"offset":  offset,
	}, "changes listed"))
}

// ListByStatus lists changes filtered by ?status= (defaults to pending).
func (h *ApprovalHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.ChangeStatusPending
	}
	switch status {
	case models.ChangeStatusPending, models.ChangeStatusApproved, models.ChangeStatusRejected:
	default:
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	limit, offset := parsePagination(r)

	changes, err := h.approvalService.ListByStatus(status, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("status", status).Msg("Listing changes failed")
		http.Error(w, "could not list changes", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(map[string]interface{}{
		"changes": changes,
		"status":  status,
		"limit":   limit,
		"offset":  offset,
	}, "changes listed"))
}

// Purge removes a change record entirely.
func (h *ApprovalHandler) Purge(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	changeID, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid change id", http.StatusBadRequest)
		return
	}

	if err := h.approvalService.Purge(changeID, claims.UserID, requestMeta(r)); err != nil {
		if errors.Is(err, models.ErrChangeNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int("change_id", changeID).Msg("Purging change failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, successResponse(nil, "change purged"))
}
