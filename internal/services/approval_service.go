package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// ApprovalService owns the pending-change workflow: the submission policy
// (non-admins only), the review state machine, and the audit pairing of
// both operations. It never applies approved mutations itself; that is the
// caller's job, so the decision record stays the source of truth even when
// the apply step fails afterwards.
type ApprovalService struct {
	changeRepo interfaces.PendingChangeRepositoryInterface
	audit      interfaces.AuditServiceInterface
}

// NewApprovalService creates a new service.
func NewApprovalService(changeRepo interfaces.PendingChangeRepositoryInterface, audit interfaces.AuditServiceInterface) *ApprovalService {
	return &ApprovalService{changeRepo: changeRepo, audit: audit}
}

// Submit records a deferred mutation for a non-admin identity.
func (s *ApprovalService) Submit(submitterID int, submitterRole string, req *models.SubmitChangeRequest, meta models.RequestMeta) (*models.PendingChange, error) {
	// Admins act on the catalog directly and never queue for approval.
	if submitterRole == models.RoleAdmin {
		return nil, models.ErrAdminDirectApply
	}

	change, err := s.changeRepo.Create(submitterID, req)
	if err != nil {
		return nil, fmt.Errorf("submitting change: %w", err)
	}

	s.audit.Record(&models.AuditLog{
		UserID:     &submitterID,
		Action:     models.AuditActionCreate,
		EntityType: "pending_change",
		EntityID:   &change.ID,
		Details: auditDetails(map[string]interface{}{
			"action":        change.Action,
			"resource_type": change.ResourceType,
			"resource_id":   change.ResourceID,
		}),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return change, nil
}

// Review transitions a pending change to a terminal state exactly once.
// The underlying repository update is conditional on the pending status, so
// of two concurrent reviewers exactly one wins; the other gets
// models.ErrAlreadyReviewed.
func (s *ApprovalService) Review(changeID, reviewerID int, req *models.ReviewRequest, meta models.RequestMeta) (*models.PendingChange, error) {
	change, err := s.changeRepo.Review(changeID, reviewerID, req.Decision, req.Notes)
	if err != nil {
		if errors.Is(err, models.ErrChangeNotFound) {
			// No pending row matched: either the change does not exist or
			// it already reached a terminal state.
			existing, getErr := s.changeRepo.GetByID(changeID)
			if getErr != nil {
				return nil, models.ErrChangeNotFound
			}
			if existing.IsTerminal() {
				return nil, models.ErrAlreadyReviewed
			}
		}
		return nil, fmt.Errorf("reviewing change: %w", err)
	}

	action := models.AuditActionApprove
	if req.Decision == models.ChangeStatusRejected {
		action = models.AuditActionReject
	}

	s.audit.Record(&models.AuditLog{
		UserID:     &reviewerID,
		Action:     action,
		EntityType: "pending_change",
		EntityID:   &change.ID,
		Details: auditDetails(map[string]interface{}{
			"action":        change.Action,
			"resource_type": change.ResourceType,
			"resource_id":   change.ResourceID,
			"notes":         req.Notes,
		}),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})

	return change, nil
}

// GetByID fetches a change.
func (s *ApprovalService) GetByID(id int) (*models.PendingChange, error) {
	return s.changeRepo.GetByID(id)
}

// ListPending lists changes awaiting review, newest first.
func (s *ApprovalService) ListPending(limit, offset int) ([]*models.PendingChange, error) {
	limit, offset = clampPagination(limit, offset)
	return s.changeRepo.GetByStatus(models.ChangeStatusPending, limit, offset)
}

// ListBySubmitter lists a user's changes, newest first.
func (s *ApprovalService) ListBySubmitter(userID int, limit, offset int) ([]*models.PendingChange, error) {
	limit, offset = clampPagination(limit, offset)
	return s.changeRepo.GetBySubmitter(userID, limit, offset)
}

// ListByStatus lists changes in a status, newest first.
func (s *ApprovalService) ListByStatus(status string, limit, offset int) ([]*models.PendingChange, error) {
	limit, offset = clampPagination(limit, offset)
	return s.changeRepo.GetByStatus(status, limit, offset)
}

// Purge removes a change regardless of status. Administrative escape
// hatch, not part of the review workflow.
func (s *ApprovalService) Purge(id, actorID int, meta models.RequestMeta) error {
	if err := s.changeRepo.Delete(id); err != nil {
		return err
	}

	s.audit.Record(&models.AuditLog{
		UserID:     &actorID,
		Action:     models.AuditActionDelete,
		EntityType: "pending_change",
		EntityID:   &id,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})

	return nil
}

// auditDetails marshals detail payloads, dropping them on marshal failure.
func auditDetails(details map[string]interface{}) json.RawMessage {
	data, err := json.Marshal(details)
	if err != nil {
		return nil
	}
	return data
}
