package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Pending change statuses. A change starts pending and is reviewed exactly
// once into one of the terminal states; terminal records are never re-opened.
const (
	ChangeStatusPending  = "pending"
	ChangeStatusApproved = "approved"
	ChangeStatusRejected = "rejected"
)

// Change actions describing the deferred mutation.
const (
	ChangeActionCreate = "create"
	ChangeActionUpdate = "update"
	ChangeActionDelete = "delete"
)

var (
	// ErrAdminDirectApply is returned when an admin tries to submit a change
	// for approval. Admins apply mutations directly and are never queued.
	ErrAdminDirectApply = errors.New("admins do not require approval")

	ErrChangeNotFound = errors.New("pending change not found")

	// ErrAlreadyReviewed is returned when a review targets a change that has
	// already reached a terminal state.
	ErrAlreadyReviewed = errors.New("pending change already reviewed")
)

// PendingChange is a deferred catalog mutation awaiting admin review.
// Review fields stay null while the status is pending and are set exactly
// once by the review transition.
type PendingChange struct {
	ID           int             `json:"id" db:"id"`
	SubmittedBy  int             `json:"submitted_by" db:"submitted_by"`
	Action       string          `json:"action" db:"action"`
	ResourceType string          `json:"resource_type" db:"resource_type"`
	ResourceID   *int            `json:"resource_id,omitempty" db:"resource_id"`
	ChangeData   json.RawMessage `json:"change_data" db:"change_data"`
	PreviousData json.RawMessage `json:"previous_data,omitempty" db:"previous_data"`
	Status       string          `json:"status" db:"status"`
	ReviewedBy   *int            `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt   *time.Time      `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewNotes  *string         `json:"review_notes,omitempty" db:"review_notes"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// IsTerminal reports whether the change has been reviewed.
func (p *PendingChange) IsTerminal() bool {
	return p.Status != ChangeStatusPending
}

// SubmitChangeRequest editor submission payload. ChangeData is stored as-is;
// its shape is validated by whoever applies the change, not here.
type SubmitChangeRequest struct {
	Action       string          `json:"action"`
	ResourceType string          `json:"resource_type"`
	ResourceID   *int            `json:"resource_id,omitempty"`
	ChangeData   json.RawMessage `json:"change_data"`
	PreviousData json.RawMessage `json:"previous_data,omitempty"`
}

// Validate checks the submission envelope.
func (r *SubmitChangeRequest) Validate() error {
	switch r.Action {
	case ChangeActionCreate, ChangeActionUpdate, ChangeActionDelete:
	default:
		return fmt.Errorf("unknown action: %s", r.Action)
	}
	if r.ResourceType == "" {
		return fmt.Errorf("resource_type is required")
	}
	if r.Action != ChangeActionCreate && r.ResourceID == nil {
		return fmt.Errorf("resource_id is required for %s", r.Action)
	}
	if len(r.ChangeData) == 0 && r.Action != ChangeActionDelete {
		return fmt.Errorf("change_data is required for %s", r.Action)
	}
	return nil
}

// ReviewRequest admin decision payload.
type ReviewRequest struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes,omitempty"`
}

// Validate checks that the decision is one of the terminal states.
func (r *ReviewRequest) Validate() error {
	if r.Decision != ChangeStatusApproved && r.Decision != ChangeStatusRejected {
		return fmt.Errorf("decision must be %q or %q", ChangeStatusApproved, ChangeStatusRejected)
	}
	return nil
}

// ReviewResult is what the review endpoint returns: the terminal record plus
// the outcome of the follow-up apply step for approved changes. The review
// decision stands even when the apply step fails.
type ReviewResult struct {
	Change     *PendingChange `json:"change"`
	Applied    bool           `json:"applied"`
	ApplyError string         `json:"apply_error,omitempty"`
}
