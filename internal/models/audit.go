package models

import (
	"encoding/json"
	"time"
)

// Audit actions. create/update/delete cover direct mutations and pending
// change submissions, approve/reject cover review decisions.
const (
	AuditActionCreate  = "create"
	AuditActionUpdate  = "update"
	AuditActionDelete  = "delete"
	AuditActionLogin   = "login"
	AuditActionLogout  = "logout"
	AuditActionApprove = "approve"
	AuditActionReject  = "reject"
)

// AuditLog is an immutable trust record of a completed state-changing action.
// Rows are only ever inserted; nothing in the application updates or deletes them.
type AuditLog struct {
	ID         int             `json:"id" db:"id"`
	UserID     *int            `json:"user_id" db:"user_id"`
	Action     string          `json:"action" db:"action"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityID   *int            `json:"entity_id,omitempty" db:"entity_id"`
	Details    json.RawMessage `json:"details,omitempty" db:"details"`
	IPAddress  string          `json:"ip_address" db:"ip_address"`
	UserAgent  string          `json:"user_agent" db:"user_agent"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// RequestMeta carries the requester context recorded alongside audit entries.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// AuditEvent is the wire shape published to the audit topic when event
// publishing is enabled. It mirrors the stored row minus the serial id.
type AuditEvent struct {
	Service    string          `json:"service"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   *int            `json:"entity_id,omitempty"`
	Actor      *int            `json:"actor,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}
