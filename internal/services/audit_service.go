package services

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// EventPublisher forwards audit entries to an external event stream.
type EventPublisher interface {
	Publish(event models.AuditEvent) error
}

// AuditService records and queries the audit trail. Recording is
// best-effort: the audit trail must never become an availability hazard
// for the operation being audited, so storage and publish failures are
// logged and swallowed.
type AuditService struct {
	auditRepo interfaces.AuditRepositoryInterface
	publisher EventPublisher // optional
}

// NewAuditService creates a new service. publisher may be nil.
func NewAuditService(auditRepo interfaces.AuditRepositoryInterface, publisher EventPublisher) *AuditService {
	return &AuditService{auditRepo: auditRepo, publisher: publisher}
}

// Record appends an audit entry after the primary operation has succeeded.
// Returns the stored entry, or nil when recording failed.
func (s *AuditService) Record(entry *models.AuditLog) *models.AuditLog {
	stored, err := s.auditRepo.Create(entry)
	if err != nil {
		log.Error().
			Err(err).
			Str("action", entry.Action).
			Str("entity_type", entry.EntityType).
			Msg("Audit entry could not be recorded")
		return nil
	}

	if s.publisher != nil {
		event := models.AuditEvent{
			Service:    "gogreen-backend",
			Action:     stored.Action,
			EntityType: stored.EntityType,
			EntityID:   stored.EntityID,
			Actor:      stored.UserID,
			Details:    stored.Details,
			OccurredAt: stored.CreatedAt,
		}
		if err := s.publisher.Publish(event); err != nil {
			log.Warn().
				Err(err).
				Str("action", stored.Action).
				Msg("Audit event could not be published")
		}
	}

	return stored
}

// GetByUser lists entries by acting user, newest first.
func (s *AuditService) GetByUser(userID int, limit, offset int) ([]*models.AuditLog, error) {
	limit, offset = clampPagination(limit, offset)
	return s.auditRepo.GetByUser(userID, limit, offset)
}

// GetByEntity lists entries touching a resource, newest first.
func (s *AuditService) GetByEntity(entityType string, entityID int, limit, offset int) ([]*models.AuditLog, error) {
	limit, offset = clampPagination(limit, offset)
	return s.auditRepo.GetByEntity(entityType, entityID, limit, offset)
}

// GetByDateRange lists entries in a time window, newest first.
func (s *AuditService) GetByDateRange(start, end time.Time, limit, offset int) ([]*models.AuditLog, error) {
	limit, offset = clampPagination(limit, offset)
	return s.auditRepo.GetByDateRange(start, end, limit, offset)
}

// clampPagination applies the default result cap.
func clampPagination(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
