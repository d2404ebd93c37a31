package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// AuditRepository audit log database operations. Entries are append-only;
// this repository deliberately exposes no update or delete.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

const auditColumns = `id, user_id, action, entity_type, entity_id, details, ip_address, user_agent, created_at`

// Create appends an audit entry and returns it with id and timestamp.
func (r *AuditRepository) Create(entry *models.AuditLog) (*models.AuditLog, error) {
	query := `
		INSERT INTO audit_logs (user_id, action, entity_type, entity_id, details, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		query,
		entry.UserID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		nullableJSON(entry.Details),
		entry.IPAddress,
		entry.UserAgent,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("creating audit entry: %w", err)
	}

	return entry, nil
}

// GetByUser lists entries by acting user, newest first.
func (r *AuditRepository) GetByUser(userID int, limit, offset int) ([]*models.AuditLog, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryEntries(query, userID, limit, offset)
}

// GetByEntity lists entries touching a resource, newest first.
func (r *AuditRepository) GetByEntity(entityType string, entityID int, limit, offset int) ([]*models.AuditLog, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	return r.queryEntries(query, entityType, entityID, limit, offset)
}

// GetByDateRange lists entries in a time window, newest first.
func (r *AuditRepository) GetByDateRange(start, end time.Time, limit, offset int) ([]*models.AuditLog, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_logs
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	return r.queryEntries(query, start, end, limit, offset)
}

func (r *AuditRepository) queryEntries(query string, args ...interface{}) ([]*models.AuditLog, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		entry, err := scanAuditEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning audit row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanAuditEntry(rows *sql.Rows) (*models.AuditLog, error) {
	var entry models.AuditLog
	var details []byte

	err := rows.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Action,
		&entry.EntityType,
		&entry.EntityID,
		&details,
		&entry.IPAddress,
		&entry.UserAgent,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Details = details

	return &entry, nil
}
