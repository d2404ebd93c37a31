package repository

import (
	"database/sql"
	"fmt"

	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// PendingChangeRepository pending change database operations.
type PendingChangeRepository struct {
	db *sql.DB
}

// NewPendingChangeRepository creates a new repository.
func NewPendingChangeRepository(db *sql.DB) *PendingChangeRepository {
	return &PendingChangeRepository{db: db}
}

const pendingChangeColumns = `id, submitted_by, action, resource_type, resource_id,
		change_data, previous_data, status, reviewed_by, reviewed_at, review_notes, created_at`

// Create stores a new pending change with status pending and unset review fields.
func (r *PendingChangeRepository) Create(submittedBy int, req *models.SubmitChangeRequest) (*models.PendingChange, error) {
	query := `
		INSERT INTO pending_changes (submitted_by, action, resource_type, resource_id, change_data, previous_data, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING ` + pendingChangeColumns

	row := r.db.QueryRow(
		query,
		submittedBy,
		req.Action,
		req.ResourceType,
		req.ResourceID,
		nullableJSON(req.ChangeData),
		nullableJSON(req.PreviousData),
	)

	change, err := scanPendingChange(row)
	if err != nil {
		return nil, fmt.Errorf("creating pending change: %w", err)
	}

	return change, nil
}

// GetByID finds a pending change by id.
func (r *PendingChangeRepository) GetByID(id int) (*models.PendingChange, error) {
	query := `SELECT ` + pendingChangeColumns + ` FROM pending_changes WHERE id = $1`

	change, err := scanPendingChange(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrChangeNotFound
		}
		return nil, fmt.Errorf("querying pending change: %w", err)
	}

	return change, nil
}

// GetByStatus lists changes in the given status, newest first.
func (r *PendingChangeRepository) GetByStatus(status string, limit, offset int) ([]*models.PendingChange, error) {
	query := `
		SELECT ` + pendingChangeColumns + `
		FROM pending_changes
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryChanges(query, status, limit, offset)
}

// GetBySubmitter lists a user's changes, newest first.
func (r *PendingChangeRepository) GetBySubmitter(userID int, limit, offset int) ([]*models.PendingChange, error) {
	query := `
		SELECT ` + pendingChangeColumns + `
		FROM pending_changes
		WHERE submitted_by = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryChanges(query, userID, limit, offset)
}

// Review transitions a change out of pending. The status check and the
// update are a single conditional statement so that two concurrent
// reviewers cannot both move the same change to a terminal state; the
// loser's update matches zero rows.
func (r *PendingChangeRepository) Review(id, reviewerID int, status, notes string) (*models.PendingChange, error) {
	query := `
		UPDATE pending_changes
		SET status = $1, reviewed_by = $2, reviewed_at = NOW(), review_notes = $3
		WHERE id = $4 AND status = 'pending'
		RETURNING ` + pendingChangeColumns

	change, err := scanPendingChange(r.db.QueryRow(query, status, reviewerID, notes, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrChangeNotFound
		}
		return nil, fmt.Errorf("reviewing pending change: %w", err)
	}

	return change, nil
}

// Delete removes a change regardless of status.
func (r *PendingChangeRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM pending_changes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting pending change: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if affected == 0 {
		return models.ErrChangeNotFound
	}

	return nil
}

func (r *PendingChangeRepository) queryChanges(query string, args ...interface{}) ([]*models.PendingChange, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing pending changes: %w", err)
	}
	defer rows.Close()

	var changes []*models.PendingChange
	for rows.Next() {
		change, err := scanPendingChange(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning pending change row: %w", err)
		}
		changes = append(changes, change)
	}

	return changes, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPendingChange(row rowScanner) (*models.PendingChange, error) {
	var change models.PendingChange
	var changeData, previousData []byte

	err := row.Scan(
		&change.ID,
		&change.SubmittedBy,
		&change.Action,
		&change.ResourceType,
		&change.ResourceID,
		&changeData,
		&previousData,
		&change.Status,
		&change.ReviewedBy,
		&change.ReviewedAt,
		&change.ReviewNotes,
		&change.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	change.ChangeData = changeData
	change.PreviousData = previousData

	return &change, nil
}

// nullableJSON maps empty payloads to NULL.
func nullableJSON(data []byte) interface{} {
	if len(data) == 0 {
		return nil
	}
	return data
}
