package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

func pendingChangeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "submitted_by", "action", "resource_type", "resource_id",
		"change_data", "previous_data", "status", "reviewed_by", "reviewed_at",
		"review_notes", "created_at",
	})
}

func TestPendingChangeRepository_Create(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPendingChangeRepository(db)

	changeData := []byte(`{"name":"Solar Kit"}`)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO pending_changes")).
		WithArgs(42, "create", "product", nil, changeData, nil).
		WillReturnRows(pendingChangeRows().AddRow(
			7, 42, "create", "product", nil,
			changeData, nil, "pending", nil, nil, nil, time.Now(),
		))

	// Act
	change, err := repo.Create(42, &models.SubmitChangeRequest{
		Action:       models.ChangeActionCreate,
		ResourceType: "product",
		ChangeData:   changeData,
	})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 7, change.ID)
	assert.Equal(t, models.ChangeStatusPending, change.Status)
	assert.Nil(t, change.ReviewedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingChangeRepository_Review_WinnerGetsRow(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPendingChangeRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE pending_changes")).
		WithArgs("approved", 1, "ok", 7).
		WillReturnRows(pendingChangeRows().AddRow(
			7, 42, "update", "product", 3,
			[]byte(`{"name":"New"}`), []byte(`{"name":"Old"}`),
			"approved", 1, now, "ok", now.Add(-time.Hour),
		))

	// Act
	change, err := repo.Review(7, 1, models.ChangeStatusApproved, "ok")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.ChangeStatusApproved, change.Status)
	assert.NotNil(t, change.ReviewedBy)
	assert.Equal(t, 1, *change.ReviewedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingChangeRepository_Review_LoserMatchesNoRow(t *testing.T) {
	// Arrange: the conditional WHERE status = 'pending' clause means a
	// change that was reviewed in the meantime matches nothing.
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPendingChangeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE pending_changes")).
		WithArgs("rejected", 2, "", 7).
		WillReturnRows(pendingChangeRows())

	// Act
	change, err := repo.Review(7, 2, models.ChangeStatusRejected, "")

	// Assert
	assert.ErrorIs(t, err, models.ErrChangeNotFound)
	assert.Nil(t, change)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingChangeRepository_GetByID_NotFound(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPendingChangeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs(99).
		WillReturnRows(pendingChangeRows())

	// Act
	change, err := repo.GetByID(99)

	// Assert
	assert.ErrorIs(t, err, models.ErrChangeNotFound)
	assert.Nil(t, change)
}

func TestPendingChangeRepository_Delete_NotFound(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewPendingChangeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pending_changes")).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Act
	err = repo.Delete(99)

	// Assert
	assert.ErrorIs(t, err, models.ErrChangeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
