package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// MockAuditRepository mocks AuditRepositoryInterface.
type MockAuditRepository struct {
	mock.Mock
}

var _ interfaces.AuditRepositoryInterface = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) Create(entry *models.AuditLog) (*models.AuditLog, error) {
	args := m.Called(entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuditLog), args.Error(1)
}
func (m *MockAuditRepository) GetByUser(userID int, limit, offset int) ([]*models.AuditLog, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}
func (m *MockAuditRepository) GetByEntity(entityType string, entityID int, limit, offset int) ([]*models.AuditLog, error) {
	args := m.Called(entityType, entityID, limit, offset)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}
func (m *MockAuditRepository) GetByDateRange(start, end time.Time, limit, offset int) ([]*models.AuditLog, error) {
	args := m.Called(start, end, limit, offset)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

// MockEventPublisher mocks EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

var _ EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) Publish(event models.AuditEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func TestAuditService_Record_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockAuditRepository)
	service := NewAuditService(mockRepo, nil)

	userID := 42
	entry := &models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionApprove,
		EntityType: "pending_change",
	}
	stored := &models.AuditLog{
		ID:         10,
		UserID:     &userID,
		Action:     models.AuditActionApprove,
		EntityType: "pending_change",
		CreatedAt:  time.Now(),
	}

	mockRepo.On("Create", entry).Return(stored, nil)

	// Act
	result := service.Record(entry)

	// Assert
	assert.Equal(t, stored, result)
	mockRepo.AssertExpectations(t)
}

func TestAuditService_Record_StorageFailureSwallowed(t *testing.T) {
	// Arrange
	mockRepo := new(MockAuditRepository)
	service := NewAuditService(mockRepo, nil)

	mockRepo.On("Create", mock.Anything).Return(nil, errors.New("db down"))

	// Act: Record has no error return at all; a failed write only yields nil.
	result := service.Record(&models.AuditLog{Action: models.AuditActionCreate, EntityType: "product"})

	// Assert
	assert.Nil(t, result)
	mockRepo.AssertExpectations(t)
}

func TestAuditService_Record_PublishesEvent(t *testing.T) {
	// Arrange
	mockRepo := new(MockAuditRepository)
	mockPublisher := new(MockEventPublisher)
	service := NewAuditService(mockRepo, mockPublisher)

	entityID := 7
	stored := &models.AuditLog{
		ID:         11,
		Action:     models.AuditActionReject,
		EntityType: "pending_change",
		EntityID:   &entityID,
		CreatedAt:  time.Now(),
	}
	mockRepo.On("Create", mock.Anything).Return(stored, nil)
	mockPublisher.On("Publish", mock.MatchedBy(func(event models.AuditEvent) bool {
		return event.Action == models.AuditActionReject &&
			event.EntityType == "pending_change" &&
			event.EntityID != nil && *event.EntityID == 7
	})).Return(nil)

	// Act
	result := service.Record(&models.AuditLog{Action: models.AuditActionReject, EntityType: "pending_change"})

	// Assert
	assert.Equal(t, stored, result)
	mockPublisher.AssertExpectations(t)
}

func TestAuditService_Record_PublishFailureSwallowed(t *testing.T) {
	// Arrange
	mockRepo := new(MockAuditRepository)
	mockPublisher := new(MockEventPublisher)
	service := NewAuditService(mockRepo, mockPublisher)

	stored := &models.AuditLog{ID: 12, Action: models.AuditActionLogin, EntityType: "user"}
	mockRepo.On("Create", mock.Anything).Return(stored, nil)
	mockPublisher.On("Publish", mock.Anything).Return(errors.New("broker unreachable"))

	// Act
	result := service.Record(&models.AuditLog{Action: models.AuditActionLogin, EntityType: "user"})

	// Assert: the stored entry is still returned.
	assert.Equal(t, stored, result)
}

func TestAuditService_GetByDateRange_ClampsPagination(t *testing.T) {
	// Arrange
	mockRepo := new(MockAuditRepository)
	service := NewAuditService(mockRepo, nil)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	expected := []*models.AuditLog{{ID: 2}, {ID: 1}}

	mockRepo.On("GetByDateRange", from, to, 20, 0).Return(expected, nil)

	// Act: out-of-range limit and negative offset fall back to defaults.
	entries, err := service.GetByDateRange(from, to, 500, -3)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, expected, entries)
	mockRepo.AssertExpectations(t)
}
