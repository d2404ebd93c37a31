package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// MockPendingChangeRepository mocks PendingChangeRepositoryInterface.
type MockPendingChangeRepository struct {
	mock.Mock
}

var _ interfaces.PendingChangeRepositoryInterface = (*MockPendingChangeRepository)(nil)

func (m *MockPendingChangeRepository) Create(submittedBy int, req *models.SubmitChangeRequest) (*models.PendingChange, error) {
	args := m.Called(submittedBy, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingChange), args.Error(1)
}
func (m *MockPendingChangeRepository) GetByID(id int) (*models.PendingChange, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingChange), args.Error(1)
}
func (m *MockPendingChangeRepository) GetByStatus(status string, limit, offset int) ([]*models.PendingChange, error) {
	args := m.Called(status, limit, offset)
	return args.Get(0).([]*models.PendingChange), args.Error(1)
}
func (m *MockPendingChangeRepository) GetBySubmitter(userID int, limit, offset int) ([]*models.PendingChange, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]*models.PendingChange), args.Error(1)
}
func (m *MockPendingChangeRepository) Review(id, reviewerID int, status, notes string) (*models.PendingChange, error) {
	args := m.Called(id, reviewerID, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingChange), args.Error(1)
}
func (m *MockPendingChangeRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAuditService mocks AuditServiceInterface.
type MockAuditService struct {
	mock.Mock
}

var _ interfaces.AuditServiceInterface = (*MockAuditService)(nil)

func (m *MockAuditService) Record(entry *models.AuditLog) *models.AuditLog {
	args := m.Called(entry)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.AuditLog)
}
func (m *MockAuditService) GetByUser(userID int, limit, offset int) ([]*models.AuditLog, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}
func (m *MockAuditService) GetByEntity(entityType string, entityID int, limit, offset int) ([]*models.AuditLog, error) {
	args := m.Called(entityType, entityID, limit, offset)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}
func (m *MockAuditService) GetByDateRange(start, end time.Time, limit, offset int) ([]*models.AuditLog, error) {
	args := m.Called(start, end, limit, offset)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

func submitRequest() *models.SubmitChangeRequest {
	return &models.SubmitChangeRequest{
		Action:       models.ChangeActionCreate,
		ResourceType: "product",
		ChangeData:   json.RawMessage(`{"name":"Mini Solar Panel","slug":"mini-solar-panel"}`),
	}
}

func TestApprovalService_Submit_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockPendingChangeRepository)
	mockAudit := new(MockAuditService)
	service := NewApprovalService(mockRepo, mockAudit)

	req := submitRequest()
	created := &models.PendingChange{
		ID:           7,
		SubmittedBy:  42,
		Action:       req.Action,
		ResourceType: req.ResourceType,
		ChangeData:   req.ChangeData,
		Status:       models.ChangeStatusPending,
		CreatedAt:    time.Now(),
	}

	mockRepo.On("Create", 42, req).Return(created, nil)
	mockAudit.On("Record", mock.MatchedBy(func(entry *models.AuditLog) bool {
		return entry.Action == models.AuditActionCreate &&
			entry.EntityType == "pending_change" &&
			entry.EntityID != nil && *entry.EntityID == 7 &&
			entry.UserID != nil && *entry.UserID == 42
	})).Return(&models.AuditLog{ID: 1})

	// Act
	change, err := service.Submit(42, models.RoleEditor, req, models.RequestMeta{IPAddress: "10.0.0.1"})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, created, change)
	assert.Equal(t, models.ChangeStatusPending, change.Status)
	mockRepo.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
}

func TestApprovalService_Submit_AdminRejected(t *testing.T) {
	// Arrange
	mockRepo := new(MockPendingChangeRepository)
	mockAudit := new(MockAuditService)
	service := NewApprovalService(mockRepo, mockAudit)

	// Act
	change, err := service.Submit(1, models.RoleAdmin, submitRequest(), models.RequestMeta{})

	// Assert: admins never enter the approval queue, and nothing is stored
	// or audited for the refused attempt.
	assert.ErrorIs(t, err, models.ErrAdminDirectApply)
	assert.Nil(t, change)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockAudit.AssertNotCalled(t, "Record", mock.Anything)
}

func TestApprovalService_Submit_RepoErrorSkipsAudit(t *testing.T) {
	// Arrange
	mockRepo := new(MockPendingChangeRepository)
	mockAudit := new(MockAuditService)
	service := NewApprovalService(mockRepo, mockAudit)

	req := submitRequest()
	mockRepo.On("Create", 42, req).Return(nil, errors.New("db down"))

	// Act
	change, err := service.Submit(42, models.RoleEditor, req, models.RequestMeta{})

	// Assert: audit entries are only written after the primary operation
	// succeeds.
	assert.Error(t, err)
	assert.Nil(t, change)
	mockAudit.AssertNotCalled(t, "Record", mock.Anything)
}

func TestApprovalService_Review_ApproveAuditsApprove(t *testing.T) {
	// Arrange
	mockRepo := new(MockPendingChangeRepository)
	mockAudit := new(MockAuditService)
	service := NewApprovalService(mockRepo, mockAudit)

	now := time.Now()
	reviewerID := 1
	reviewed := &models.PendingChange{
		ID:           7,
		SubmittedBy:  42,
		Action:       models.ChangeActionCreate,
		ResourceType: "product",
		Status:       models.ChangeStatusApproved,
		ReviewedBy:   &reviewerID,
		ReviewedAt:   &now,
	}

	mockRepo.On("Review", 7, 1, models.ChangeStatusApproved, "looks good").Return(reviewed, nil)
	mockAudit.On("Record", mock.MatchedBy(func(entry *models.AuditLog) bool {
		return entry.Action == models.AuditActionApprove &&
			entry.EntityType == "pending_change" &&
			entry.EntityID != nil && *entry.EntityID == 7
	})).Return(&models.AuditLog{ID: 2})

	// Act
	change, err := service.Review(7, 1, &models.ReviewRequest{
		Decision: models.ChangeStatusApproved,
		Notes:    "looks good",
	}, models.RequestMeta{})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.ChangeStatusApproved, change.Status)
	assert.True(t, change.IsTerminal())
	mockRepo.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
}

func TestApprovalService_Review_RejectAuditsReject(t *testing.T) {
	// Arrange
	mockRepo := new(MockPendingChangeRepository)
	mockAudit := new(MockAuditService)
	service := NewApprovalService(mockRepo, mockAudit)

	reviewed := &models.PendingChange{
		ID:           8,
		SubmittedBy:  42,
		Action:       models.ChangeActionDelete,
		ResourceType: "category",
		Status:       models.ChangeStatusRejected,
	}

	mockRepo.On("Review", 8, 1, models.ChangeStatusRejected, "wrong target").Return(reviewed, nil)
	mockAudit.On("Record", mock.MatchedBy(func(entry *models.AuditLog) bool {
		return entry.Action == models.AuditActionReject
	})).Return(&models.AuditLog{ID: 3})

	// Act
	change, err := service.Review(8, 1, &models.ReviewRequest{
		Decision: models.ChangeStatusRejected,
		Notes:    "wrong target",
	}, models.RequestMeta{})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.ChangeStatusRejected, change.Status)
	mockAudit.AssertExpectations(t)
}

func TestApprovalService_Review_AlreadyReviewed(t *testing.T) {
	// Arrange: the conditional update matched no pending row because the
	// change is already terminal. This is also what the losing side of a
	// concurrent review race sees.
	mockRepo := new(MockPendingChangeRepository)
	mockAudit := new(MockAuditService)
	service := NewApprovalService(mockRepo, mockAudit)

	mockRepo.On("Review", 7, 1, models.ChangeStatusApproved, "").Return(nil, models.ErrChangeNotFound)
	mockRepo.On("GetByID", 7).Return(&models.PendingChange{
		ID:     7,
		Status: models.ChangeStatusRejected,
	}, nil)

	// Act
	change, err := service.Review(7, 1, &models.ReviewRequest{Decision: models.ChangeStatusApproved}, models.RequestMeta{})

	// Assert: the stored decision stands and no second audit entry appears.
	assert.ErrorIs(t, err, models.ErrAlreadyReviewed)
	assert.Nil(t, change)
	mockAudit.AssertNotCalled(t, "Record", mock.Anything)
}

func TestApprovalService_Review_NotFound(t *testing.T) {
	// Arrange
	mockRepo := new(MockPendingChangeRepository)
	mockAudit := new(MockAuditService)
	service := NewApprovalService(mockRepo, mockAudit)

	mockRepo.On("Review", 99, 1, models.ChangeStatusApproved, "").Return(nil, models.ErrChangeNotFound)
	mockRepo.On("GetByID", 99).Return(nil, models.ErrChangeNotFound)

	// Act
	change, err := service.Review(99, 1, &models.ReviewRequest{Decision: models.ChangeStatusApproved}, models.RequestMeta{})

	// Assert
	assert.ErrorIs(t, err, models.ErrChangeNotFound)
	assert.Nil(t, change)
	mockAudit.AssertNotCalled(t, "Record", mock.Anything)
}

func TestApprovalService_Review_AuditFailureDoesNotBlock(t *testing.T) {
	// Arrange: Record returning nil means the audit write failed and was
	// swallowed; the review outcome must be unaffected.
	mockRepo := new(MockPendingChangeRepository)
	mockAudit := new(MockAuditService)
	service := NewApprovalService(mockRepo, mockAudit)

	reviewed := &models.PendingChange{ID: 7, Status: models.ChangeStatusApproved}
	mockRepo.On("Review", 7, 1, models.ChangeStatusApproved, "").Return(reviewed, nil)
	mockAudit.On("Record", mock.Anything).Return(nil)

	// Act
	change, err := service.Review(7, 1, &models.ReviewRequest{Decision: models.ChangeStatusApproved}, models.RequestMeta{})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, reviewed, change)
}

func TestApprovalService_ListPending(t *testing.T) {
	// Arrange
	mockRepo := new(MockPendingChangeRepository)
	mockAudit := new(MockAuditService)
	service := NewApprovalService(mockRepo, mockAudit)

	expected := []*models.PendingChange{{ID: 2}, {ID: 1}}
	mockRepo.On("GetByStatus", models.ChangeStatusPending, 20, 0).Return(expected, nil)

	// Act
	changes, err := service.ListPending(0, 0)

	// Assert: zero limit falls back to the default page size.
	assert.NoError(t, err)
	assert.Equal(t, expected, changes)
	mockRepo.AssertExpectations(t)
}

func TestApprovalService_Purge_Audited(t *testing.T) {
	// Arrange
	mockRepo := new(MockPendingChangeRepository)
	mockAudit := new(MockAuditService)
	service := NewApprovalService(mockRepo, mockAudit)

	mockRepo.On("Delete", 7).Return(nil)
	mockAudit.On("Record", mock.MatchedBy(func(entry *models.AuditLog) bool {
		return entry.Action == models.AuditActionDelete && entry.EntityType == "pending_change"
	})).Return(&models.AuditLog{ID: 4})

	// Act
	err := service.Purge(7, 1, models.RequestMeta{})

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
}
