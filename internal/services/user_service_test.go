package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/mskard-business-solutions/gogreen-backend/internal/auth"
	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// MockUserRepository mocks UserRepositoryInterface.
type MockUserRepository struct {
	mock.Mock
}

var _ interfaces.UserRepositoryInterface = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(user *models.CreateUserRequest) (*models.User, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) GetByID(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) Update(id int, user *models.UpdateUserRequest) (*models.User, error) {
	args := m.Called(id, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}
func (m *MockUserRepository) GetAll(limit, offset int) ([]*models.User, int, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]*models.User), args.Int(1), args.Error(2)
}

func TestUserService_Register_ForcesEditorRole(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	req := &models.CreateUserRequest{
		Name:     "Test Editor",
		Email:    "editor@example.com",
		Password: "secret123",
	}

	mockRepo.On("GetByEmail", "editor@example.com").Return(nil, models.ErrUserNotFound)
	mockRepo.On("Create", mock.MatchedBy(func(r *models.CreateUserRequest) bool {
		return r.Role == models.RoleEditor && r.Password != "secret123"
	})).Return(&models.User{ID: 5, Email: "editor@example.com", Role: models.RoleEditor}, nil)

	// Act
	user, err := service.Register(req)

	// Assert: role defaults to editor and the password is stored hashed.
	assert.NoError(t, err)
	assert.Equal(t, models.RoleEditor, user.Role)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Register_AdminRoleRejected(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	mockRepo.On("GetByEmail", "sneaky@example.com").Return(nil, models.ErrUserNotFound)

	// Act
	user, err := service.Register(&models.CreateUserRequest{
		Name:     "Sneaky",
		Email:    "sneaky@example.com",
		Password: "secret123",
		Role:     models.RoleAdmin,
	})

	// Assert
	assert.Error(t, err)
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	mockRepo.On("GetByEmail", "taken@example.com").Return(&models.User{ID: 1}, nil)

	// Act
	user, err := service.Register(&models.CreateUserRequest{
		Name:     "Test",
		Email:    "taken@example.com",
		Password: "secret123",
	})

	// Assert
	assert.ErrorIs(t, err, models.ErrEmailTaken)
	assert.Nil(t, user)
}

func TestUserService_Login_Success(t *testing.T) {
	// Arrange
	auth.Init("test-secret")

	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	mockRepo.On("GetByEmail", "editor@example.com").Return(&models.User{
		ID:       5,
		Email:    "editor@example.com",
		Password: string(hashed),
		Role:     models.RoleEditor,
		IsActive: true,
	}, nil)

	// Act
	resp, err := service.Login(&models.LoginRequest{Email: "editor@example.com", Password: "secret123"})

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 5, resp.User.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	mockRepo.On("GetByEmail", "editor@example.com").Return(&models.User{
		ID:       5,
		Email:    "editor@example.com",
		Password: string(hashed),
		IsActive: true,
	}, nil)

	// Act
	resp, err := service.Login(&models.LoginRequest{Email: "editor@example.com", Password: "wrong"})

	// Assert
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestUserService_UpdateUser_AdminDemotionBlocked(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	mockRepo.On("GetByID", 1).Return(&models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}, nil)

	editorRole := models.RoleEditor

	// Act
	user, err := service.UpdateUser(1, &models.UpdateUserRequest{Role: &editorRole})

	// Assert
	assert.ErrorIs(t, err, models.ErrAdminProtected)
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_UpdateUser_AdminDeactivationBlocked(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	mockRepo.On("GetByID", 1).Return(&models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}, nil)

	inactive := false

	// Act
	user, err := service.UpdateUser(1, &models.UpdateUserRequest{IsActive: &inactive})

	// Assert
	assert.ErrorIs(t, err, models.ErrAdminProtected)
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_DeleteUser_AdminBlocked(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	mockRepo.On("GetByID", 1).Return(&models.User{ID: 1, Role: models.RoleAdmin}, nil)

	// Act
	err := service.DeleteUser(1)

	// Assert
	assert.ErrorIs(t, err, models.ErrAdminProtected)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestUserService_DeleteUser_EditorAllowed(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	mockRepo.On("GetByID", 5).Return(&models.User{ID: 5, Role: models.RoleEditor}, nil)
	mockRepo.On("Delete", 5).Return(nil)

	// Act
	err := service.DeleteUser(5)

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUserService_EnsureAdmin_ExistingAccountKept(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	existing := &models.User{ID: 1, Email: "admin@example.com", Role: models.RoleAdmin}
	mockRepo.On("GetByEmail", "admin@example.com").Return(existing, nil)

	// Act
	user, err := service.EnsureAdmin("admin@example.com", "irrelevant")

	// Assert: seeding is idempotent.
	assert.NoError(t, err)
	assert.Equal(t, existing, user)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUserService_EnsureAdmin_CreatesWhenMissing(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo)

	mockRepo.On("GetByEmail", "admin@example.com").Return(nil, models.ErrUserNotFound)
	mockRepo.On("Create", mock.MatchedBy(func(r *models.CreateUserRequest) bool {
		return r.Role == models.RoleAdmin && r.Email == "admin@example.com"
	})).Return(&models.User{ID: 1, Email: "admin@example.com", Role: models.RoleAdmin}, nil)

	// Act
	user, err := service.EnsureAdmin("admin@example.com", "changeme")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	mockRepo.AssertExpectations(t)
}
