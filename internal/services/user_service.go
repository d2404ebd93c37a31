package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mskard-business-solutions/gogreen-backend/internal/auth"
	"github.com/mskard-business-solutions/gogreen-backend/internal/interfaces"
	"github.com/mskard-business-solutions/gogreen-backend/internal/models"
)

// UserService user business logic.
type UserService struct {
	userRepo interfaces.UserRepositoryInterface
}

// NewUserService creates a new service.
func NewUserService(userRepo interfaces.UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates an editor account. Admin accounts are never created
// through registration; see EnsureAdmin.
func (s *UserService) Register(req *models.CreateUserRequest) (*models.User, error) {
	existingUser, _ := s.userRepo.GetByEmail(req.Email)
	if existingUser != nil {
		return nil, models.ErrEmailTaken
	}

	if req.Role == models.RoleAdmin {
		return nil, fmt.Errorf("admin accounts can only be provisioned by the system")
	}
	req.Role = models.RoleEditor

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	req.Password = string(hashedPassword)

	user, err := s.userRepo.Create(req)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed token.
func (s *UserService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if !user.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &models.LoginResponse{User: user, Token: token}, nil
}

// EnsureAdmin creates the seed admin account when it does not exist yet.
// Called from main with the configured credentials.
func (s *UserService) EnsureAdmin(email, password string) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return nil, fmt.Errorf("checking admin account: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.userRepo.Create(&models.CreateUserRequest{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("creating admin account: %w", err)
	}

	return user, nil
}

// GetUserByID fetches a user.
func (s *UserService) GetUserByID(userID int) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateUser applies a partial update. Admin accounts cannot be demoted or
// deactivated, not even by themselves.
func (s *UserService) UpdateUser(userID int, req *models.UpdateUserRequest) (*models.User, error) {
	target, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if target.Role == models.RoleAdmin {
		if req.Role != nil && *req.Role != models.RoleAdmin {
			return nil, models.ErrAdminProtected
		}
		if req.IsActive != nil && !*req.IsActive {
			return nil, models.ErrAdminProtected
		}
	}

	if req.Email != nil {
		existing, _ := s.userRepo.GetByEmail(*req.Email)
		if existing != nil && existing.ID != userID {
			return nil, models.ErrEmailTaken
		}
	}

	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		hashed := string(hashedPassword)
		req.Password = &hashed
	}

	updatedUser, err := s.userRepo.Update(userID, req)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return updatedUser, nil
}

// DeleteUser removes a user. Admin accounts are never deleted.
func (s *UserService) DeleteUser(userID int) error {
	target, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if target.Role == models.RoleAdmin {
		return models.ErrAdminProtected
	}

	return s.userRepo.Delete(userID)
}

// GetAllUsers lists users with pagination.
func (s *UserService) GetAllUsers(limit, offset int) ([]*models.User, int, error) {
	limit, offset = clampPagination(limit, offset)
	return s.userRepo.GetAll(limit, offset)
}
