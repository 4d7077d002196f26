package user

import (
	"fmt"
	"time"

	"garagehub/models"
	"garagehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// RegisterUser creates a new user account and returns a signed token.
func (s *DefaultUserService) RegisterUser(user models.User) (*AuthResponse, error) {
	logger := utils.GetLogger()

	if user.Email == "" || user.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if user.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	existing, err := s.Repo.GetByEmail(user.Email)
	if err != nil {
		logger.Error("Failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	user.PasswordHash = string(hashedPassword)
	user.Password = ""

	user.ID = uuid.New().String()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.Repo.Create(&user); err != nil {
		logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := utils.GenerateToken(user.ID, user.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{ID: user.ID, Token: token, Name: user.Name, Email: user.Email}, nil
}

// AuthenticateUser verifies email/password and returns a signed token.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{ID: u.ID, Token: token, Name: u.Name, Email: u.Email}, nil
}

// GetUserByID fetches a user profile.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// UpdateUser applies non-empty fields as a partial update.
func (s *DefaultUserService) UpdateUser(user models.User) (*models.User, error) {
	if user.ID == "" {
		return nil, fmt.Errorf("user ID is required for update")
	}
	existing, err := s.Repo.GetByID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", user.ID, err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if user.Name != "" {
		existing.Name = user.Name
	}
	if user.Email != "" {
		existing.Email = user.Email
	}
	if user.PhoneNumber != "" {
		existing.PhoneNumber = user.PhoneNumber
	}
	if user.Vehicles != nil {
		existing.Vehicles = user.Vehicles
	}
	existing.UpdatedAt = time.Now()

	if err := s.Repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return existing, nil
}

// DeleteUser removes a user account.
func (s *DefaultUserService) DeleteUser(id string) error {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch user %s: %w", id, err)
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.Repo.Delete(id)
}
