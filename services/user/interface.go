package user

import (
	"errors"

	userRepo "garagehub/database/repository/user"
	"garagehub/models"
)

var (
	// ErrNotFound means the user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken means another account already uses the email.
	ErrEmailTaken = errors.New("a user with this email already exists")
	// ErrInvalidCredentials means email/password authentication failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthResponse contains the user's ID, token, and profile basics.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UserService manages customer accounts.
type UserService interface {
	RegisterUser(user models.User) (*AuthResponse, error)
	AuthenticateUser(email, password string) (*AuthResponse, error)
	GetUserByID(id string) (*models.User, error)
	UpdateUser(user models.User) (*models.User, error)
	DeleteUser(id string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
