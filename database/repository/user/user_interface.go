package userRepo

import "garagehub/models"

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID. Returns (nil, nil) when no
	// user exists.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. Returns (nil, nil)
	// when no user exists.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update replaces an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
}
