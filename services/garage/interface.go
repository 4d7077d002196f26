package garage

import (
	"errors"

	garageRepo "garagehub/database/repository/garage"
	"garagehub/models"
)

var (
	// ErrNotFound means the garage does not exist.
	ErrNotFound = errors.New("garage not found")
	// ErrNotOwner means the acting user does not own the garage.
	ErrNotOwner = errors.New("only the garage owner may do this")
)

// GarageService manages the garage directory and ownership checks.
type GarageService interface {
	Create(garage models.Garage) (*models.Garage, error)
	GetByID(id string) (*models.Garage, error)
	GetAll() ([]models.Garage, error)
	Update(garage models.Garage) (*models.Garage, error)
	Delete(id string) error
	// RequireOwner returns ErrNotOwner unless userID owns the garage.
	RequireOwner(garageID, userID string) error
}

// DefaultGarageService is the production implementation.
type DefaultGarageService struct {
	Repo garageRepo.GarageRepository
}
