package garageRepo

import "garagehub/models"

// GarageRepository defines data access for garages.
type GarageRepository interface {
	// GetByID retrieves a garage by its unique ID. Returns (nil, nil) when
	// no garage exists.
	GetByID(id string) (*models.Garage, error)
	// GetAll retrieves all garages.
	GetAll() ([]models.Garage, error)
	// Create inserts a new garage record.
	Create(garage *models.Garage) error
	// Update replaces an existing garage record.
	Update(garage *models.Garage) error
	// Delete removes a garage record by its ID.
	Delete(id string) error
}
