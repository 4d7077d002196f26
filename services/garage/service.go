package garage

import (
	"fmt"
	"time"

	"garagehub/models"

	"github.com/google/uuid"
)

// Create registers a new garage.
func (s *DefaultGarageService) Create(garage models.Garage) (*models.Garage, error) {
	if garage.Name == "" {
		return nil, fmt.Errorf("garage name is required")
	}
	if garage.OwnerID == "" {
		return nil, fmt.Errorf("owner_id is required")
	}

	now := time.Now()
	garage.ID = uuid.New().String()
	garage.CreatedAt = now
	garage.UpdatedAt = now

	if err := s.Repo.Create(&garage); err != nil {
		return nil, fmt.Errorf("failed to create garage: %w", err)
	}
	return &garage, nil
}

// GetByID fetches one garage.
func (s *DefaultGarageService) GetByID(id string) (*models.Garage, error) {
	g, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch garage %s: %w", id, err)
	}
	if g == nil {
		return nil, ErrNotFound
	}
	return g, nil
}

// GetAll lists all garages.
func (s *DefaultGarageService) GetAll() ([]models.Garage, error) {
	garages, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list garages: %w", err)
	}
	return garages, nil
}

// Update applies non-empty fields as a partial update.
func (s *DefaultGarageService) Update(garage models.Garage) (*models.Garage, error) {
	existing, err := s.Repo.GetByID(garage.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch garage %s: %w", garage.ID, err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if garage.Name != "" {
		existing.Name = garage.Name
	}
	if garage.Location != "" {
		existing.Location = garage.Location
	}
	if garage.PhoneNumber != "" {
		existing.PhoneNumber = garage.PhoneNumber
	}
	if garage.Services != nil {
		existing.Services = garage.Services
	}
	existing.UpdatedAt = time.Now()

	if err := s.Repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update garage %s: %w", garage.ID, err)
	}
	return existing, nil
}

// Delete removes a garage.
func (s *DefaultGarageService) Delete(id string) error {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch garage %s: %w", id, err)
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.Repo.Delete(id)
}

// RequireOwner returns ErrNotOwner unless userID owns the garage.
func (s *DefaultGarageService) RequireOwner(garageID, userID string) error {
	g, err := s.Repo.GetByID(garageID)
	if err != nil {
		return fmt.Errorf("failed to fetch garage %s: %w", garageID, err)
	}
	if g == nil {
		return ErrNotFound
	}
	if g.OwnerID != userID {
		return ErrNotOwner
	}
	return nil
}
