package product

import (
	"fmt"
	"time"

	"garagehub/models"

	"github.com/google/uuid"
)

// Create adds a product to a garage's catalog.
func (s *DefaultProductService) Create(p models.Product) (*models.Product, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if p.GarageID == "" {
		return nil, fmt.Errorf("garage_id is required")
	}
	if p.Price < 0 {
		return nil, fmt.Errorf("price must not be negative")
	}
	if p.StockQuantity < 0 {
		return nil, fmt.Errorf("stock_quantity must not be negative")
	}

	now := time.Now()
	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.Repo.Create(&p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &p, nil
}

// GetByID fetches one product.
func (s *DefaultProductService) GetByID(id string) (*models.Product, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// GetByGarage lists a garage's products.
func (s *DefaultProductService) GetByGarage(garageID string) ([]models.Product, error) {
	products, err := s.Repo.GetByGarage(garageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for garage %s: %w", garageID, err)
	}
	return products, nil
}

// Update applies non-zero fields as a partial update. Stock is adjusted
// through orders, not here, except for explicit restocks via StockQuantity.
func (s *DefaultProductService) Update(p models.Product) (*models.Product, error) {
	existing, err := s.Repo.GetByID(p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", p.ID, err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if p.Name != "" {
		existing.Name = p.Name
	}
	if p.Description != "" {
		existing.Description = p.Description
	}
	if p.Price > 0 {
		existing.Price = p.Price
	}
	if p.StockQuantity > 0 {
		existing.StockQuantity = p.StockQuantity
	}
	existing.UpdatedAt = time.Now()

	if err := s.Repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", p.ID, err)
	}
	return existing, nil
}
