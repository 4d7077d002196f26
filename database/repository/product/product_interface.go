package productRepo

import (
	"errors"

	"garagehub/models"
)

// ErrInsufficientStock is returned by DecrementStock when the product has
// fewer units than requested.
var ErrInsufficientStock = errors.New("insufficient product stock")

// ProductRepository defines data access for garage inventory.
type ProductRepository interface {
	// GetByID retrieves a product by its unique ID. Returns (nil, nil) when
	// no product exists.
	GetByID(id string) (*models.Product, error)
	// GetByGarage retrieves all products offered by a garage.
	GetByGarage(garageID string) ([]models.Product, error)
	// Create inserts a new product record.
	Create(product *models.Product) error
	// Update replaces an existing product record.
	Update(product *models.Product) error
	// DecrementStock atomically subtracts quantity from the product's stock,
	// failing with ErrInsufficientStock if fewer units remain. The guard is a
	// conditional update so concurrent orders cannot oversell.
	DecrementStock(productID string, quantity int) error
	// IncrementStock adds quantity back to the product's stock (compensation
	// when a multi-item order fails partway).
	IncrementStock(productID string, quantity int) error
}
