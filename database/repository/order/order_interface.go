package orderRepo

import "garagehub/models"

// OrderRepository defines data access for orders.
type OrderRepository interface {
	// GetByID retrieves an order by its unique ID. Returns (nil, nil) when
	// no order exists.
	GetByID(id string) (*models.Order, error)
	// GetByUser retrieves all orders placed by a user, newest first.
	GetByUser(userID string) ([]models.Order, error)
	// Create inserts a new order record.
	Create(order *models.Order) error
	// Update replaces an existing order record.
	Update(order *models.Order) error
}
