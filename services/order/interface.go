package order

import (
	"errors"

	orderRepo "garagehub/database/repository/order"
	productRepo "garagehub/database/repository/product"
	"garagehub/models"
)

var (
	// ErrNotFound means the order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrProductNotFound means an ordered product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrOutOfStock means a product has fewer units than the order asks for.
	ErrOutOfStock = errors.New("product is out of stock")
)

// ItemInput is one requested order line.
type ItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// OrderService creates and reads orders, decrementing product stock on
// creation.
type OrderService interface {
	Create(userID, garageID string, items []ItemInput) (*models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
}

// DefaultOrderService is the production implementation.
type DefaultOrderService struct {
	Repo     orderRepo.OrderRepository
	Products productRepo.ProductRepository
}
