package product

import (
	"errors"

	productRepo "garagehub/database/repository/product"
	"garagehub/models"
)

var (
	// ErrNotFound means the product does not exist.
	ErrNotFound = errors.New("product not found")
)

// ProductService manages a garage's inventory catalog.
type ProductService interface {
	Create(p models.Product) (*models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByGarage(garageID string) ([]models.Product, error)
	Update(p models.Product) (*models.Product, error)
}

// DefaultProductService is the production implementation.
type DefaultProductService struct {
	Repo productRepo.ProductRepository
}
