package order

import (
	"errors"
	"fmt"
	"time"

	productRepo "garagehub/database/repository/product"
	"garagehub/models"
	"garagehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create places an order, decrementing each product's stock as it goes. If a
// later line fails, the stock taken by earlier lines is restored before the
// error is returned.
func (s *DefaultOrderService) Create(userID, garageID string, items []ItemInput) (*models.Order, error) {
	logger := utils.GetLogger()

	if userID == "" || garageID == "" {
		return nil, fmt.Errorf("user_id and garage_id are required")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	var (
		lines []models.OrderItem
		total float64
		taken []models.OrderItem // successfully decremented, for compensation
	)
	restock := func() {
		for _, line := range taken {
			if err := s.Products.IncrementStock(line.ProductID, line.Quantity); err != nil {
				logger.Error("Failed to restore stock after aborted order",
					zap.String("productID", line.ProductID),
					zap.Int("quantity", line.Quantity),
					zap.Error(err))
			}
		}
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			restock()
			return nil, fmt.Errorf("quantity for product %s must be positive", item.ProductID)
		}
		product, err := s.Products.GetByID(item.ProductID)
		if err != nil {
			restock()
			return nil, fmt.Errorf("failed to fetch product %s: %w", item.ProductID, err)
		}
		if product == nil {
			restock()
			return nil, ErrProductNotFound
		}
		if err := s.Products.DecrementStock(item.ProductID, item.Quantity); err != nil {
			restock()
			if errors.Is(err, productRepo.ErrInsufficientStock) {
				return nil, ErrOutOfStock
			}
			return nil, fmt.Errorf("failed to reserve stock for %s: %w", item.ProductID, err)
		}
		line := models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		}
		taken = append(taken, line)
		lines = append(lines, line)
		total += product.Price * float64(item.Quantity)
	}

	now := time.Now()
	o := &models.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		GarageID:  garageID,
		Items:     lines,
		Total:     total,
		Status:    models.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(o); err != nil {
		restock()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return o, nil
}

// GetByID fetches one order.
func (s *DefaultOrderService) GetByID(id string) (*models.Order, error) {
	o, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", id, err)
	}
	if o == nil {
		return nil, ErrNotFound
	}
	return o, nil
}

// GetByUser lists a user's orders, newest first.
func (s *DefaultOrderService) GetByUser(userID string) ([]models.Order, error) {
	orders, err := s.Repo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}
