package models

import "time"

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// Product is a stock item sold by a garage (tires, parts, service packages).
type Product struct {
	ID            string    `bson:"id" json:"id"`
	GarageID      string    `bson:"garage_id" json:"garage_id"`
	Name          string    `bson:"name" json:"name"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	Price         float64   `bson:"price" json:"price"`
	StockQuantity int       `bson:"stock_quantity" json:"stock_quantity"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// OrderItem is one product line on an order; UnitPrice is captured at order
// time so later price changes don't rewrite history.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unit_price"`
}

// Order groups purchased items; every appointment references exactly one.
type Order struct {
	ID        string      `bson:"id" json:"id"`
	UserID    string      `bson:"user_id" json:"user_id"`
	GarageID  string      `bson:"garage_id" json:"garage_id"`
	Items     []OrderItem `bson:"items" json:"items"`
	Total     float64     `bson:"total" json:"total"`
	Status    string      `bson:"status" json:"status"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time   `bson:"updated_at" json:"updated_at"`
}
