package orderRepo

import (
	"context"
	"fmt"
	"time"

	"garagehub/database"
	"garagehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOrderRepo implements OrderRepository using MongoDB.
type MongoOrderRepo struct {
	coll *mongo.Collection
}

// NewMongoOrderRepo constructs a new instance of MongoOrderRepo.
func NewMongoOrderRepo() OrderRepository {
	coll := database.DB().Collection("orders")
	repo := &MongoOrderRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create order indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOrderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an order by its unique ID.
func (r *MongoOrderRepo) GetByID(id string) (*models.Order, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var order models.Order
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch order %s: %w", id, err)
	}
	return &order, nil
}

// GetByUser retrieves all orders placed by a user, newest first.
func (r *MongoOrderRepo) GetByUser(userID string) ([]models.Order, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// Create inserts a new order record.
func (r *MongoOrderRepo) Create(order *models.Order) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update replaces an existing order record.
func (r *MongoOrderRepo) Update(order *models.Order) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": order.ID}, order)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", order.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("order %s not found", order.ID)
	}
	return nil
}
