package productRepo

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

// MongoProductRepo implements ProductRepository using MongoDB.
type MongoProductRepo struct {
	coll *mongo.Collection
}

// NewMongoProductRepo constructs a new instance of MongoProductRepo.
func NewMongoProductRepo() ProductRepository {
	coll := database.DB().Collection("products")
	repo := &MongoProductRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create product indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoProductRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "garage_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a product by its unique ID.
func (r *MongoProductRepo) GetByID(id string) (*models.Product, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var product models.Product
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}
	return &product, nil
}

// GetByGarage retrieves all products offered by a garage.
func (r *MongoProductRepo) GetByGarage(garageID string) ([]models.Product, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"garage_id": garageID})
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// Create inserts a new product record.
func (r *MongoProductRepo) Create(product *models.Product) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update replaces an existing product record.
func (r *MongoProductRepo) Update(product *models.Product) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("product %s not found", product.ID)
	}
	return nil
}

// DecrementStock atomically subtracts quantity from the product's stock. The
// stock_quantity >= quantity condition on the filter makes the check and the
// decrement a single operation.
func (r *MongoProductRepo) DecrementStock(productID string, quantity int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": productID, "stock_quantity": bson.M{"$gte": quantity}}
	update := bson.M{
		"$inc": bson.M{"stock_quantity": -quantity},
		"$set": bson.M{"updated_at": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to decrement stock for product %s: %w", productID, err)
	}
	if res.MatchedCount == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// IncrementStock adds quantity back to the product's stock.
func (r *MongoProductRepo) IncrementStock(productID string, quantity int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"stock_quantity": quantity},
		"$set": bson.M{"updated_at": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": productID}, update)
	if err != nil {
		return fmt.Errorf("failed to restore stock for product %s: %w", productID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("product %s not found", productID)
	}
	return nil
}
