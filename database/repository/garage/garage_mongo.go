package garageRepo

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

// MongoGarageRepo implements GarageRepository using MongoDB.
type MongoGarageRepo struct {
	coll *mongo.Collection
}

// NewMongoGarageRepo constructs a new instance of MongoGarageRepo.
func NewMongoGarageRepo() GarageRepository {
	coll := database.DB().Collection("garages")
	repo := &MongoGarageRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create garage indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoGarageRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a garage by its unique ID.
func (r *MongoGarageRepo) GetByID(id string) (*models.Garage, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var garage models.Garage
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&garage); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch garage %s: %w", id, err)
	}
	return &garage, nil
}

// GetAll retrieves all garages.
func (r *MongoGarageRepo) GetAll() ([]models.Garage, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query garages: %w", err)
	}
	defer cursor.Close(ctx)

	var garages []models.Garage
	if err := cursor.All(ctx, &garages); err != nil {
		return nil, fmt.Errorf("failed to decode garages: %w", err)
	}
	return garages, nil
}

// Create inserts a new garage record.
func (r *MongoGarageRepo) Create(garage *models.Garage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, garage); err != nil {
		return fmt.Errorf("failed to create garage: %w", err)
	}
	return nil
}

// Update replaces an existing garage record.
func (r *MongoGarageRepo) Update(garage *models.Garage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": garage.ID}, garage)
	if err != nil {
		return fmt.Errorf("failed to update garage %s: %w", garage.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("garage %s not found", garage.ID)
	}
	return nil
}

// Delete removes a garage record by its ID.
func (r *MongoGarageRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete garage %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("garage %s not found", id)
	}
	return nil
}
