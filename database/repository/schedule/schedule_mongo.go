package scheduleRepo

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

// MongoScheduleRepo implements ScheduleRepository using MongoDB. dayColl
// holds one marker document per garage+day; schedule mutations bump its
// version to serialize concurrent writers for that day.
type MongoScheduleRepo struct {
	coll    *mongo.Collection
	dayColl *mongo.Collection
}

// NewMongoScheduleRepo constructs a new instance of MongoScheduleRepo.
func NewMongoScheduleRepo() ScheduleRepository {
	repo := &MongoScheduleRepo{
		coll:    database.DB().Collection("schedule_slots"),
		dayColl: database.DB().Collection("schedule_days"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create schedule slot indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoScheduleRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "garage_id", Value: 1},
			{Key: "day_of_week", Value: 1},
			{Key: "is_active", Value: 1},
			{Key: "start_time", Value: 1},
		}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	dayIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "garage_id", Value: 1},
			{Key: "day_of_week", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.dayColl.Indexes().CreateOne(ctx, dayIndex); err != nil {
		return fmt.Errorf("failed to create schedule day index: %w", err)
	}
	return nil
}

// GetByID retrieves a slot by its unique ID.
func (r *MongoScheduleRepo) GetByID(id string) (*models.GarageScheduleSlot, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var slot models.GarageScheduleSlot
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch schedule slot %s: %w", id, err)
	}
	return &slot, nil
}

// GetActiveByGarageAndDay retrieves active slots for a garage on one weekday,
// ordered by start_time ascending. Callers rely on this ordering.
func (r *MongoScheduleRepo) GetActiveByGarageAndDay(garageID, day string) ([]models.GarageScheduleSlot, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"garage_id": garageID, "day_of_week": day, "is_active": true}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	return r.findSlots(ctx, filter, opts)
}

// GetActiveByGarage retrieves all active slots for a garage.
func (r *MongoScheduleRepo) GetActiveByGarage(garageID string) ([]models.GarageScheduleSlot, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"garage_id": garageID, "is_active": true}
	opts := options.Find().SetSort(bson.D{{Key: "day_of_week", Value: 1}, {Key: "start_time", Value: 1}})
	return r.findSlots(ctx, filter, opts)
}

func (r *MongoScheduleRepo) findSlots(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.GarageScheduleSlot, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.GarageScheduleSlot
	for cursor.Next(ctx) {
		var s models.GarageScheduleSlot
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode schedule slot: %w", err)
		}
		slots = append(slots, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return slots, nil
}

// Deactivate soft-disables a single slot.
func (r *MongoScheduleRepo) Deactivate(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate schedule slot %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("schedule slot %s not found", id)
	}
	return nil
}
