package appointmentRepo

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

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
// slotColl is the schedule slot collection; capacity-guarded writes bump a
// version field there to serialize concurrent bookings per slot.
type MongoAppointmentRepo struct {
	coll     *mongo.Collection
	slotColl *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{
		coll:     database.DB().Collection("appointments"),
		slotColl: database.DB().Collection("schedule_slots"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create appointment indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries. The
// compound index backs the capacity count executed on every slot-bound
// create and update.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "garage_id", Value: 1},
			{Key: "schedule_slot_id", Value: 1},
			{Key: "appointment_time", Value: 1},
		}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID.
func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

// GetAll retrieves all appointments, newest first.
func (r *MongoAppointmentRepo) GetAll() ([]models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "appointment_time", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appts = append(appts, a)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return appts, nil
}

// windowFilter builds the capacity-count filter for one slot occurrence:
// non-canceled appointments for the garage+slot whose time lies in [from, to).
func windowFilter(garageID, slotID string, from, to time.Time, excludeID string) bson.M {
	filter := bson.M{
		"garage_id":        garageID,
		"schedule_slot_id": slotID,
		"status":           bson.M{"$ne": models.AppointmentStatusCanceled},
		"appointment_time": bson.M{"$gte": from, "$lt": to},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}

// CountInWindow counts non-canceled appointments for a slot occurrence.
func (r *MongoAppointmentRepo) CountInWindow(ctx context.Context, garageID, slotID string, from, to time.Time, excludeID string) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, windowFilter(garageID, slotID, from, to, excludeID))
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments in window: %w", err)
	}
	return count, nil
}

// Create inserts an appointment without a capacity guard.
func (r *MongoAppointmentRepo) Create(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// Update replaces an existing appointment document.
func (r *MongoAppointmentRepo) Update(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": appt.ID}, appt)
	if err != nil {
		return fmt.Errorf("failed to update appointment %s: %w", appt.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("appointment %s not found", appt.ID)
	}
	return nil
}

// Delete hard-deletes an appointment by ID.
func (r *MongoAppointmentRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("appointment %s not found", id)
	}
	return nil
}
