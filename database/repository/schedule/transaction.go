package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"garagehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// withTransaction runs txnFn inside a mongo session transaction, retrying on
// transient errors (write conflicts, unknown commit results) via the driver's
// convenient API.
func (r *MongoScheduleRepo) withTransaction(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, txnFn(sc)
	})
	return err
}

// lockDay bumps the version on the garage+day marker document (upserting it
// on first use). Snapshot isolation alone would let two concurrent writers
// both pass the overlap scan; writing this shared document makes every
// schedule mutation for the same garage+day conflict, so the loser retries
// against the winner's committed slots.
func (r *MongoScheduleRepo) lockDay(sc mongo.SessionContext, garageID, day string) error {
	_, err := r.dayColl.UpdateOne(sc,
		bson.M{"garage_id": garageID, "day_of_week": day},
		bson.M{"$inc": bson.M{"version": 1}},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to lock schedule day %s/%s: %w", garageID, day, err)
	}
	return nil
}

// activeSlotsForDay loads the active slots for garage+day inside the session
// so the overlap check sees a consistent snapshot.
func (r *MongoScheduleRepo) activeSlotsForDay(sc mongo.SessionContext, garageID, day string) ([]models.GarageScheduleSlot, error) {
	cursor, err := r.coll.Find(sc, bson.M{"garage_id": garageID, "day_of_week": day, "is_active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to query active slots: %w", err)
	}
	defer cursor.Close(sc)

	var slots []models.GarageScheduleSlot
	if err := cursor.All(sc, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode active slots: %w", err)
	}
	return slots, nil
}

// CreateIfNoOverlap inserts the slot unless its [start_time, end_time) range
// intersects an active slot for the same garage and weekday. The day lock,
// the check, and the insert share one transaction, so two concurrent creates
// cannot both pass the check and jointly violate the non-overlap invariant.
func (r *MongoScheduleRepo) CreateIfNoOverlap(ctx context.Context, slot *models.GarageScheduleSlot) error {
	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := r.lockDay(sc, slot.GarageID, slot.DayOfWeek); err != nil {
			return err
		}
		existing, err := r.activeSlotsForDay(sc, slot.GarageID, slot.DayOfWeek)
		if err != nil {
			return err
		}
		for _, s := range existing {
			if s.Overlaps(slot.StartTime, slot.EndTime) {
				return ErrSlotOverlap
			}
		}
		if _, err := r.coll.InsertOne(sc, slot); err != nil {
			return fmt.Errorf("failed to insert schedule slot: %w", err)
		}
		return nil
	})
}

// ReplaceDay deactivates every active slot for the garage+day and inserts
// the replacement definitions. Deactivation and creation are transactionally
// coupled: on any failure the transaction aborts and the pre-replace
// schedule stays in place. Slots for other weekdays are never touched.
func (r *MongoScheduleRepo) ReplaceDay(ctx context.Context, garageID, day string, slots []*models.GarageScheduleSlot) error {
	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := r.lockDay(sc, garageID, day); err != nil {
			return err
		}
		filter := bson.M{"garage_id": garageID, "day_of_week": day, "is_active": true}
		update := bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}}
		if _, err := r.coll.UpdateMany(sc, filter, update); err != nil {
			return fmt.Errorf("failed to deactivate slots for %s: %w", day, err)
		}

		// The new definitions are validated against each other (earlier
		// inserts in the batch are active by the time later ones are
		// checked) and against any still-active slot for the day.
		for _, slot := range slots {
			existing, err := r.activeSlotsForDay(sc, garageID, day)
			if err != nil {
				return err
			}
			for _, s := range existing {
				if s.Overlaps(slot.StartTime, slot.EndTime) {
					return ErrSlotOverlap
				}
			}
			if _, err := r.coll.InsertOne(sc, slot); err != nil {
				return fmt.Errorf("failed to insert replacement slot: %w", err)
			}
		}
		return nil
	})
}
