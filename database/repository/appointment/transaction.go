package appointmentRepo

import (
	"context"
	"fmt"

	"garagehub/models"
	"garagehub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// withTransaction runs txnFn inside a mongo session transaction, retrying on
// transient errors (write conflicts, unknown commit results) via the driver's
// convenient API.
func (r *MongoAppointmentRepo) withTransaction(ctx context.Context, txnFn func(sc mongo.SessionContext) error) error {
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

// guardCapacity enforces max_bookings for the slot occurrence. Mongo
// transactions are snapshot-isolated and only conflict on writes to the same
// document, so a bare count+insert would let two concurrent bookings both
// pass the count. Bumping booking_version on the slot document first makes
// every guarded write for the slot touch that one document: concurrent
// transactions hit a write conflict, the loser retries and re-counts against
// the winner's committed booking.
func (r *MongoAppointmentRepo) guardCapacity(sc mongo.SessionContext, appt *models.Appointment, slot *models.GarageScheduleSlot, excludeID string) error {
	res, err := r.slotColl.UpdateOne(sc,
		bson.M{"id": slot.ID, "is_active": true},
		bson.M{"$inc": bson.M{"booking_version": 1}})
	if err != nil {
		return fmt.Errorf("failed to lock slot %s: %w", slot.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("schedule slot %s is no longer active", slot.ID)
	}

	from, to, err := utils.DayWindow(appt.AppointmentTime, slot.StartTime, slot.EndTime)
	if err != nil {
		return fmt.Errorf("invalid slot window: %w", err)
	}
	count, err := r.coll.CountDocuments(sc, windowFilter(appt.GarageID, slot.ID, from, to, excludeID))
	if err != nil {
		return fmt.Errorf("failed to count appointments in window: %w", err)
	}
	if count >= int64(slot.MaxBookings) {
		return ErrCapacityFull
	}
	return nil
}

// CreateWithCapacityCheck re-counts the slot occurrence and inserts the
// appointment in one transaction serialized per slot.
func (r *MongoAppointmentRepo) CreateWithCapacityCheck(ctx context.Context, appt *models.Appointment, slot *models.GarageScheduleSlot) error {
	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := r.guardCapacity(sc, appt, slot, ""); err != nil {
			return err
		}
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("failed to insert appointment: %w", err)
		}
		return nil
	})
}

// UpdateWithCapacityCheck re-counts the slot occurrence, excluding the
// appointment being modified from its own count, and replaces the document
// in one transaction serialized per slot.
func (r *MongoAppointmentRepo) UpdateWithCapacityCheck(ctx context.Context, appt *models.Appointment, slot *models.GarageScheduleSlot) error {
	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := r.guardCapacity(sc, appt, slot, appt.ID); err != nil {
			return err
		}
		res, err := r.coll.ReplaceOne(sc, bson.M{"id": appt.ID}, appt)
		if err != nil {
			return fmt.Errorf("failed to update appointment %s: %w", appt.ID, err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("appointment %s not found", appt.ID)
		}
		return nil
	})
}
