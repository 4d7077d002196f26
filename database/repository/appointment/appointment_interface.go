package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"garagehub/models"
)

// ErrCapacityFull is returned when a capacity-guarded write finds the slot
// occurrence already at max_bookings.
var ErrCapacityFull = errors.New("slot occurrence is at capacity")

// AppointmentRepository defines data access for appointments.
type AppointmentRepository interface {
	// GetByID retrieves an appointment by its unique ID. Returns (nil, nil)
	// when no appointment exists.
	GetByID(id string) (*models.Appointment, error)
	// GetAll retrieves all appointments, newest first.
	GetAll() ([]models.Appointment, error)
	// CountInWindow counts non-canceled appointments for (garageID, slotID)
	// whose appointment_time lies in [from, to). excludeID, when non-empty,
	// removes one appointment from the count (used on update).
	CountInWindow(ctx context.Context, garageID, slotID string, from, to time.Time, excludeID string) (int64, error)
	// Create inserts an appointment without a capacity guard (slotless
	// appointments).
	Create(appt *models.Appointment) error
	// CreateWithCapacityCheck re-counts the slot occurrence and inserts the
	// appointment in one transaction, returning ErrCapacityFull if the count
	// already meets slot.MaxBookings.
	CreateWithCapacityCheck(ctx context.Context, appt *models.Appointment, slot *models.GarageScheduleSlot) error
	// Update replaces an existing appointment document.
	Update(appt *models.Appointment) error
	// UpdateWithCapacityCheck re-counts the slot occurrence (excluding the
	// appointment itself) and replaces the document in one transaction.
	UpdateWithCapacityCheck(ctx context.Context, appt *models.Appointment, slot *models.GarageScheduleSlot) error
	// Delete hard-deletes an appointment by ID.
	Delete(id string) error
}
