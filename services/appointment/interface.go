package appointment

import (
	"context"
	"errors"
	"time"

	appointmentRepo "garagehub/database/repository/appointment"
	scheduleRepo "garagehub/database/repository/schedule"

	"garagehub/models"
)

// Domain errors surfaced to the HTTP boundary.
var (
	// ErrNotFound means the appointment does not exist.
	ErrNotFound = errors.New("appointment not found")
	// ErrSlotNotFound means the referenced schedule slot does not exist.
	ErrSlotNotFound = errors.New("schedule slot not found")
	// ErrGarageMismatch means the slot belongs to a different garage.
	ErrGarageMismatch = errors.New("slot does not belong to the given garage")
	// ErrDayMismatch means the appointment falls on a different weekday than
	// the slot.
	ErrDayMismatch = errors.New("appointment day does not match slot day")
	// ErrOutOfRange means the appointment's time of day is outside the
	// slot's [start_time, end_time) window.
	ErrOutOfRange = errors.New("appointment time is outside the slot's time range")
	// ErrCapacityExceeded means the slot occurrence already holds
	// max_bookings non-canceled appointments.
	ErrCapacityExceeded = errors.New("time slot is already fully booked")
	// ErrInvalidTransition means the status machine forbids the requested
	// status change.
	ErrInvalidTransition = errors.New("illegal appointment status transition")
)

// ValidationError reports missing or malformed input on create/update.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Notifier is the downstream collaborator poked when an appointment is
// confirmed. Implementations must be safe to call fire-and-forget; failures
// are logged by the caller and never propagate.
type Notifier interface {
	NotifyAppointmentConfirmed(appt models.Appointment) error
}

// AvailabilityInvalidator drops cached availability for a garage+date after
// a booking write changes the capacity picture. Satisfied by
// schedule.RedisAvailabilityCache.
type AvailabilityInvalidator interface {
	InvalidateDate(ctx context.Context, garageID, date string)
}

// AppointmentService manages the appointment lifecycle and gates slot-bound
// bookings behind the capacity and window invariants.
type AppointmentService interface {
	// Create validates and persists a new appointment, defaulting status to
	// pending. Slot-bound creates run the full booking validation and a
	// transactional capacity-guarded insert.
	Create(ctx context.Context, appt models.Appointment) (*models.Appointment, error)
	// Update applies a partial update; a slot or time change re-runs the
	// booking validation excluding the appointment's own capacity share.
	Update(ctx context.Context, id string, upd models.AppointmentUpdate) (*models.Appointment, error)
	// Delete hard-deletes an appointment.
	Delete(id string) error
	// GetByID fetches one appointment.
	GetByID(id string) (*models.Appointment, error)
	// GetAll lists all appointments.
	GetAll() ([]models.Appointment, error)
	// ValidateAgainstSlot checks garage ownership, weekday, time window and
	// capacity for a proposed slot-bound appointment time. It is advisory:
	// the persisting call re-runs the capacity count transactionally.
	ValidateAgainstSlot(ctx context.Context, garageID, slotID string, t time.Time, excludeID string) (*models.GarageScheduleSlot, error)
}

// DefaultAppointmentService is the production implementation. Availability
// is optional; when set, slot-bound booking writes invalidate the cached
// availability of the dates they touch.
type DefaultAppointmentService struct {
	Repo         appointmentRepo.AppointmentRepository
	Slots        scheduleRepo.ScheduleRepository
	Notifier     Notifier
	Availability AvailabilityInvalidator
}
