package schedule

import (
	"context"
	"errors"

	appointmentRepo "garagehub/database/repository/appointment"
	garageRepo "garagehub/database/repository/garage"
	scheduleRepo "garagehub/database/repository/schedule"

	"garagehub/models"
)

// Domain errors surfaced to the HTTP boundary.
var (
	// ErrGarageNotFound means the referenced garage does not exist.
	ErrGarageNotFound = errors.New("garage not found")
	// ErrInvalidDate means the date parameter is absent or not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid or missing date")
	// ErrSlotOverlap means a slot definition intersects another active slot
	// for the same garage and weekday.
	ErrSlotOverlap = errors.New("slot overlaps an existing active slot for that day")
	// ErrSlotNotFound means the slot does not exist or belongs to another
	// garage.
	ErrSlotNotFound = errors.New("schedule slot not found")
)

// SlotDefinitionError reports a malformed slot definition (bad weekday, bad
// clock string, inverted range, non-positive capacity).
type SlotDefinitionError struct {
	Reason string
}

func (e *SlotDefinitionError) Error() string { return e.Reason }

// ScheduleService manages a garage's recurring weekly availability windows
// and computes per-date remaining capacity.
type ScheduleService interface {
	// CreateSlot validates and persists one new active slot, enforcing the
	// non-overlap invariant for the garage+day.
	CreateSlot(ctx context.Context, slot models.GarageScheduleSlot) (*models.GarageScheduleSlot, error)
	// ReplaceDaySchedule deactivates the day's active slots and installs the
	// given definitions in their place, atomically.
	ReplaceDaySchedule(ctx context.Context, garageID, day string, defs []models.SlotDefinition) ([]models.GarageScheduleSlot, error)
	// DeactivateSlot soft-disables one slot belonging to the garage.
	DeactivateSlot(ctx context.Context, garageID, slotID string) error
	// GetWeeklySchedule returns the garage's active slots grouped by weekday.
	GetWeeklySchedule(garageID string) (*models.GarageSchedule, error)
	// GetAvailableSlots resolves the weekday of date (YYYY-MM-DD) and returns
	// each applicable slot with its remaining capacity for that date.
	GetAvailableSlots(ctx context.Context, garageID, date string) ([]models.AvailableSlot, error)
}

// DefaultScheduleService is the production implementation. Cache is
// optional; when set, availability reads go through it and schedule
// mutations invalidate the garage's entries.
type DefaultScheduleService struct {
	Repo         scheduleRepo.ScheduleRepository
	Appointments appointmentRepo.AppointmentRepository
	Garages      garageRepo.GarageRepository
	Cache        AvailabilityCache
}
