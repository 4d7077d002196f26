package scheduleRepo

import (
	"context"
	"errors"

	"garagehub/models"
)

// ErrSlotOverlap is returned when a slot definition intersects another
// active slot for the same garage and weekday.
var ErrSlotOverlap = errors.New("schedule slot overlaps an existing active slot")

// ScheduleRepository defines data access for garage schedule slots.
type ScheduleRepository interface {
	// GetByID retrieves a slot by its unique ID. Returns (nil, nil) when no
	// slot exists.
	GetByID(id string) (*models.GarageScheduleSlot, error)
	// GetActiveByGarageAndDay retrieves the active slots for a garage on one
	// weekday, ordered by start_time ascending.
	GetActiveByGarageAndDay(garageID, day string) ([]models.GarageScheduleSlot, error)
	// GetActiveByGarage retrieves all active slots for a garage.
	GetActiveByGarage(garageID string) ([]models.GarageScheduleSlot, error)
	// CreateIfNoOverlap inserts the slot unless it intersects an active slot
	// for the same garage+day; the check and the insert run in one
	// transaction. Returns ErrSlotOverlap on intersection.
	CreateIfNoOverlap(ctx context.Context, slot *models.GarageScheduleSlot) error
	// ReplaceDay deactivates every active slot for the garage+day and inserts
	// the given replacements, all in one transaction. A failure (including
	// ErrSlotOverlap against the batch) rolls back to the pre-replace state.
	ReplaceDay(ctx context.Context, garageID, day string, slots []*models.GarageScheduleSlot) error
	// Deactivate soft-disables a single slot.
	Deactivate(id string) error
}
