package appointment

import (
	"context"
	"fmt"
	"time"

	"garagehub/models"
	"garagehub/utils"
)

// ValidateAgainstSlot runs the ordered booking checks for a proposed
// slot-bound appointment:
//
//  1. the slot exists,
//  2. it belongs to garageID,
//  3. t falls on the slot's weekday,
//  4. t's time of day lies in [start_time, end_time),
//  5. the slot occurrence on t's date still has capacity.
//
// excludeID removes one appointment from the capacity count, so an update
// does not count the appointment being modified against itself. The check is
// advisory: create/update re-run the count inside the write transaction.
func (s *DefaultAppointmentService) ValidateAgainstSlot(ctx context.Context, garageID, slotID string, t time.Time, excludeID string) (*models.GarageScheduleSlot, error) {
	slot, err := s.Slots.GetByID(slotID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot %s: %w", slotID, err)
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	if slot.GarageID != garageID {
		return nil, ErrGarageMismatch
	}
	if models.WeekdayName(t) != slot.DayOfWeek {
		return nil, ErrDayMismatch
	}

	// Half-open window: an appointment exactly at end_time is out of range.
	clock := utils.ClockOf(t)
	if clock < slot.StartTime || clock >= slot.EndTime {
		return nil, ErrOutOfRange
	}

	from, to, err := utils.DayWindow(t, slot.StartTime, slot.EndTime)
	if err != nil {
		return nil, fmt.Errorf("slot %s has a malformed window: %w", slot.ID, err)
	}
	count, err := s.Repo.CountInWindow(ctx, garageID, slot.ID, from, to, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings for slot %s: %w", slot.ID, err)
	}
	if count >= int64(slot.MaxBookings) {
		return nil, ErrCapacityExceeded
	}
	return slot, nil
}
