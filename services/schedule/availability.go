package schedule

import (
	"context"
	"fmt"
	"time"

	"garagehub/models"
	"garagehub/utils"
)

const dateLayout = "2006-01-02"

// GetAvailableSlots computes, for a garage and calendar date, each
// applicable slot with its remaining capacity. Remaining capacity is
// max_bookings minus the count of non-canceled appointments inside the
// slot's window on that date, floored at zero. The returned order is the
// store's start_time-ascending order.
func (s *DefaultScheduleService) GetAvailableSlots(ctx context.Context, garageID, date string) ([]models.AvailableSlot, error) {
	if date == "" {
		return nil, ErrInvalidDate
	}
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if err := s.requireGarage(garageID); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, garageID, date); ok {
			return cached, nil
		}
	}

	slots, err := s.Repo.GetActiveByGarageAndDay(garageID, models.WeekdayName(day))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots for %s: %w", date, err)
	}

	available := make([]models.AvailableSlot, 0, len(slots))
	for _, slot := range slots {
		from, to, err := utils.DayWindow(day, slot.StartTime, slot.EndTime)
		if err != nil {
			return nil, fmt.Errorf("slot %s has a malformed window: %w", slot.ID, err)
		}
		count, err := s.Appointments.CountInWindow(ctx, garageID, slot.ID, from, to, "")
		if err != nil {
			return nil, fmt.Errorf("failed to count bookings for slot %s: %w", slot.ID, err)
		}

		remaining := slot.MaxBookings - int(count)
		if remaining < 0 {
			remaining = 0
		}
		available = append(available, models.AvailableSlot{
			ID:                slot.ID,
			StartTime:         slot.StartTime,
			EndTime:           slot.EndTime,
			MaxBookings:       slot.MaxBookings,
			AvailableBookings: remaining,
			IsFull:            remaining == 0,
		})
	}

	if s.Cache != nil {
		s.Cache.Set(ctx, garageID, date, available)
	}
	return available, nil
}
