package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	scheduleRepo "garagehub/database/repository/schedule"
	"garagehub/models"
	"garagehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// validateDefinition normalizes and checks one slot definition. MaxBookings
// defaults to 1 when unset.
func validateDefinition(def *models.SlotDefinition) error {
	start, err := utils.ParseClock(def.StartTime)
	if err != nil {
		return &SlotDefinitionError{Reason: fmt.Sprintf("invalid start_time %q", def.StartTime)}
	}
	end, err := utils.ParseClock(def.EndTime)
	if err != nil {
		return &SlotDefinitionError{Reason: fmt.Sprintf("invalid end_time %q", def.EndTime)}
	}
	if end <= start {
		return &SlotDefinitionError{Reason: "end_time must be after start_time"}
	}
	if def.MaxBookings == 0 {
		def.MaxBookings = 1
	}
	if def.MaxBookings < 0 {
		return &SlotDefinitionError{Reason: "max_bookings must be positive"}
	}
	return nil
}

func (s *DefaultScheduleService) requireGarage(garageID string) error {
	garage, err := s.Garages.GetByID(garageID)
	if err != nil {
		return fmt.Errorf("failed to look up garage %s: %w", garageID, err)
	}
	if garage == nil {
		return ErrGarageNotFound
	}
	return nil
}

// CreateSlot validates and persists one new active slot for the garage.
func (s *DefaultScheduleService) CreateSlot(ctx context.Context, slot models.GarageScheduleSlot) (*models.GarageScheduleSlot, error) {
	logger := utils.GetLogger()

	slot.DayOfWeek = strings.ToLower(slot.DayOfWeek)
	if !models.ValidWeekday(slot.DayOfWeek) {
		return nil, &SlotDefinitionError{Reason: fmt.Sprintf("invalid day_of_week %q", slot.DayOfWeek)}
	}
	def := models.SlotDefinition{StartTime: slot.StartTime, EndTime: slot.EndTime, MaxBookings: slot.MaxBookings}
	if err := validateDefinition(&def); err != nil {
		return nil, err
	}
	slot.MaxBookings = def.MaxBookings

	if err := s.requireGarage(slot.GarageID); err != nil {
		return nil, err
	}

	now := time.Now()
	slot.ID = uuid.New().String()
	slot.IsActive = true
	slot.CreatedAt = now
	slot.UpdatedAt = now

	if err := s.Repo.CreateIfNoOverlap(ctx, &slot); err != nil {
		if errors.Is(err, scheduleRepo.ErrSlotOverlap) {
			return nil, ErrSlotOverlap
		}
		return nil, fmt.Errorf("failed to create schedule slot: %w", err)
	}

	logger.Info("Schedule slot created",
		zap.String("garageID", slot.GarageID),
		zap.String("day", slot.DayOfWeek),
		zap.String("window", slot.StartTime+"-"+slot.EndTime))
	s.invalidateGarage(ctx, slot.GarageID)
	return &slot, nil
}

func (s *DefaultScheduleService) invalidateGarage(ctx context.Context, garageID string) {
	if s.Cache != nil {
		s.Cache.InvalidateGarage(ctx, garageID)
	}
}

// ReplaceDaySchedule deactivates all active slots for garage+day and
// installs the new definitions. The definitions are validated against each
// other up front; the store re-checks inside the replace transaction, so a
// concurrent writer cannot sneak an overlapping slot in between.
func (s *DefaultScheduleService) ReplaceDaySchedule(ctx context.Context, garageID, day string, defs []models.SlotDefinition) ([]models.GarageScheduleSlot, error) {
	logger := utils.GetLogger()

	day = strings.ToLower(day)
	if !models.ValidWeekday(day) {
		return nil, &SlotDefinitionError{Reason: fmt.Sprintf("invalid day_of_week %q", day)}
	}
	if err := s.requireGarage(garageID); err != nil {
		return nil, err
	}

	for i := range defs {
		if err := validateDefinition(&defs[i]); err != nil {
			return nil, err
		}
		for j := 0; j < i; j++ {
			if models.ClockRangesOverlap(defs[i].StartTime, defs[i].EndTime, defs[j].StartTime, defs[j].EndTime) {
				return nil, ErrSlotOverlap
			}
		}
	}

	now := time.Now()
	slots := make([]*models.GarageScheduleSlot, 0, len(defs))
	for _, def := range defs {
		slots = append(slots, &models.GarageScheduleSlot{
			ID:          uuid.New().String(),
			GarageID:    garageID,
			DayOfWeek:   day,
			StartTime:   def.StartTime,
			EndTime:     def.EndTime,
			MaxBookings: def.MaxBookings,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.Repo.ReplaceDay(ctx, garageID, day, slots); err != nil {
		if errors.Is(err, scheduleRepo.ErrSlotOverlap) {
			return nil, ErrSlotOverlap
		}
		return nil, fmt.Errorf("failed to replace %s schedule: %w", day, err)
	}

	logger.Info("Day schedule replaced",
		zap.String("garageID", garageID),
		zap.String("day", day),
		zap.Int("slots", len(slots)))
	s.invalidateGarage(ctx, garageID)

	created := make([]models.GarageScheduleSlot, 0, len(slots))
	for _, slot := range slots {
		created = append(created, *slot)
	}
	return created, nil
}

// DeactivateSlot soft-disables one slot. The slot must belong to garageID;
// foreign slots are reported as not found.
func (s *DefaultScheduleService) DeactivateSlot(ctx context.Context, garageID, slotID string) error {
	slot, err := s.Repo.GetByID(slotID)
	if err != nil {
		return fmt.Errorf("failed to fetch schedule slot %s: %w", slotID, err)
	}
	if slot == nil || slot.GarageID != garageID || !slot.IsActive {
		return ErrSlotNotFound
	}

	if err := s.Repo.Deactivate(slotID); err != nil {
		return fmt.Errorf("failed to deactivate schedule slot %s: %w", slotID, err)
	}

	utils.GetLogger().Info("Schedule slot deactivated",
		zap.String("garageID", garageID),
		zap.String("slotID", slotID))
	s.invalidateGarage(ctx, garageID)
	return nil
}

// GetWeeklySchedule returns the garage's active slots grouped by weekday.
func (s *DefaultScheduleService) GetWeeklySchedule(garageID string) (*models.GarageSchedule, error) {
	if err := s.requireGarage(garageID); err != nil {
		return nil, err
	}

	slots, err := s.Repo.GetActiveByGarage(garageID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weekly schedule: %w", err)
	}

	schedule := &models.GarageSchedule{
		GarageID: garageID,
		Days:     make(map[string][]models.GarageScheduleSlot),
	}
	for _, slot := range slots {
		schedule.Days[slot.DayOfWeek] = append(schedule.Days[slot.DayOfWeek], slot)
	}
	return schedule, nil
}
