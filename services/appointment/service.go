package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "garagehub/database/repository/appointment"
	"garagehub/models"
	"garagehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create validates and persists a new appointment. When a schedule slot is
// referenced, the booking validation runs first and the insert itself is
// capacity-guarded inside one transaction, so two concurrent creates cannot
// jointly exceed max_bookings.
func (s *DefaultAppointmentService) Create(ctx context.Context, appt models.Appointment) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if appt.UserID == "" {
		return nil, &ValidationError{Reason: "user_id is required"}
	}
	if appt.GarageID == "" {
		return nil, &ValidationError{Reason: "garage_id is required"}
	}
	if appt.OrderID == "" {
		return nil, &ValidationError{Reason: "order_id is required"}
	}
	if appt.AppointmentTime.IsZero() {
		return nil, &ValidationError{Reason: "appointment_time is required"}
	}
	if appt.Status == "" {
		appt.Status = models.AppointmentStatusPending
	} else if !models.ValidAppointmentStatus(appt.Status) {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid status %q", appt.Status)}
	}

	now := time.Now()
	appt.ID = uuid.New().String()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	if appt.ScheduleSlotID != "" {
		slot, err := s.ValidateAgainstSlot(ctx, appt.GarageID, appt.ScheduleSlotID, appt.AppointmentTime, "")
		if err != nil {
			return nil, err
		}
		if err := s.Repo.CreateWithCapacityCheck(ctx, &appt, slot); err != nil {
			if errors.Is(err, appointmentRepo.ErrCapacityFull) {
				return nil, ErrCapacityExceeded
			}
			return nil, fmt.Errorf("failed to create appointment: %w", err)
		}
	} else {
		if err := s.Repo.Create(&appt); err != nil {
			return nil, fmt.Errorf("failed to create appointment: %w", err)
		}
	}

	logger.Info("Appointment created",
		zap.String("appointmentID", appt.ID),
		zap.String("garageID", appt.GarageID),
		zap.Time("at", appt.AppointmentTime))

	s.invalidateAvailability(ctx, appt)
	if appt.Status == models.AppointmentStatusConfirmed {
		s.notifyConfirmed(appt)
	}
	return &appt, nil
}

// invalidateAvailability drops the cached availability for the date a
// slot-bound booking write touched.
func (s *DefaultAppointmentService) invalidateAvailability(ctx context.Context, appt models.Appointment) {
	if s.Availability == nil || appt.ScheduleSlotID == "" {
		return
	}
	s.Availability.InvalidateDate(ctx, appt.GarageID, appt.AppointmentTime.Format("2006-01-02"))
}

// Update applies a partial update to an existing appointment. Changing the
// slot binding or the appointment time re-runs the booking validation with
// the appointment excluded from its own capacity count; status changes go
// through the transition machine. Unspecified fields keep their prior values.
func (s *DefaultAppointmentService) Update(ctx context.Context, id string, upd models.AppointmentUpdate) (*models.Appointment, error) {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	updated := *existing
	timeChanged := false
	slotChanged := false

	if upd.AppointmentTime != nil && !upd.AppointmentTime.Equal(existing.AppointmentTime) {
		updated.AppointmentTime = *upd.AppointmentTime
		timeChanged = true
	}
	if upd.ScheduleSlotID != nil && *upd.ScheduleSlotID != existing.ScheduleSlotID {
		updated.ScheduleSlotID = *upd.ScheduleSlotID
		slotChanged = true
	}
	if upd.Notes != nil {
		updated.Notes = *upd.Notes
	}
	if upd.Status != nil {
		if !models.ValidAppointmentStatus(*upd.Status) {
			return nil, &ValidationError{Reason: fmt.Sprintf("invalid status %q", *upd.Status)}
		}
		if !models.CanTransitionStatus(existing.Status, *upd.Status) {
			return nil, ErrInvalidTransition
		}
		updated.Status = *upd.Status
	}
	updated.UpdatedAt = time.Now()

	// A canceled appointment no longer counts against capacity, so a cancel
	// never needs revalidation regardless of other field changes.
	needsValidation := updated.ScheduleSlotID != "" &&
		updated.Status != models.AppointmentStatusCanceled &&
		(slotChanged || timeChanged)

	if needsValidation {
		slot, err := s.ValidateAgainstSlot(ctx, updated.GarageID, updated.ScheduleSlotID, updated.AppointmentTime, id)
		if err != nil {
			return nil, err
		}
		if err := s.Repo.UpdateWithCapacityCheck(ctx, &updated, slot); err != nil {
			if errors.Is(err, appointmentRepo.ErrCapacityFull) {
				return nil, ErrCapacityExceeded
			}
			return nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
		}
	} else {
		if err := s.Repo.Update(&updated); err != nil {
			return nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
		}
	}

	// Both the occurrence the appointment left and the one it now occupies
	// have changed capacity.
	s.invalidateAvailability(ctx, *existing)
	s.invalidateAvailability(ctx, updated)

	if existing.Status != models.AppointmentStatusConfirmed && updated.Status == models.AppointmentStatusConfirmed {
		s.notifyConfirmed(updated)
	}
	return &updated, nil
}

// notifyConfirmed hands the appointment to the notification collaborator.
// Failures are logged and swallowed: the booking is already committed and a
// missed email must never roll it back.
func (s *DefaultAppointmentService) notifyConfirmed(appt models.Appointment) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.NotifyAppointmentConfirmed(appt); err != nil {
		utils.GetLogger().Warn("Failed to dispatch confirmation notification",
			zap.String("appointmentID", appt.ID),
			zap.Error(err))
	}
}

// Delete hard-deletes an appointment.
func (s *DefaultAppointmentService) Delete(id string) error {
	existing, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	s.invalidateAvailability(context.Background(), *existing)
	return nil
}

// GetByID fetches one appointment.
func (s *DefaultAppointmentService) GetByID(id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	if appt == nil {
		return nil, ErrNotFound
	}
	return appt, nil
}

// GetAll lists all appointments.
func (s *DefaultAppointmentService) GetAll() ([]models.Appointment, error) {
	appts, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}
