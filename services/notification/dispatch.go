package notification

import (
	"fmt"

	garageRepo "garagehub/database/repository/garage"
	scheduleRepo "garagehub/database/repository/schedule"
	userRepo "garagehub/database/repository/user"

	"garagehub/models"
	"garagehub/services/tasks"
	"garagehub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqNotifier queues confirmation emails on the background worker. It
// denormalizes everything the worker needs into the task payload so the
// worker never touches the database.
type AsynqNotifier struct {
	Client  *asynq.Client
	Users   userRepo.UserRepository
	Garages garageRepo.GarageRepository
	Slots   scheduleRepo.ScheduleRepository
}

// NotifyAppointmentConfirmed builds and enqueues the confirmation email task
// for a freshly confirmed appointment.
func (n *AsynqNotifier) NotifyAppointmentConfirmed(appt models.Appointment) error {
	u, err := n.Users.GetByID(appt.UserID)
	if err != nil {
		return fmt.Errorf("failed to load user %s: %w", appt.UserID, err)
	}
	if u == nil {
		return fmt.Errorf("user %s not found", appt.UserID)
	}
	g, err := n.Garages.GetByID(appt.GarageID)
	if err != nil {
		return fmt.Errorf("failed to load garage %s: %w", appt.GarageID, err)
	}
	if g == nil {
		return fmt.Errorf("garage %s not found", appt.GarageID)
	}

	payload := models.AppointmentEmailPayload{
		AppointmentID:   appt.ID,
		UserEmail:       u.Email,
		UserName:        u.Name,
		GarageName:      g.Name,
		AppointmentTime: appt.AppointmentTime.Format("2006-01-02 15:04"),
	}
	if appt.ScheduleSlotID != "" {
		slot, err := n.Slots.GetByID(appt.ScheduleSlotID)
		if err == nil && slot != nil {
			payload.SlotWindow = slot.StartTime + " - " + slot.EndTime
		}
	}

	task, err := tasks.NewAppointmentEmailTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build email task: %w", err)
	}
	info, err := n.Client.Enqueue(task)
	if err != nil {
		return fmt.Errorf("failed to enqueue email task: %w", err)
	}

	utils.GetLogger().Debug("Confirmation email queued",
		zap.String("appointmentID", appt.ID),
		zap.String("taskID", info.ID))
	return nil
}
