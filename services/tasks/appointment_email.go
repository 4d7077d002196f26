package tasks

import (
	"encoding/json"

	"garagehub/models"

	"github.com/hibiken/asynq"
)

const TypeAppointmentConfirmEmail = "appointment:confirm_email"

// NewAppointmentEmailTask builds the asynq task carrying a confirmation
// email payload.
func NewAppointmentEmailTask(payload models.AppointmentEmailPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAppointmentConfirmEmail, b), nil
}
