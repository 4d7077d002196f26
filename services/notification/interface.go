package notification

import (
	"context"
	"fmt"

	"garagehub/models"
	"garagehub/utils"

	"go.uber.org/zap"
)

// Mailer delivers a composed message to one recipient. Delivery transport is
// an external concern; the default implementation only records the send.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NotificationService composes and delivers appointment emails. It is
// invoked from the background worker, never from a request handler.
type NotificationService interface {
	SendAppointmentConfirmationEmail(ctx context.Context, payload models.AppointmentEmailPayload) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Mailer Mailer
}

// SendAppointmentConfirmationEmail composes the confirmation message and
// hands it to the mailer.
func (s *DefaultNotificationService) SendAppointmentConfirmationEmail(ctx context.Context, p models.AppointmentEmailPayload) error {
	subject := fmt.Sprintf("Your appointment at %s is confirmed", p.GarageName)
	body := fmt.Sprintf("Hi %s,\n\nYour appointment at %s on %s is confirmed.", p.UserName, p.GarageName, p.AppointmentTime)
	if p.SlotWindow != "" {
		body += fmt.Sprintf("\nReserved window: %s.", p.SlotWindow)
	}
	body += "\n\nSee you there!"

	if err := s.Mailer.Send(ctx, p.UserEmail, subject, body); err != nil {
		return fmt.Errorf("failed to send confirmation email for appointment %s: %w", p.AppointmentID, err)
	}
	return nil
}

// LogMailer records deliveries in the application log. It stands in for a
// real mail transport.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	utils.GetLogger().Info("Email dispatched",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("bodyBytes", len(body)))
	return nil
}
