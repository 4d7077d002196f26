package models

// AppointmentEmailPayload is the asynq task payload for the confirmation
// email sent when an appointment is confirmed. It is fully denormalized so
// the worker never has to touch the database.
type AppointmentEmailPayload struct {
	AppointmentID   string `json:"appointmentId"`
	UserEmail       string `json:"userEmail"`
	UserName        string `json:"userName"`
	GarageName      string `json:"garageName"`
	AppointmentTime string `json:"appointmentTime"`
	SlotWindow      string `json:"slotWindow,omitempty"` // "HH:MM:SS - HH:MM:SS" when slot-bound
}
