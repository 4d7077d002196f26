package models

import "time"

// Appointment statuses. An appointment starts out pending; completed and
// canceled are terminal.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCanceled  = "canceled"
)

// Appointment is a customer's service booking at a garage, tied to the order
// that pays for it. ScheduleSlotID is optional: appointments may exist
// outside any recurring slot, but when set the appointment time must land on
// the slot's weekday inside its clock window.
type Appointment struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	GarageID        string    `bson:"garage_id" json:"garage_id"`
	ScheduleSlotID  string    `bson:"schedule_slot_id,omitempty" json:"schedule_slot_id,omitempty"`
	OrderID         string    `bson:"order_id" json:"order_id"`
	AppointmentTime time.Time `bson:"appointment_time" json:"appointment_time"`
	Status          string    `bson:"status" json:"status"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// AppointmentUpdate carries a partial update; nil fields keep prior values.
type AppointmentUpdate struct {
	AppointmentTime *time.Time `json:"appointment_time,omitempty"`
	ScheduleSlotID  *string    `json:"schedule_slot_id,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// ValidAppointmentStatus reports whether s names a known status.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCanceled:
		return true
	}
	return false
}

// CanTransitionStatus reports whether the status machine allows moving an
// appointment from one status to another:
//
//	pending   -> confirmed | canceled
//	confirmed -> completed | canceled
//
// completed and canceled are terminal. Setting the same status again is a
// no-op and always allowed.
func CanTransitionStatus(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case AppointmentStatusPending:
		return to == AppointmentStatusConfirmed || to == AppointmentStatusCanceled
	case AppointmentStatusConfirmed:
		return to == AppointmentStatusCompleted || to == AppointmentStatusCanceled
	}
	return false
}
