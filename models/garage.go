package models

import "time"

// Garage is a registered shop that publishes a weekly schedule and accepts
// appointments. OwnerID gates schedule management.
type Garage struct {
	ID          string    `bson:"id" json:"id"`
	OwnerID     string    `bson:"owner_id" json:"owner_id"`
	Name        string    `bson:"name" json:"name"`
	Location    string    `bson:"location" json:"location,omitempty"`
	PhoneNumber string    `bson:"phone_number" json:"phone_number,omitempty"`
	Services    []string  `bson:"services,omitempty" json:"services,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// GarageSchedule is the weekly view returned by GET /garages/:id/schedule:
// active slots grouped per weekday.
type GarageSchedule struct {
	GarageID string                          `json:"garage_id"`
	Days     map[string][]GarageScheduleSlot `json:"days"`
}
