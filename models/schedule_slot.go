package models

import (
	"strings"
	"time"
)

// GarageScheduleSlot is a recurring weekly availability window for a garage.
// Times are local clock times stored as "HH:MM:SS"; the window is half-open,
// [StartTime, EndTime), so an EndTime touching another slot's StartTime is
// not an overlap.
type GarageScheduleSlot struct {
	ID          string    `bson:"id" json:"id"`
	GarageID    string    `bson:"garage_id" json:"garage_id"`
	DayOfWeek   string    `bson:"day_of_week" json:"day_of_week"` // lowercase weekday name, e.g. "monday"
	StartTime   string    `bson:"start_time" json:"start_time"`   // "HH:MM:SS"
	EndTime     string    `bson:"end_time" json:"end_time"`       // "HH:MM:SS"
	MaxBookings int       `bson:"max_bookings" json:"max_bookings"`
	IsActive    bool      `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`

	// BookingVersion is bumped by every capacity-guarded booking write so
	// concurrent bookings for the same slot serialize on this document.
	BookingVersion int64 `bson:"booking_version" json:"-"`
}

// SlotDefinition is the payload shape for defining one slot when a garage
// owner replaces a day's schedule.
type SlotDefinition struct {
	StartTime   string `bson:"start_time" json:"start_time" binding:"required"`
	EndTime     string `bson:"end_time" json:"end_time" binding:"required"`
	MaxBookings int    `bson:"max_bookings" json:"max_bookings"`
}

// ReplaceScheduleRequest replaces the full set of slots for one weekday.
type ReplaceScheduleRequest struct {
	DayOfWeek string           `json:"day_of_week" binding:"required"`
	Slots     []SlotDefinition `json:"slots" binding:"required"`
}

// AvailableSlot is one schedule slot instantiated on a concrete date, with
// the remaining capacity computed from existing non-canceled appointments.
type AvailableSlot struct {
	ID                string `json:"id"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	MaxBookings       int    `json:"max_bookings"`
	AvailableBookings int    `json:"available_bookings"`
	IsFull            bool   `json:"is_full"`
}

// ClockRangesOverlap reports whether two [start, end) clock ranges intersect.
// It checks the three intersection cases: a starts inside b, a ends inside b,
// or a is fully contained in b. Fixed-width "HH:MM:SS" strings order
// lexicographically, so plain string comparison is sufficient.
func ClockRangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	switch {
	case aStart <= bStart && aEnd > bStart:
		return true
	case aStart < bEnd && aEnd >= bEnd:
		return true
	case aStart >= bStart && aEnd <= bEnd:
		return true
	}
	return false
}

// Overlaps reports whether the slot's clock range intersects [start, end).
func (s GarageScheduleSlot) Overlaps(start, end string) bool {
	return ClockRangesOverlap(s.StartTime, s.EndTime, start, end)
}

// WeekdayName returns the lowercase weekday name of t ("monday".."sunday").
func WeekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// ValidWeekday reports whether day is one of the seven lowercase weekday names.
func ValidWeekday(day string) bool {
	switch day {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}
