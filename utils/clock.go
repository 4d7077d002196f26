package utils

import (
	"fmt"
	"time"
)

const clockLayout = "15:04:05"

// ParseClock parses an "HH:MM:SS" local time-of-day into an offset from
// midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// ClockOf formats t's local time-of-day as "HH:MM:SS".
func ClockOf(t time.Time) string {
	return t.Format(clockLayout)
}

// DayWindow resolves the absolute [start, end) window of a clock range on
// the calendar date of t, in t's location.
func DayWindow(t time.Time, startClock, endClock string) (time.Time, time.Time, error) {
	start, err := ParseClock(startClock)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseClock(endClock)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.Add(start), midnight.Add(end), nil
}
