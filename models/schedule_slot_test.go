package models

import (
	"testing"
	"time"
)

func TestClockRangesOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical ranges", "09:00:00", "12:00:00", "09:00:00", "12:00:00", true},
		{"a starts inside b", "10:00:00", "13:00:00", "09:00:00", "12:00:00", true},
		{"a ends inside b", "08:00:00", "10:00:00", "09:00:00", "12:00:00", true},
		{"a contains b", "08:00:00", "13:00:00", "09:00:00", "12:00:00", true},
		{"a inside b", "10:00:00", "11:00:00", "09:00:00", "12:00:00", true},
		{"a before b", "06:00:00", "08:00:00", "09:00:00", "12:00:00", false},
		{"a after b", "13:00:00", "15:00:00", "09:00:00", "12:00:00", false},
		{"a ends where b starts", "07:00:00", "09:00:00", "09:00:00", "12:00:00", false},
		{"a starts where b ends", "12:00:00", "14:00:00", "09:00:00", "12:00:00", false},
		{"one minute of overlap", "11:59:00", "13:00:00", "09:00:00", "12:00:00", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClockRangesOverlap(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
			if got != tc.want {
				t.Fatalf("ClockRangesOverlap(%s-%s, %s-%s) = %v, want %v",
					tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
			// Overlap is symmetric.
			if ClockRangesOverlap(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd) != got {
				t.Fatalf("overlap is not symmetric for %s-%s vs %s-%s", tc.aStart, tc.aEnd, tc.bStart, tc.bEnd)
			}
		})
	}
}

func TestSlotOverlaps(t *testing.T) {
	slot := GarageScheduleSlot{StartTime: "09:00:00", EndTime: "12:00:00"}
	if !slot.Overlaps("11:00:00", "13:00:00") {
		t.Fatal("expected overlap with intersecting range")
	}
	if slot.Overlaps("12:00:00", "14:00:00") {
		t.Fatal("touching ranges must not overlap")
	}
}

func TestWeekdayName(t *testing.T) {
	// 2026-03-02 is a Monday.
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)
	if got := WeekdayName(monday); got != "monday" {
		t.Fatalf("WeekdayName = %q, want %q", got, "monday")
	}
	sunday := monday.AddDate(0, 0, 6)
	if got := WeekdayName(sunday); got != "sunday" {
		t.Fatalf("WeekdayName = %q, want %q", got, "sunday")
	}
}

func TestValidWeekday(t *testing.T) {
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		if !ValidWeekday(day) {
			t.Fatalf("expected %q to be a valid weekday", day)
		}
	}
	for _, day := range []string{"", "Monday", "mon", "funday"} {
		if ValidWeekday(day) {
			t.Fatalf("expected %q to be rejected", day)
		}
	}
}
