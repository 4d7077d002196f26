package utils

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	d, err := ParseClock("09:30:15")
	if err != nil {
		t.Fatalf("ParseClock failed: %v", err)
	}
	want := 9*time.Hour + 30*time.Minute + 15*time.Second
	if d != want {
		t.Fatalf("ParseClock = %v, want %v", d, want)
	}

	for _, bad := range []string{"", "9:30", "25:00:00", "09:61:00", "morning"} {
		if _, err := ParseClock(bad); err == nil {
			t.Fatalf("expected ParseClock(%q) to fail", bad)
		}
	}
}

func TestClockOf(t *testing.T) {
	at := time.Date(2026, 3, 2, 14, 5, 9, 0, time.Local)
	if got := ClockOf(at); got != "14:05:09" {
		t.Fatalf("ClockOf = %q, want %q", got, "14:05:09")
	}
}

func TestDayWindow(t *testing.T) {
	at := time.Date(2026, 3, 2, 10, 45, 0, 0, time.Local)
	from, to, err := DayWindow(at, "09:00:00", "12:00:00")
	if err != nil {
		t.Fatalf("DayWindow failed: %v", err)
	}

	wantFrom := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	wantTo := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
	if !from.Equal(wantFrom) || !to.Equal(wantTo) {
		t.Fatalf("DayWindow = [%v, %v), want [%v, %v)", from, to, wantFrom, wantTo)
	}

	if _, _, err := DayWindow(at, "nonsense", "12:00:00"); err == nil {
		t.Fatal("expected DayWindow to reject a malformed start clock")
	}
}
