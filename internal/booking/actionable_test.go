package booking

import (
	"testing"
	"time"
)

func TestIsActionable(t *testing.T) {
	loc := time.UTC
	tomorrow := time.Date(2026, time.March, 3, 0, 0, 0, 0, loc)
	slot := "10:00 AM - 10:30 AM"

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		// Threshold for a 10:00 start is now+12h: 23:00 the evening before
		// puts the threshold at 11:00 the next day, past the start.
		{"late evening before", time.Date(2026, time.March, 2, 23, 0, 0, 0, loc), false},
		{"exactly twelve hours before", time.Date(2026, time.March, 2, 22, 0, 0, 0, loc), false},
		{"just over twelve hours before", time.Date(2026, time.March, 2, 21, 59, 59, 0, loc), true},
		{"two days before", time.Date(2026, time.March, 1, 9, 0, 0, 0, loc), true},
		{"after the appointment", time.Date(2026, time.March, 3, 12, 0, 0, 0, loc), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsActionable(tomorrow, slot, tt.now); got != tt.want {
				t.Errorf("IsActionable(now=%s) = %v, expected %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestIsActionable_MalformedSlot(t *testing.T) {
	date := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if IsActionable(date, "not a slot", now) {
		t.Fatal("a malformed slot label must never be actionable")
	}
}

func TestIsActionable_Monotonic(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, loc)
	slot := "2:00 PM - 2:30 PM"
	now := time.Date(2026, time.March, 9, 12, 0, 0, 0, loc)

	if !IsActionable(date, slot, now) {
		t.Fatal("expected appointment to be actionable at the base instant")
	}

	// Actionable at some instant implies actionable at every earlier one.
	for i := 1; i <= 72; i++ {
		earlier := now.Add(-time.Duration(i) * time.Hour)
		if !IsActionable(date, slot, earlier) {
			t.Fatalf("actionable at %s but not at earlier %s", now, earlier)
		}
	}
}
