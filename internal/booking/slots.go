package booking

import (
	"fmt"
	"strings"
	"time"
)

// Branch working hours. Slots are half-hour windows from opening to closing
// with the 13:00-14:00 lunch hour closed entirely.
const (
	openingHour = 10
	closingHour = 16
	lunchHour   = 13
	slotMinutes = 30
)

// TimeSlots returns the ordered list of bookable slot labels for a business
// day. The set is identical every day.
func TimeSlots() []string {
	slots := make([]string, 0, 10)
	for minute := openingHour * 60; minute < closingHour*60; minute += slotMinutes {
		start := minute
		end := minute + slotMinutes
		// Both the slot starting inside the lunch hour and the slot ending
		// at the end of it are omitted.
		if start >= lunchHour*60 && start < (lunchHour+1)*60 {
			continue
		}
		slots = append(slots, fmt.Sprintf("%s - %s", clockLabel(start), clockLabel(end)))
	}
	return slots
}

// IsValidSlot reports whether label is one of the fixed bookable slots.
func IsValidSlot(label string) bool {
	for _, s := range TimeSlots() {
		if s == label {
			return true
		}
	}
	return false
}

// SlotStart parses the start time of a slot label, returning the 24-hour
// clock hour and minute.
func SlotStart(label string) (hour, minute int, err error) {
	start, _, ok := strings.Cut(label, " - ")
	if !ok {
		return 0, 0, fmt.Errorf("malformed slot label %q", label)
	}
	t, err := time.Parse("3:04 PM", strings.TrimSpace(start))
	if err != nil {
		return 0, 0, fmt.Errorf("malformed slot label %q: %w", label, err)
	}
	return t.Hour(), t.Minute(), nil
}

// clockLabel formats minutes-since-midnight as a 12-hour clock label with a
// two-digit minute, e.g. 750 -> "12:30 PM".
func clockLabel(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, suffix)
}
