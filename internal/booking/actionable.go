package booking

import "time"

// CutoffWindow is how far ahead of the appointment start a customer can
// still reschedule or cancel it.
const CutoffWindow = 12 * time.Hour

// IsActionable reports whether an appointment on the given date in the given
// slot can still be rescheduled or cancelled: its start instant must be
// strictly after now plus the cutoff window. A label that fails to parse is
// never actionable.
func IsActionable(date time.Time, slot string, now time.Time) bool {
	h, m, err := SlotStart(slot)
	if err != nil {
		return false
	}
	start := time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
	return start.After(now.Add(CutoffWindow))
}
