package booking

import "time"

// IsBankHoliday reports whether the branch is closed on the given date.
// Branches close every Sunday and on the 2nd and 4th Saturday of the month.
// This gates which dates are bookable; it does not gate cancellation.
func IsBankHoliday(d time.Time) bool {
	switch d.Weekday() {
	case time.Sunday:
		return true
	case time.Saturday:
		day := d.Day()
		return (day >= 9 && day <= 14) || (day >= 22 && day <= 28)
	default:
		return false
	}
}
