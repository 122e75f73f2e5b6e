package booking

import (
	"testing"
	"time"
)

func TestIsBankHoliday(t *testing.T) {
	// February 2026 has Saturdays on the 7th, 14th, 21st and 28th, which
	// exercises both inclusive boundaries of the 2nd/4th-Saturday rule.
	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"sunday", time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), true},
		{"monday", time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC), false},
		{"first saturday", time.Date(2026, time.February, 7, 0, 0, 0, 0, time.UTC), false},
		{"second saturday day 14", time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC), true},
		{"third saturday day 21", time.Date(2026, time.February, 21, 0, 0, 0, 0, time.UTC), false},
		{"fourth saturday day 28", time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), true},
		{"saturday day 9", time.Date(2027, time.January, 9, 0, 0, 0, 0, time.UTC), true},
		{"saturday day 12", time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC), true},
		{"saturday day 22", time.Date(2026, time.August, 22, 0, 0, 0, 0, time.UTC), true},
		{"weekday day 14", time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC), false},
		{"friday", time.Date(2026, time.February, 27, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBankHoliday(tt.date); got != tt.want {
				t.Errorf("IsBankHoliday(%s %s) = %v, expected %v",
					tt.date.Format("2006-01-02"), tt.date.Weekday(), got, tt.want)
			}
		})
	}
}

func TestIsBankHoliday_EverySunday(t *testing.T) {
	d := time.Date(2026, time.January, 4, 0, 0, 0, 0, time.UTC) // a Sunday
	for i := 0; i < 52; i++ {
		if !IsBankHoliday(d) {
			t.Errorf("expected Sunday %s to be a holiday", d.Format("2006-01-02"))
		}
		d = d.AddDate(0, 0, 7)
	}
}

func TestIsBankHoliday_SaturdayRule(t *testing.T) {
	// Across a full year, a Saturday is a holiday iff its day of month is
	// in [9,14] or [22,28].
	d := time.Date(2026, time.January, 3, 0, 0, 0, 0, time.UTC) // a Saturday
	for i := 0; i < 52; i++ {
		day := d.Day()
		want := (day >= 9 && day <= 14) || (day >= 22 && day <= 28)
		if got := IsBankHoliday(d); got != want {
			t.Errorf("IsBankHoliday(Saturday %s) = %v, expected %v", d.Format("2006-01-02"), got, want)
		}
		d = d.AddDate(0, 0, 7)
	}
}
