package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/simitmodi/Stride-sub000/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func appt(date time.Time, service string, cancelled bool) models.Appointment {
	a := models.Appointment{
		Date:      date,
		Service:   service,
		Cancelled: cancelled,
	}
	a.ID = uuid.New()
	return a
}

func historyFixture() ([]models.Appointment, time.Time) {
	now := time.Date(2026, time.June, 15, 10, 30, 0, 0, time.UTC)
	appointments := []models.Appointment{
		appt(day(2026, time.June, 10), "PAN update", false),       // past
		appt(day(2026, time.June, 15), "Account opening", false),  // today -> upcoming
		appt(day(2026, time.June, 20), "Loan enquiry", false),     // upcoming
		appt(day(2026, time.June, 20), "Locker access", false),    // upcoming, same day
		appt(day(2026, time.June, 12), "Card replacement", true),  // cancelled, past date
		appt(day(2026, time.June, 25), "Fixed deposit", true),     // cancelled, future date
	}
	return appointments, now
}

func flatten(h History) []models.Appointment {
	var out []models.Appointment
	for _, g := range h.Groups {
		out = append(out, g.Appointments...)
	}
	return out
}

func TestBuildHistory_Filters(t *testing.T) {
	appointments, now := historyFixture()

	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"PAN update", "Account opening", "Loan enquiry", "Locker access"}},
		{FilterUpcoming, []string{"Account opening", "Loan enquiry", "Locker access"}},
		{FilterPast, []string{"PAN update"}},
		{FilterCancelled, []string{"Card replacement", "Fixed deposit"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			h := BuildHistory(appointments, tt.filter, OrderAsc, now)
			got := flatten(h)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d appointments, got %d", len(tt.want), len(got))
			}
			seen := make(map[string]bool)
			for _, a := range got {
				seen[a.Service] = true
			}
			for _, svc := range tt.want {
				if !seen[svc] {
					t.Errorf("expected %q in %s view", svc, tt.filter)
				}
			}
		})
	}
}

func TestBuildHistory_UpcomingPastPartitionNonDeleted(t *testing.T) {
	appointments, now := historyFixture()

	upcoming := flatten(BuildHistory(appointments, FilterUpcoming, OrderAsc, now))
	past := flatten(BuildHistory(appointments, FilterPast, OrderAsc, now))
	cancelled := flatten(BuildHistory(appointments, FilterCancelled, OrderAsc, now))

	counts := make(map[uuid.UUID]int)
	for _, a := range upcoming {
		counts[a.ID]++
	}
	for _, a := range past {
		counts[a.ID]++
	}

	for _, a := range appointments {
		if a.Cancelled {
			if counts[a.ID] != 0 {
				t.Errorf("cancelled %q leaked into upcoming/past", a.Service)
			}
			continue
		}
		if counts[a.ID] != 1 {
			t.Errorf("non-deleted %q appears %d times across upcoming/past, expected exactly once", a.Service, counts[a.ID])
		}
	}

	for _, c := range cancelled {
		for _, u := range upcoming {
			if c.ID == u.ID {
				t.Errorf("%q is in both cancelled and upcoming", c.Service)
			}
		}
	}
}

func TestBuildHistory_GroupingIsAPartition(t *testing.T) {
	appointments, now := historyFixture()
	h := BuildHistory(appointments, FilterAll, OrderAsc, now)

	seenDays := make(map[string]bool)
	total := 0
	for _, g := range h.Groups {
		if seenDays[g.Day] {
			t.Errorf("day %s appears in more than one group", g.Day)
		}
		seenDays[g.Day] = true
		for _, a := range g.Appointments {
			if a.Date.Format("2006-01-02") != g.Day {
				t.Errorf("%q dated %s grouped under %s", a.Service, a.Date.Format("2006-01-02"), g.Day)
			}
			total++
		}
	}
	if total != 4 {
		t.Fatalf("groups hold %d appointments, expected 4", total)
	}
}

func TestBuildHistory_SortOrder(t *testing.T) {
	appointments, now := historyFixture()

	asc := BuildHistory(appointments, FilterAll, OrderAsc, now)
	for i := 1; i < len(asc.Groups); i++ {
		if asc.Groups[i-1].Day >= asc.Groups[i].Day {
			t.Errorf("ascending order violated: %s before %s", asc.Groups[i-1].Day, asc.Groups[i].Day)
		}
	}

	desc := BuildHistory(appointments, FilterAll, OrderDesc, now)
	for i := 1; i < len(desc.Groups); i++ {
		if desc.Groups[i-1].Day <= desc.Groups[i].Day {
			t.Errorf("descending order violated: %s before %s", desc.Groups[i-1].Day, desc.Groups[i].Day)
		}
	}
}

func TestBuildHistory_InnerOrderIsSourceOrder(t *testing.T) {
	appointments, now := historyFixture()
	h := BuildHistory(appointments, FilterUpcoming, OrderAsc, now)

	for _, g := range h.Groups {
		if g.Day != "2026-06-20" {
			continue
		}
		if len(g.Appointments) != 2 {
			t.Fatalf("expected 2 appointments on 2026-06-20, got %d", len(g.Appointments))
		}
		if g.Appointments[0].Service != "Loan enquiry" || g.Appointments[1].Service != "Locker access" {
			t.Errorf("source order not preserved within the day group: %q, %q",
				g.Appointments[0].Service, g.Appointments[1].Service)
		}
	}
}

func TestBuildHistory_EmptyVersusNoMatch(t *testing.T) {
	now := time.Date(2026, time.June, 15, 10, 30, 0, 0, time.UTC)

	empty := BuildHistory(nil, FilterAll, OrderAsc, now)
	if !empty.NoRecords || empty.NoMatches {
		t.Fatalf("empty source: NoRecords=%v NoMatches=%v, expected true/false", empty.NoRecords, empty.NoMatches)
	}

	onlyCancelled := []models.Appointment{appt(day(2026, time.June, 10), "PAN update", true)}
	filteredOut := BuildHistory(onlyCancelled, FilterUpcoming, OrderAsc, now)
	if filteredOut.NoRecords || !filteredOut.NoMatches {
		t.Fatalf("fully filtered source: NoRecords=%v NoMatches=%v, expected false/true",
			filteredOut.NoRecords, filteredOut.NoMatches)
	}
	if len(filteredOut.Groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(filteredOut.Groups))
	}
}

func TestParseFilterAndSortOrder(t *testing.T) {
	if ParseFilter("upcoming") != FilterUpcoming || ParseFilter("cancelled") != FilterCancelled {
		t.Error("known filters must parse to themselves")
	}
	if ParseFilter("") != FilterAll || ParseFilter("bogus") != FilterAll {
		t.Error("unknown filters must default to all")
	}
	if ParseSortOrder("desc") != OrderDesc {
		t.Error("desc must parse to OrderDesc")
	}
	if ParseSortOrder("") != OrderAsc || ParseSortOrder("bogus") != OrderAsc {
		t.Error("unknown sort orders must default to asc")
	}
}
