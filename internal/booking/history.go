package booking

import (
	"sort"
	"time"

	"github.com/simitmodi/Stride-sub000/internal/models"
)

// Filter selects which appointments appear in a history view.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterUpcoming  Filter = "upcoming"
	FilterPast      Filter = "past"
	FilterCancelled Filter = "cancelled"
)

// ParseFilter maps a query value onto a Filter, defaulting to FilterAll.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterUpcoming, FilterPast, FilterCancelled:
		return Filter(s)
	default:
		return FilterAll
	}
}

// SortOrder controls how day groups are ordered.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortOrder maps a query value onto a SortOrder, defaulting to OrderAsc.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == OrderDesc {
		return OrderDesc
	}
	return OrderAsc
}

const dayFormat = "2006-01-02"

// DayGroup holds the appointments of one calendar day, in source order.
type DayGroup struct {
	Day          string               `json:"day"`
	Appointments []models.Appointment `json:"appointments"`
}

// History is the derived view of a customer's appointments. NoRecords and
// NoMatches are distinct states: the first means the customer has never
// booked anything, the second means records exist but the filter removed
// them all.
type History struct {
	Groups    []DayGroup `json:"groups"`
	NoRecords bool       `json:"no_records"`
	NoMatches bool       `json:"no_matches"`
}

// BuildHistory filters, groups and orders a customer's appointments.
// Cancelled selects soft-deleted records regardless of date; the other
// filters drop soft-deleted records and compare the appointment day against
// the day of now. Groups are keyed by calendar day and sorted by date in
// the requested order; within a group the source order is preserved.
func BuildHistory(appointments []models.Appointment, filter Filter, order SortOrder, now time.Time) History {
	today := now.Format(dayFormat)

	var filtered []models.Appointment
	for _, a := range appointments {
		if keep(a, filter, today) {
			filtered = append(filtered, a)
		}
	}

	h := History{
		NoRecords: len(appointments) == 0,
		NoMatches: len(appointments) > 0 && len(filtered) == 0,
	}

	byDay := make(map[string][]models.Appointment)
	var days []string
	for _, a := range filtered {
		key := a.Date.Format(dayFormat)
		if _, seen := byDay[key]; !seen {
			days = append(days, key)
		}
		byDay[key] = append(byDay[key], a)
	}

	sort.Slice(days, func(i, j int) bool {
		di, _ := time.Parse(dayFormat, days[i])
		dj, _ := time.Parse(dayFormat, days[j])
		if order == OrderDesc {
			return dj.Before(di)
		}
		return di.Before(dj)
	})

	for _, day := range days {
		h.Groups = append(h.Groups, DayGroup{Day: day, Appointments: byDay[day]})
	}
	return h
}

// keep compares day keys lexically; yyyy-MM-dd orders the same as dates.
func keep(a models.Appointment, filter Filter, today string) bool {
	if filter == FilterCancelled {
		return a.Cancelled
	}
	if a.Cancelled {
		return false
	}
	switch filter {
	case FilterUpcoming:
		return a.Date.Format(dayFormat) >= today
	case FilterPast:
		return a.Date.Format(dayFormat) < today
	default:
		return true
	}
}
