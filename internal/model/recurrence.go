package model

import "github.com/dori/zendo/internal/calendar"

// Recurrence is how often a task comes back after completion
type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Valid reports whether r is a known recurrence or empty
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Advance returns d moved forward by one interval. The zero date stays zero.
func (r Recurrence) Advance(d calendar.Date) calendar.Date {
	if d.IsZero() {
		return d
	}
	switch r {
	case RecurrenceDaily:
		return d.AddDays(1)
	case RecurrenceWeekly:
		return d.AddDays(7)
	case RecurrenceMonthly:
		return d.AddMonths(1)
	default:
		return d
	}
}
