package calendar

import "time"

// Clock is the source of the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now returns f().
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the local wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Today returns the observer's local calendar date according to c.
func Today(c Clock) Date {
	return FromTime(c.Now())
}

// NextWeekday returns the next occurrence of day strictly after from. If
// from already falls on day, the result is a week later.
func NextWeekday(from Date, day time.Weekday) Date {
	daysUntil := int(day - from.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return from.AddDays(daysUntil)
}
