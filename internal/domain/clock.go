package domain

import "time"

// Clock gives services the center's notion of "now" and "today".
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

// NewClock returns a wall clock in loc.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Location: loc, Now: time.Now}
}

// Today is the local calendar date as UTC midnight, the form DATE columns
// are written in.
func (c Clock) Today() time.Time {
	return DateOf(c.Now().In(c.location()))
}

// Local returns the current time in the center's timezone.
func (c Clock) Local() time.Time {
	return c.Now().In(c.location())
}

func (c Clock) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// DateOf strips the clock part and returns the calendar day at UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
