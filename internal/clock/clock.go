// Package clock provides the time source used for punch timestamps and for
// deciding which calendar day an action belongs to.
package clock

import "time"

// DateLayout is the ISO calendar date used as the attendance partition key.
const DateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

type wallClock struct {
	loc *time.Location
}

// New returns the wall clock observed in loc. A nil loc means time.Local.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return wallClock{loc: loc}
}

func (c wallClock) Now() time.Time {
	return time.Now().In(c.loc)
}

type fixedClock struct {
	t time.Time
}

// Fixed always returns t.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// Today is the calendar date of c.Now() in the clock's own location.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}
