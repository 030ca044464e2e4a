// Package clock provides the time source for arrival calculations.
//
// Production code takes a Clock instead of calling time.Now directly so
// tests can pin the current moment. Local time is derived from UTC with a
// fixed offset. There is no timezone database and no daylight saving
// transition: a -5 hour offset stays -5 all year.
package clock

import (
	"fmt"
	"time"

	"nextbus/internal/model"
)

// DefaultOffsetHours is the offset from UTC used when none is configured.
const DefaultOffsetHours = -5

// Clock abstracts the current time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Real returns a Clock backed by the host system clock.
func Real() Clock {
	return realClock{}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

// FixedOffset returns a zone that is offsetHours away from UTC, named
// like "UTC-5".
func FixedOffset(offsetHours int) *time.Location {
	name := "UTC"
	if offsetHours != 0 {
		name = fmt.Sprintf("UTC%+d", offsetHours)
	}
	return time.FixedZone(name, offsetHours*60*60)
}

// CurrentMoment returns the wall-clock time of day in loc, truncated to
// the minute.
func CurrentMoment(c Clock, loc *time.Location) model.TimeOfDay {
	now := c.Now().In(loc)
	return model.TimeOfDay{Hour: now.Hour(), Minute: now.Minute()}
}
