package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/guard"
)

// ErrClockTimeIsNotConstructed is returned by Validate for zero-value clock times.
var ErrClockTimeIsNotConstructed = errors.New("ClockTime must be created via NewClockTime or ParseClockTime")

// ClockTime is a local wall-clock time of day with minute precision ("HH:MM").
type ClockTime struct {
	hour   int
	minute int

	guard guard.ConstructorGuard
}

// NewClockTime validates hour (0-23) and minute (0-59).
func NewClockTime(hour, minute int) (ClockTime, error) {
	var err error
	if hour < 0 || hour > 23 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("hour", hour, 0, 23))
	}
	if minute < 0 || minute > 59 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("minute", minute, 0, 59))
	}
	if err != nil {
		return ClockTime{}, err
	}
	return ClockTime{hour: hour, minute: minute, guard: guard.NewConstructorGuard()}, nil
}

// MustClockTime is ParseClockTime for literals known to be valid; it panics otherwise.
func MustClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseClockTime parses the 24-hour "HH:MM" form.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, errs.NewValueIsInvalidErrorWithCause(
			"cutoff",
			fmt.Errorf("%q is not a 24-hour HH:MM time", s),
		)
	}
	return NewClockTime(t.Hour(), t.Minute())
}

// Validate ensures the clock time was built through a constructor.
func (c ClockTime) Validate() error {
	return c.guard.Validate(ErrClockTimeIsNotConstructed)
}

// Hour returns the hour component.
func (c ClockTime) Hour() int {
	return c.hour
}

// Minute returns the minute component.
func (c ClockTime) Minute() int {
	return c.minute
}

// IsReachedBy reports whether the wall clock of t (in t's location) is at or
// after c.
func (c ClockTime) IsReachedBy(t time.Time) bool {
	return t.Hour()*60+t.Minute() >= c.hour*60+c.minute
}

// String returns the "HH:MM" form.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}
