package calendar

import (
	"errors"
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
)

// WeekdaySet is a set of weekdays stored as a bitmask (bit 0 = Sunday).
type WeekdaySet uint8

// MondayToFriday is the usual ship-day calendar.
var MondayToFriday = WeekdaysOf(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)

// WeekdaysOf builds a set from time.Weekday values.
func WeekdaysOf(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// NewWeekdaySet builds a set from weekday numbers (0=Sun..6=Sat).
func NewWeekdaySet(days ...int) (WeekdaySet, error) {
	var (
		s   WeekdaySet
		err error
	)
	for _, d := range days {
		if d < 0 || d > 6 {
			err = errors.Join(err, errs.NewValueIsOutOfRangeError("weekday", d, 0, 6))
			continue
		}
		s |= 1 << uint(d)
	}
	if err != nil {
		return 0, err
	}
	return s, nil
}

// Contains reports whether d is in the set.
func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// IsEmpty reports whether the set holds no weekday.
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Days returns the weekday numbers in ascending order.
func (s WeekdaySet) Days() []int {
	days := make([]int, 0, 7)
	for d := 0; d < 7; d++ {
		if s.Contains(time.Weekday(d)) {
			days = append(days, d)
		}
	}
	return days
}
