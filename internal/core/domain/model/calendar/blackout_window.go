package calendar

import (
	"errors"
	"fmt"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
)

// BlackoutWindow is an inclusive range of days on which nothing may be promised.
type BlackoutWindow struct {
	start  Date
	end    Date
	reason string
}

// NewBlackoutWindow requires both bounds and start <= end.
func NewBlackoutWindow(start, end Date, reason string) (BlackoutWindow, error) {
	var err error
	if start.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("blackout start"))
	}
	if end.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("blackout end"))
	}
	if err == nil && end.Before(start) {
		err = errs.NewValueIsInvalidErrorWithCause(
			"blackout window",
			fmt.Errorf("end %s is before start %s", end, start),
		)
	}
	if err != nil {
		return BlackoutWindow{}, err
	}
	return BlackoutWindow{start: start, end: end, reason: reason}, nil
}

// Start returns the first blacked-out day.
func (w BlackoutWindow) Start() Date {
	return w.start
}

// End returns the last blacked-out day.
func (w BlackoutWindow) End() Date {
	return w.end
}

// Reason returns the free-text explanation.
func (w BlackoutWindow) Reason() string {
	return w.reason
}

// Contains reports whether d falls within the window, bounds included.
func (w BlackoutWindow) Contains(d Date) bool {
	return !d.Before(w.start) && !d.After(w.end)
}
