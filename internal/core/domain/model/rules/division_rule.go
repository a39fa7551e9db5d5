package rules

import (
	"errors"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/calendar"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/guard"
)

// ErrDivisionRuleIsNotConstructed is returned by Validate for zero-value rules.
var ErrDivisionRuleIsNotConstructed = errors.New("DivisionRule must be created via NewDivisionRule")

// DefaultDivisionCode is the division looked up when a rule set has no rule
// for the requested division.
const DefaultDivisionCode = "DEFAULT"

// DivisionRule is the cutoff policy of one division at one location.
type DivisionRule struct {
	cutoff               calendar.ClockTime
	nextDayEnabled       bool
	shipDays             calendar.WeekdaySet
	pickupSameDayEnabled bool

	guard guard.ConstructorGuard
}

// NewDivisionRule validates the cutoff and requires at least one ship day.
func NewDivisionRule(
	cutoff calendar.ClockTime,
	nextDayEnabled bool,
	shipDays calendar.WeekdaySet,
	pickupSameDayEnabled bool,
) (DivisionRule, error) {
	var err error
	if vErr := cutoff.Validate(); vErr != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("cutoff", vErr))
	}
	if shipDays.IsEmpty() {
		err = errors.Join(err, errs.NewValueIsRequiredError("shipDays"))
	}
	if err != nil {
		return DivisionRule{}, err
	}

	return DivisionRule{
		cutoff:               cutoff,
		nextDayEnabled:       nextDayEnabled,
		shipDays:             shipDays,
		pickupSameDayEnabled: pickupSameDayEnabled,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

// BuiltinDefaultRule is the last-resort rule: 15:00 cutoff, next-day enabled,
// Monday to Friday, no same-day pickup.
func BuiltinDefaultRule() DivisionRule {
	rule, err := NewDivisionRule(calendar.MustClockTime("15:00"), true, calendar.MondayToFriday, false)
	if err != nil {
		panic(err)
	}
	return rule
}

// Validate ensures the rule was built through NewDivisionRule.
func (r DivisionRule) Validate() error {
	return r.guard.Validate(ErrDivisionRuleIsNotConstructed)
}

func (r DivisionRule) Cutoff() calendar.ClockTime {
	return r.cutoff
}

func (r DivisionRule) NextDayEnabled() bool {
	return r.nextDayEnabled
}

func (r DivisionRule) ShipDays() calendar.WeekdaySet {
	return r.shipDays
}

func (r DivisionRule) PickupSameDayEnabled() bool {
	return r.pickupSameDayEnabled
}

// IsShipDay reports whether d falls on one of the division's ship days.
func (r DivisionRule) IsShipDay(d calendar.Date) bool {
	return r.shipDays.Contains(d.Weekday())
}
