package rules

import (
	"errors"
	"fmt"
	"strings"
	"time"
	// Rule sets must resolve IANA zones on hosts without a zoneinfo database.
	_ "time/tzdata"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/calendar"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
)

var (
	// ErrCutoffRuleSetIsNotConstructed is returned when a CutoffRuleSet was not
	// created through NewCutoffRuleSet.
	ErrCutoffRuleSetIsNotConstructed = errors.New("CutoffRuleSet must be created via NewCutoffRuleSet")
)

// CutoffRuleSet is the cutoff and calendar configuration of one location.
//
// Invariants:
//   - the location id is not blank
//   - the time zone is a loaded IANA location, never a fixed offset
//   - every division rule was built through NewDivisionRule
//   - blackout windows are kept in the order they were supplied
type CutoffRuleSet struct {
	locationID    string
	location      *time.Location
	divisionRules map[string]DivisionRule
	blackouts     []calendar.BlackoutWindow

	isConstructed bool
}

// NewCutoffRuleSet loads timezone from the IANA database and validates the
// division rules. Division codes are matched case-insensitively.
//
// Example:
//
//	metals, _ := rules.NewDivisionRule(calendar.MustClockTime("15:00"), true, calendar.MondayToFriday, false)
//	ruleSet, err := rules.NewCutoffRuleSet("JACKSON", "America/Chicago",
//	    map[string]rules.DivisionRule{"METALS": metals}, nil)
func NewCutoffRuleSet(
	locationID string,
	timezone string,
	divisionRules map[string]DivisionRule,
	blackouts []calendar.BlackoutWindow,
) (*CutoffRuleSet, error) {
	rs := &CutoffRuleSet{isConstructed: true}

	if err := errors.Join(
		rs.setLocationID(locationID),
		rs.setTimezone(timezone),
		rs.setDivisionRules(divisionRules),
	); err != nil {
		return nil, err
	}
	rs.blackouts = append([]calendar.BlackoutWindow(nil), blackouts...)

	return rs, nil
}

// Validate ensures the rule set was created through NewCutoffRuleSet.
func (rs *CutoffRuleSet) Validate() error {
	if rs == nil || !rs.isConstructed {
		return ErrCutoffRuleSetIsNotConstructed
	}
	return nil
}

// LocationID returns the branch or warehouse the rules apply to.
func (rs *CutoffRuleSet) LocationID() string {
	return rs.locationID
}

// Location returns the time zone used for all cutoff arithmetic.
func (rs *CutoffRuleSet) Location() *time.Location {
	return rs.location
}

// Timezone returns the IANA name of the rule set's time zone.
func (rs *CutoffRuleSet) Timezone() string {
	return rs.location.String()
}

// DivisionRules returns a copy of the per-division rules.
func (rs *CutoffRuleSet) DivisionRules() map[string]DivisionRule {
	out := make(map[string]DivisionRule, len(rs.divisionRules))
	for code, rule := range rs.divisionRules {
		out[code] = rule
	}
	return out
}

// Blackouts returns a copy of the blackout windows.
func (rs *CutoffRuleSet) Blackouts() []calendar.BlackoutWindow {
	return append([]calendar.BlackoutWindow(nil), rs.blackouts...)
}

// ResolveDivision returns the rule for division, falling back to the set's
// DEFAULT division and then to fallback. defaulted is true whenever a named
// division was not configured. An empty division asks for the DEFAULT rule
// and is only defaulted when the set has none.
func (rs *CutoffRuleSet) ResolveDivision(division string, fallback DivisionRule) (rule DivisionRule, defaulted bool) {
	code := normalizeDivision(division)
	if r, ok := rs.divisionRules[code]; ok {
		return r, false
	}
	if r, ok := rs.divisionRules[DefaultDivisionCode]; ok {
		return r, code != ""
	}
	return fallback, true
}

// BlackoutOn returns the first blackout window containing d.
func (rs *CutoffRuleSet) BlackoutOn(d calendar.Date) (calendar.BlackoutWindow, bool) {
	for _, w := range rs.blackouts {
		if w.Contains(d) {
			return w, true
		}
	}
	return calendar.BlackoutWindow{}, false
}

// IsShippable reports whether d is a ship day of rule outside every blackout window.
func (rs *CutoffRuleSet) IsShippable(rule DivisionRule, d calendar.Date) bool {
	if !rule.IsShipDay(d) {
		return false
	}
	_, blacked := rs.BlackoutOn(d)
	return !blacked
}

func (rs *CutoffRuleSet) setLocationID(locationID string) error {
	if strings.TrimSpace(locationID) == "" {
		return errs.NewValueIsRequiredError("locationId")
	}
	rs.locationID = locationID
	return nil
}

func (rs *CutoffRuleSet) setTimezone(timezone string) error {
	if strings.TrimSpace(timezone) == "" {
		return errs.NewValueIsRequiredError("timezone")
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("timezone", fmt.Errorf("%q: %w", timezone, err))
	}
	rs.location = loc
	return nil
}

func (rs *CutoffRuleSet) setDivisionRules(divisionRules map[string]DivisionRule) error {
	rs.divisionRules = make(map[string]DivisionRule, len(divisionRules))

	var err error
	for code, rule := range divisionRules {
		key := normalizeDivision(code)
		if key == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError("division code"))
			continue
		}
		if vErr := rule.Validate(); vErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("division "+key, vErr))
			continue
		}
		rs.divisionRules[key] = rule
	}
	return err
}

func normalizeDivision(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
