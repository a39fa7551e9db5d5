package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/calendar"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/rules"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/guard"
)

var ErrSaveCutoffRuleSetCommandIsNotConstructed = errors.New(
	"SaveCutoffRuleSetCommand must be created via NewSaveCutoffRuleSetCommand constructor",
)

// DivisionRuleInput is the wire shape of one division's rule.
type DivisionRuleInput struct {
	Code                 string
	Cutoff               string // "HH:MM" in the location's time zone
	NextDayEnabled       bool
	ShipDays             []int // 0=Sun..6=Sat
	PickupSameDayEnabled bool
}

// BlackoutInput is the wire shape of one blackout window.
type BlackoutInput struct {
	Start  string // YYYY-MM-DD
	End    string // YYYY-MM-DD
	Reason string
}

// SaveCutoffRuleSetCommand creates or replaces the cutoff rules of a location.
// The constructor parses every input so that a malformed rule set is rejected
// before any transaction starts.
type SaveCutoffRuleSetCommand struct { //nolint:recvcheck //using for validation
	ruleSet *rules.CutoffRuleSet

	guard guard.ConstructorGuard
}

// NewSaveCutoffRuleSetCommand reports every malformed division and blackout at once.
func NewSaveCutoffRuleSetCommand(
	locationID string,
	timezone string,
	divisions []DivisionRuleInput,
	blackouts []BlackoutInput,
) (SaveCutoffRuleSetCommand, error) {
	divisionRules, divErr := parseDivisionRules(divisions)
	windows, blackoutErr := parseBlackouts(blackouts)
	if err := errors.Join(divErr, blackoutErr); err != nil {
		return SaveCutoffRuleSetCommand{}, err
	}

	ruleSet, err := rules.NewCutoffRuleSet(locationID, timezone, divisionRules, windows)
	if err != nil {
		return SaveCutoffRuleSetCommand{}, err
	}

	return SaveCutoffRuleSetCommand{
		ruleSet: ruleSet,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SaveCutoffRuleSetCommand) Validate() error {
	return c.guard.Validate(ErrSaveCutoffRuleSetCommandIsNotConstructed)
}

func (c SaveCutoffRuleSetCommand) RuleSet() *rules.CutoffRuleSet {
	return c.ruleSet
}

func parseDivisionRules(inputs []DivisionRuleInput) (map[string]rules.DivisionRule, error) {
	var err error
	out := make(map[string]rules.DivisionRule, len(inputs))
	for i, in := range inputs {
		param := fmt.Sprintf("divisions[%d]", i)
		code := strings.ToUpper(strings.TrimSpace(in.Code))
		if code == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(param+".code"))
			continue
		}
		if _, dup := out[code]; dup {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(param+".code",
				fmt.Errorf("division %s is listed more than once", code)))
			continue
		}

		cutoff, cErr := calendar.ParseClockTime(in.Cutoff)
		shipDays, sErr := calendar.NewWeekdaySet(in.ShipDays...)
		if cErr != nil || sErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(param, errors.Join(cErr, sErr)))
			continue
		}

		rule, rErr := rules.NewDivisionRule(cutoff, in.NextDayEnabled, shipDays, in.PickupSameDayEnabled)
		if rErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(param, rErr))
			continue
		}
		out[code] = rule
	}
	return out, err
}

func parseBlackouts(inputs []BlackoutInput) ([]calendar.BlackoutWindow, error) {
	var err error
	out := make([]calendar.BlackoutWindow, 0, len(inputs))
	for i, in := range inputs {
		param := fmt.Sprintf("blackouts[%d]", i)
		start, sErr := calendar.ParseDate(in.Start)
		end, eErr := calendar.ParseDate(in.End)
		if sErr != nil || eErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(param, errors.Join(sErr, eErr)))
			continue
		}

		window, wErr := calendar.NewBlackoutWindow(start, end, in.Reason)
		if wErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(param, wErr))
			continue
		}
		out = append(out, window)
	}
	return out, err
}
