package services

import (
	"fmt"
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/calendar"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/rules"
)

// PromiseStatus is the traffic light of an evaluation.
type PromiseStatus string

const (
	PromiseGreen  PromiseStatus = "GREEN"
	PromiseYellow PromiseStatus = "YELLOW"
	PromiseRed    PromiseStatus = "RED"
)

// Reason is a machine-readable cause code. Blackouts additionally carry a
// free-form "BLACKOUT: <reason>" entry.
type Reason string

const (
	ReasonNoRules             Reason = "NO_RULES"
	ReasonNextDayDisabled     Reason = "NEXT_DAY_DISABLED"
	ReasonNonShipDay          Reason = "NON_SHIP_DAY"
	ReasonBlackoutWindow      Reason = "BLACKOUT_WINDOW"
	ReasonCutoffPassed        Reason = "CUTOFF_PASSED"
	ReasonSameDayNotAvailable Reason = "SAME_DAY_NOT_AVAILABLE"
	ReasonDateInPast          Reason = "DATE_IN_PAST"
	ReasonCapacityRisk        Reason = "CAPACITY_RISK_STUB"
	ReasonDivisionDefaulted   Reason = "DIVISION_DEFAULTED"
)

// BlackoutReason formats the companion entry of ReasonBlackoutWindow.
func BlackoutReason(reason string) Reason {
	return Reason("BLACKOUT: " + reason)
}

const (
	earliestSearchHorizon  = 30
	suggestedSearchHorizon = 60
	suggestedDatesLimit    = 3
)

// PromiseRequest is the input of PromiseEvaluator.Evaluate.
type PromiseRequest struct {
	LocationID string
	Division   string

	// RequestedShipDate is an ISO date; empty means tomorrow.
	RequestedShipDate string

	// Items is optional; nil skips the capacity check.
	Items *ItemsSummary

	// Now overrides the evaluator clock when non-zero.
	Now time.Time
}

// PromiseEvaluation is the immutable result of an evaluation.
type PromiseEvaluation struct {
	Status            PromiseStatus
	Message           string
	LocationID        string
	Division          string
	DivisionDefaulted bool
	Timezone          string
	CutoffLocal       string
	CutoffMet         bool
	RequestedShipDate calendar.Date
	EarliestShipDate  calendar.Date
	SuggestedDates    []calendar.Date
	Reasons           []Reason
	CapacityNote      string
	EvaluatedAt       time.Time
}

// HasReason reports whether r was found.
func (e PromiseEvaluation) HasReason(r Reason) bool {
	for _, got := range e.Reasons {
		if got == r {
			return true
		}
	}
	return false
}

// PromiseEvaluator decides whether a requested ship date is achievable under
// a location's cutoff rules. It is stateless and safe for concurrent use.
//
// Business rules:
//   - missing rules degrade to YELLOW/NO_RULES, never to an error
//   - unknown divisions fall back to the rule set's DEFAULT division, then to
//     the built-in default rule; dates still follow the fallback rule but the
//     result is never better than YELLOW/DIVISION_DEFAULTED
//   - all cutoff arithmetic happens in the rule set's IANA time zone
//   - every applicable reason is reported; the first by precedence decides
//     the status and message
//   - capacity risk is advisory and only ever turns GREEN into YELLOW
//
// Example usage:
//
//	evaluator := services.NewPromiseEvaluator(services.WithClock(clock.Now))
//	eval, err := evaluator.Evaluate(ruleSet, services.PromiseRequest{
//	    LocationID: "JACKSON",
//	    Division:   "METALS",
//	})
type PromiseEvaluator struct {
	clock       func() time.Time
	capacity    CapacityEstimator
	fallback    ThresholdCapacityEstimator
	defaultRule rules.DivisionRule
}

// PromiseEvaluatorOption configures a PromiseEvaluator.
type PromiseEvaluatorOption func(*PromiseEvaluator)

// WithClock sets the source of "now".
func WithClock(clock func() time.Time) PromiseEvaluatorOption {
	return func(e *PromiseEvaluator) {
		e.clock = clock
	}
}

// WithCapacityEstimator replaces the default threshold estimator. Errors from
// the estimator make the evaluator fall back to the thresholds silently.
func WithCapacityEstimator(estimator CapacityEstimator) PromiseEvaluatorOption {
	return func(e *PromiseEvaluator) {
		e.capacity = estimator
	}
}

// WithDefaultDivisionRule replaces the built-in last-resort division rule.
func WithDefaultDivisionRule(rule rules.DivisionRule) PromiseEvaluatorOption {
	return func(e *PromiseEvaluator) {
		if rule.Validate() == nil {
			e.defaultRule = rule
		}
	}
}

// NewPromiseEvaluator creates an evaluator using time.Now, threshold capacity
// estimation and the built-in default division rule unless overridden.
func NewPromiseEvaluator(opts ...PromiseEvaluatorOption) *PromiseEvaluator {
	thresholds := NewThresholdCapacityEstimator()
	e := &PromiseEvaluator{
		clock:       time.Now,
		capacity:    thresholds,
		fallback:    thresholds,
		defaultRule: rules.BuiltinDefaultRule(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate returns the promise for req under ruleSet. ruleSet may be nil when
// the location has no rules.
//
// Returns:
//   - the evaluation, for every business input including missing rules
//   - errs.ValueIsInvalidError only when RequestedShipDate is not an ISO date
func (e *PromiseEvaluator) Evaluate(ruleSet *rules.CutoffRuleSet, req PromiseRequest) (PromiseEvaluation, error) {
	var (
		requested calendar.Date
		err       error
	)
	if req.RequestedShipDate != "" {
		if requested, err = calendar.ParseDate(req.RequestedShipDate); err != nil {
			return PromiseEvaluation{}, err
		}
	}

	now := req.Now
	if now.IsZero() {
		now = e.clock()
	}

	eval := PromiseEvaluation{
		LocationID:  req.LocationID,
		Division:    req.Division,
		EvaluatedAt: now,
	}

	if ruleSet == nil || ruleSet.Validate() != nil {
		eval.Status = PromiseYellow
		eval.Message = fmt.Sprintf("No cutoff rules configured for location %s", req.LocationID)
		eval.Reasons = []Reason{ReasonNoRules}
		return eval, nil
	}

	rule, defaulted := ruleSet.ResolveDivision(req.Division, e.defaultRule)
	localNow := now.In(ruleSet.Location())
	today := calendar.DateOf(localNow)
	tomorrow := today.AddDays(1)
	if requested.IsZero() {
		requested = tomorrow
	}
	cutoffReached := rule.Cutoff().IsReachedBy(localNow)

	eval.DivisionDefaulted = defaulted
	eval.Timezone = ruleSet.Timezone()
	eval.CutoffLocal = rule.Cutoff().String()
	eval.CutoffMet = !cutoffReached
	eval.RequestedShipDate = requested

	var reasons []Reason
	if defaulted {
		reasons = append(reasons, ReasonDivisionDefaulted)
	}
	if !rule.NextDayEnabled() {
		reasons = append(reasons, ReasonNextDayDisabled)
	}
	if !rule.IsShipDay(requested) {
		reasons = append(reasons, ReasonNonShipDay)
	}
	if window, ok := ruleSet.BlackoutOn(requested); ok {
		reasons = append(reasons, ReasonBlackoutWindow, BlackoutReason(window.Reason()))
	}
	if cutoffReached && (requested.Equal(tomorrow) || (requested.Equal(today) && rule.PickupSameDayEnabled())) {
		reasons = append(reasons, ReasonCutoffPassed)
	}
	if requested.Equal(today) && !rule.PickupSameDayEnabled() {
		reasons = append(reasons, ReasonSameDayNotAvailable)
	}
	if requested.Before(today) {
		reasons = append(reasons, ReasonDateInPast)
	}
	if req.Items != nil {
		if capacity := e.estimateCapacity(*req.Items); capacity.AtRisk {
			reasons = append(reasons, ReasonCapacityRisk)
			eval.CapacityNote = capacity.Note
		}
	}
	eval.Reasons = reasons

	shippable := func(d calendar.Date) bool { return ruleSet.IsShippable(rule, d) }
	searchFrom := tomorrow
	if cutoffReached {
		searchFrom = tomorrow.AddDays(1)
	}
	eval.EarliestShipDate, _ = calendar.FirstMatch(searchFrom, earliestSearchHorizon, shippable)
	eval.SuggestedDates = calendar.Matches(
		eval.EarliestShipDate.AddDays(1), suggestedSearchHorizon, suggestedDatesLimit, shippable)

	eval.Status, eval.Message = decide(eval, tomorrow)
	return eval, nil
}

func (e *PromiseEvaluator) estimateCapacity(items ItemsSummary) CapacityAssessment {
	if e.capacity != nil {
		if a, err := e.capacity.Estimate(items); err == nil {
			return a
		}
	}
	a, _ := e.fallback.Estimate(items)
	return a
}

// decide applies the status precedence to the collected reasons.
func decide(eval PromiseEvaluation, tomorrow calendar.Date) (PromiseStatus, string) {
	has := eval.HasReason
	earliest := formatDay(eval.EarliestShipDate)
	onlyAdvisory := true
	for _, r := range eval.Reasons {
		if r != ReasonCapacityRisk && r != ReasonNextDayDisabled && r != ReasonDivisionDefaulted {
			onlyAdvisory = false
		}
	}

	switch {
	case len(eval.Reasons) == 0:
		if eval.RequestedShipDate.Equal(tomorrow) {
			return PromiseGreen, "Next-day available"
		}
		return PromiseGreen, "Available to ship " + formatDay(eval.RequestedShipDate)
	case len(eval.Reasons) == 1 && has(ReasonCapacityRisk):
		return PromiseYellow, eval.CapacityNote
	case has(ReasonCutoffPassed):
		return PromiseRed, fmt.Sprintf("Cutoff %s passed. Earliest ship date is %s", eval.CutoffLocal, earliest)
	case has(ReasonBlackoutWindow):
		return PromiseRed, fmt.Sprintf("Requested date falls in a blackout window. Earliest ship date is %s", earliest)
	case has(ReasonNonShipDay):
		return PromiseRed, fmt.Sprintf("Requested date is not a ship day. Earliest ship date is %s", earliest)
	case has(ReasonDateInPast):
		return PromiseRed, "Requested ship date is in the past"
	case onlyAdvisory && has(ReasonNextDayDisabled):
		return PromiseYellow, fmt.Sprintf("Next-day shipping is disabled for division %s", eval.Division)
	case has(ReasonSameDayNotAvailable):
		return PromiseYellow, fmt.Sprintf("Same-day pickup is not available. Earliest ship date is %s", earliest)
	case has(ReasonCapacityRisk):
		return PromiseYellow, eval.CapacityNote
	case has(ReasonDivisionDefaulted):
		return PromiseYellow, fmt.Sprintf(
			"No cutoff rule for division %s; evaluated with the default rule (cutoff %s)", eval.Division, eval.CutoffLocal)
	default:
		return PromiseYellow, "Requested ship date needs review"
	}
}

func formatDay(d calendar.Date) string {
	return d.Time().Format("Monday 2006-01-02")
}
