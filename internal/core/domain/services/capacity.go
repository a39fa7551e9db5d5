package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrNoProcessingDetail is returned by ProcessingTimeEstimator when the items
// summary carries no per-step breakdown.
var ErrNoProcessingDetail = errors.New("no processing step detail")

const (
	DefaultMaxProcessingSteps = 3
	DefaultMaxQty             = 500
	DefaultMaxWeightLbs       = 20000.0

	DefaultMediumLoadMinutes = 240.0
	DefaultHighLoadMinutes   = 480.0
)

// ProcessingStep is one operation of a processing recipe (cut, shear, saw...).
type ProcessingStep struct {
	Name           string
	SetupMinutes   float64
	MinutesPerUnit float64
	Quantity       int
}

// ItemsSummary describes the goods behind a promise request.
type ItemsSummary struct {
	TotalQty              int
	TotalWeight           float64
	ProcessingStepsCount  int
	ProcessingStepsDetail []ProcessingStep
}

// CapacityAssessment is advisory; it never blocks a date.
type CapacityAssessment struct {
	AtRisk bool
	Note   string
}

// CapacityEstimator flags capacity risk for an items summary.
type CapacityEstimator interface {
	Estimate(items ItemsSummary) (CapacityAssessment, error)
}

// ThresholdCapacityEstimator flags risk when the step count, quantity or
// weight exceeds a fixed limit.
type ThresholdCapacityEstimator struct {
	MaxProcessingSteps int
	MaxQty             int
	MaxWeightLbs       float64
}

// NewThresholdCapacityEstimator returns the estimator with the default limits.
func NewThresholdCapacityEstimator() ThresholdCapacityEstimator {
	return ThresholdCapacityEstimator{
		MaxProcessingSteps: DefaultMaxProcessingSteps,
		MaxQty:             DefaultMaxQty,
		MaxWeightLbs:       DefaultMaxWeightLbs,
	}
}

// Estimate never fails.
func (e ThresholdCapacityEstimator) Estimate(items ItemsSummary) (CapacityAssessment, error) {
	return assessment(e.flags(items)), nil
}

func (e ThresholdCapacityEstimator) flags(items ItemsSummary) []string {
	p := message.NewPrinter(language.English)

	var flags []string
	if items.ProcessingStepsCount > e.MaxProcessingSteps {
		flags = append(flags, p.Sprintf("%d processing steps (limit %d)", items.ProcessingStepsCount, e.MaxProcessingSteps))
	}
	if items.TotalQty > e.MaxQty {
		flags = append(flags, p.Sprintf("quantity %d exceeds %d units", items.TotalQty, e.MaxQty))
	}
	if items.TotalWeight > e.MaxWeightLbs {
		flags = append(flags, p.Sprintf("weight %d lbs exceeds %d lbs",
			int64(math.Round(items.TotalWeight)), int64(math.Round(e.MaxWeightLbs))))
	}
	return flags
}

// ProcessingTimeEstimator refines the threshold check with an estimated
// processing duration: the sum over steps of setup plus per-unit minutes.
// Durations at or above MediumMinutes are a medium load, at or above
// HighMinutes a high load; either flags risk.
type ProcessingTimeEstimator struct {
	Thresholds    ThresholdCapacityEstimator
	MediumMinutes float64
	HighMinutes   float64
}

// NewProcessingTimeEstimator returns the estimator with default bands and limits.
func NewProcessingTimeEstimator() ProcessingTimeEstimator {
	return ProcessingTimeEstimator{
		Thresholds:    NewThresholdCapacityEstimator(),
		MediumMinutes: DefaultMediumLoadMinutes,
		HighMinutes:   DefaultHighLoadMinutes,
	}
}

// Estimate fails with ErrNoProcessingDetail when no breakdown is supplied, or
// when a step has negative values. Callers fall back to the threshold
// estimator on any error.
func (e ProcessingTimeEstimator) Estimate(items ItemsSummary) (CapacityAssessment, error) {
	minutes, err := EstimateProcessingMinutes(items.ProcessingStepsDetail)
	if err != nil {
		return CapacityAssessment{}, err
	}

	flags := e.Thresholds.flags(items)
	p := message.NewPrinter(language.English)
	switch {
	case minutes >= e.HighMinutes:
		flags = append(flags, p.Sprintf("estimated processing %.1f h (high load)", minutes/60))
	case minutes >= e.MediumMinutes:
		flags = append(flags, p.Sprintf("estimated processing %.1f h (medium load)", minutes/60))
	}
	return assessment(flags), nil
}

// EstimateProcessingMinutes sums setup and per-unit time over steps.
func EstimateProcessingMinutes(steps []ProcessingStep) (float64, error) {
	if len(steps) == 0 {
		return 0, ErrNoProcessingDetail
	}
	var total float64
	for i, s := range steps {
		if s.SetupMinutes < 0 || s.MinutesPerUnit < 0 || s.Quantity < 0 {
			return 0, fmt.Errorf("processing step %d (%s) has negative values", i+1, s.Name)
		}
		total += s.SetupMinutes + s.MinutesPerUnit*float64(s.Quantity)
	}
	return total, nil
}

func assessment(flags []string) CapacityAssessment {
	if len(flags) == 0 {
		return CapacityAssessment{}
	}
	return CapacityAssessment{AtRisk: true, Note: "Capacity risk: " + strings.Join(flags, "; ")}
}
