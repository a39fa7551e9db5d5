package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/order"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
)

// SplitLine is a caller-proposed quantity to ship for one order line.
type SplitLine struct {
	LineID    kernel.UUID
	QtyToShip int
}

// ValidationResult lists every problem found in a proposed split.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// SplitValidationError carries every message of a rejected split. It matches
// errs.ErrValueIsInvalid.
type SplitValidationError struct {
	Messages []string
}

func (e *SplitValidationError) Error() string {
	return fmt.Sprintf("%s: split lines (%s)", errs.ErrValueIsInvalid, strings.Join(e.Messages, "; "))
}

func (e *SplitValidationError) Unwrap() error {
	return errs.ErrValueIsInvalid
}

// SplitMeta is the caller context of a split creation.
type SplitMeta struct {
	User    string
	Carrier string
	Notes   string
}

// StatusMeta is the caller context of a status change.
type StatusMeta struct {
	User           string
	Carrier        string
	TrackingNumber string
	Notes          string
}

// LineProgress is the shipped share of one line.
type LineProgress struct {
	LineID     kernel.UUID
	LineNumber int
	ShippedPct float64
}

// OrderProgress aggregates the fulfillment metrics of an order.
type OrderProgress struct {
	Status          order.FulfillmentStatus
	OrderShippedPct float64
	Lines           []LineProgress
	Remaining       order.Remaining
}

// FulfillmentTracker validates and executes split shipments against an order
// and derives its progress. It holds no state; serializing splits per order is
// the job of the caller's storage layer.
type FulfillmentTracker struct {
	clock               func() time.Time
	newID               func() kernel.UUID
	skidWeightThreshold float64
}

// FulfillmentTrackerOption configures a FulfillmentTracker.
type FulfillmentTrackerOption func(*FulfillmentTracker)

// WithTrackerClock sets the source of event and status timestamps.
func WithTrackerClock(clock func() time.Time) FulfillmentTrackerOption {
	return func(t *FulfillmentTracker) {
		t.clock = clock
	}
}

// WithIDGenerator sets the generator of shipment, group and event ids.
func WithIDGenerator(newID func() kernel.UUID) FulfillmentTrackerOption {
	return func(t *FulfillmentTracker) {
		t.newID = newID
	}
}

// WithSkidWeightThreshold sets the line weight from which a package is a SKID.
func WithSkidWeightThreshold(lbs float64) FulfillmentTrackerOption {
	return func(t *FulfillmentTracker) {
		if lbs > 0 {
			t.skidWeightThreshold = lbs
		}
	}
}

// NewFulfillmentTracker creates a tracker with time.Now, random ids and the
// default skid threshold unless overridden.
func NewFulfillmentTracker(opts ...FulfillmentTrackerOption) *FulfillmentTracker {
	t := &FulfillmentTracker{
		clock:               time.Now,
		newID:               kernel.NewUUID,
		skidWeightThreshold: shipment.DefaultSkidWeightThreshold,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Progress derives status, shipped percentages and remaining totals.
func (t *FulfillmentTracker) Progress(o *order.Order) OrderProgress {
	lines := o.Lines()
	progress := OrderProgress{
		Status:          order.ClassifyFulfillmentStatus(lines),
		OrderShippedPct: order.OrderShippedPct(lines),
		Remaining:       order.CalcRemaining(lines),
		Lines:           make([]LineProgress, 0, len(lines)),
	}
	for _, l := range lines {
		progress.Lines = append(progress.Lines, LineProgress{
			LineID:     l.ID(),
			LineNumber: l.LineNumber(),
			ShippedPct: order.LineShippedPct(l),
		})
	}
	return progress
}

// ValidateSplit checks a proposed split against the order and collects every
// violation: an empty proposal, unknown lines, lines listed twice, cancelled
// lines, non-positive quantities and quantities above the remaining quantity.
// Quantities are never clamped.
func (t *FulfillmentTracker) ValidateSplit(o *order.Order, lines []SplitLine) ValidationResult {
	var problems []string
	if err := o.Validate(); err != nil {
		problems = append(problems, err.Error())
		return ValidationResult{Errors: problems}
	}
	if len(lines) == 0 {
		problems = append(problems, "at least one line is required")
	}

	seen := make(map[kernel.UUID]bool, len(lines))
	for _, sl := range lines {
		line, ok := o.Line(sl.LineID)
		if !ok {
			problems = append(problems, fmt.Sprintf("line %s is not on order %s", sl.LineID, o.OrderNumber()))
			continue
		}
		if seen[sl.LineID] {
			problems = append(problems, fmt.Sprintf("line %d is listed more than once", line.LineNumber()))
			continue
		}
		seen[sl.LineID] = true

		switch {
		case line.Status() == order.LineCancelled:
			problems = append(problems, fmt.Sprintf("line %d is cancelled", line.LineNumber()))
		case sl.QtyToShip <= 0:
			problems = append(problems, fmt.Sprintf(
				"line %d: quantity to ship must be greater than 0, got %d", line.LineNumber(), sl.QtyToShip))
		case sl.QtyToShip > line.QtyRemaining():
			problems = append(problems, fmt.Sprintf(
				"line %d: quantity to ship %d exceeds remaining quantity %d",
				line.LineNumber(), sl.QtyToShip, line.QtyRemaining()))
		}
	}

	return ValidationResult{Valid: len(problems) == 0, Errors: problems}
}

// CreateSplitShipment validates the proposal, builds the split and moves the
// quantities on the order as one step: on any error neither the order nor a
// split is changed or created.
//
// Parameters:
//   - o: the order, mutated on success
//   - existing: splits already created for the order; they fix the split
//     index and the split group
//   - lines: the proposed quantities
//   - meta: who creates the split, optional carrier and notes
//
// Returns:
//   - the new DRAFT split and its SPLIT_CREATED event
//   - *SplitValidationError with every message when the proposal is invalid
func (t *FulfillmentTracker) CreateSplitShipment(
	o *order.Order,
	existing []*shipment.SplitShipment,
	lines []SplitLine,
	meta SplitMeta,
) (*shipment.SplitShipment, *shipment.Event, error) {
	if result := t.ValidateSplit(o, lines); !result.Valid {
		return nil, nil, &SplitValidationError{Messages: result.Errors}
	}

	now := t.clock()
	groupID := t.newID()
	if len(existing) > 0 {
		groupID = existing[0].SplitGroupID()
	}

	snapshot := make([]shipment.Line, 0, len(lines))
	moves := make([]order.LineShipment, 0, len(lines))
	for _, sl := range lines {
		line, _ := o.Line(sl.LineID)
		snapshot = append(snapshot, shipment.Line{
			LineID:     sl.LineID,
			LineNumber: line.LineNumber(),
			Qty:        sl.QtyToShip,
			Weight:     line.WeightFor(sl.QtyToShip),
		})
		moves = append(moves, order.LineShipment{LineID: sl.LineID, Qty: sl.QtyToShip})
	}

	split, err := shipment.NewSplitShipment(shipment.Params{
		ID:                  t.newID(),
		SplitGroupID:        groupID,
		OrderID:             o.ID(),
		OrderNumber:         o.OrderNumber(),
		SplitIndex:          len(existing) + 1,
		Carrier:             meta.Carrier,
		Notes:               meta.Notes,
		CreatedBy:           meta.User,
		CreatedAt:           now,
		SkidWeightThreshold: t.skidWeightThreshold,
	}, snapshot)
	if err != nil {
		return nil, nil, err
	}

	event, err := shipment.NewEvent(t.newID(), o.ID(), split.ID(), shipment.ActionSplitCreated, meta.User, now,
		splitCreatedDetails(split))
	if err != nil {
		return nil, nil, err
	}

	if _, err = o.ApplyShipment(split.ID(), moves); err != nil {
		return nil, nil, err
	}

	return split, event, nil
}

// UpdateSplitShipmentStatus moves split to newStatus along the state machine
// and returns the STATUS_CHANGED event. Illegal transitions are rejected with
// shipment.ErrTransitionIsInvalid and leave the split unchanged.
func (t *FulfillmentTracker) UpdateSplitShipmentStatus(
	split *shipment.SplitShipment,
	newStatus shipment.Status,
	meta StatusMeta,
) (*shipment.Event, error) {
	if err := split.Validate(); err != nil {
		return nil, err
	}

	now := t.clock()
	from, err := split.ChangeStatus(newStatus, now, meta.Carrier, meta.TrackingNumber)
	if err != nil {
		return nil, err
	}

	details := map[string]any{
		"from": from.String(),
		"to":   newStatus.String(),
	}
	if split.Carrier() != "" {
		details["carrier"] = split.Carrier()
	}
	if split.TrackingNumber() != "" {
		details["trackingNumber"] = split.TrackingNumber()
	}
	if meta.Notes != "" {
		details["notes"] = meta.Notes
	}

	return shipment.NewEvent(t.newID(), split.OrderID(), split.ID(), shipment.ActionStatusChanged, meta.User, now, details)
}

func splitCreatedDetails(split *shipment.SplitShipment) map[string]any {
	lines := make([]map[string]any, 0, len(split.Lines()))
	for _, l := range split.Lines() {
		lines = append(lines, map[string]any{
			"lineId":     l.LineID.String(),
			"lineNumber": l.LineNumber,
			"qty":        l.Qty,
			"weight":     l.Weight,
		})
	}
	details := map[string]any{
		"splitIndex":   split.SplitIndex(),
		"splitGroupId": split.SplitGroupID().String(),
		"lines":        lines,
		"totalQty":     split.TotalQty(),
		"totalWeight":  split.TotalWeight(),
	}
	if split.Carrier() != "" {
		details["carrier"] = split.Carrier()
	}
	if split.Notes() != "" {
		details["notes"] = split.Notes()
	}
	return details
}
