package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// LineShipment is a quantity of one line moved by a split shipment.
type LineShipment struct {
	LineID kernel.UUID
	Qty    int
}

// ShippedLine is the outcome of applying a LineShipment.
type ShippedLine struct {
	LineID     kernel.UUID
	LineNumber int
	Qty        int
	Weight     float64
}

// Order is the aggregate root of fulfillment tracking. It owns its lines and
// keeps back-references to the split shipments created against it.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-blank order number
//   - Must have at least one line; line ids and line numbers are unique
//   - Quantities only move through ApplyShipment, which is all-or-nothing
//   - fulfillmentStatus is re-derived after every change, never set directly
//
// version is the optimistic concurrency token maintained by repositories.
type Order struct {
	id                kernel.UUID
	orderNumber       string
	fulfillmentStatus FulfillmentStatus
	lines             []*Line
	shipments         []kernel.UUID
	version           int

	isConstructed bool
}

// NewOrder creates an UNFULFILLED order with version 0.
//
// Example:
//
//	line, _ := order.NewLine(kernel.NewUUID(), 1, "HR-PLATE-0.25", "Hot rolled plate", 150, 40)
//	o, err := order.NewOrder(kernel.NewUUID(), "SO-10042", []*order.Line{line})
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, orderNumber string, lines []*Line) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}
	o.fulfillmentStatus = ClassifyFulfillmentStatus(o.lines)

	return o, nil
}

// RestoreOrder rebuilds an order from storage. The fulfillment status is
// re-derived from the lines so that stored and derived state cannot drift.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	lines []*Line,
	shipments []kernel.UUID,
	version int,
) *Order {
	return &Order{
		id:                id,
		orderNumber:       orderNumber,
		fulfillmentStatus: ClassifyFulfillmentStatus(lines),
		lines:             lines,
		shipments:         shipments,
		version:           version,
		isConstructed:     true,
	}
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the customer-facing order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// FulfillmentStatus returns the derived order-level status.
func (o *Order) FulfillmentStatus() FulfillmentStatus {
	return o.fulfillmentStatus
}

// Lines returns the order lines in line order. The slice is a copy; the
// lines are the aggregate's own and must not be mutated.
func (o *Order) Lines() []*Line {
	return append([]*Line(nil), o.lines...)
}

// Line looks a line up by id.
func (o *Order) Line(lineID kernel.UUID) (*Line, bool) {
	for _, l := range o.lines {
		if l.id.IsEqual(lineID) {
			return l, true
		}
	}
	return nil, false
}

// Shipments returns the ids of split shipments created against the order.
func (o *Order) Shipments() []kernel.UUID {
	return append([]kernel.UUID(nil), o.shipments...)
}

// HasShipment reports whether shipmentID is already referenced.
func (o *Order) HasShipment(shipmentID kernel.UUID) bool {
	for _, id := range o.shipments {
		if id.IsEqual(shipmentID) {
			return true
		}
	}
	return false
}

// Version returns the optimistic concurrency version the order was loaded with.
func (o *Order) Version() int {
	return o.version
}

// ApplyShipment moves the given quantities from remaining to shipped, records
// shipmentID and re-derives the fulfillment status.
//
// Every entry is checked before any line changes: an unknown line, a
// non-positive quantity, a quantity above the line's remaining quantity or a
// line listed twice rejects the whole call and leaves the order untouched.
//
// Returns the quantity and weight moved per entry, in input order.
func (o *Order) ApplyShipment(shipmentID kernel.UUID, moves []LineShipment) ([]ShippedLine, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return nil, errs.NewValueIsRequiredError("split lines")
	}

	var (
		err    error
		seen   = make(map[kernel.UUID]bool, len(moves))
		target = make([]*Line, len(moves))
	)
	for i, m := range moves {
		line, ok := o.Line(m.LineID)
		switch {
		case !ok:
			err = errors.Join(err, errs.NewObjectNotFoundError("lineId", m.LineID))
			continue
		case seen[m.LineID]:
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				"lineId", fmt.Errorf("line %d is listed more than once", line.lineNumber)))
		case m.Qty <= 0:
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				"qtyToShip", fmt.Errorf("line %d: %d is not greater than 0", line.lineNumber, m.Qty)))
		case m.Qty > line.qtyRemaining:
			err = errors.Join(err, errs.NewValueIsOutOfRangeError(
				fmt.Sprintf("qtyToShip for line %d", line.lineNumber), m.Qty, 1, line.qtyRemaining))
		}
		seen[m.LineID] = true
		target[i] = line
	}
	if err != nil {
		return nil, err
	}

	shipped := make([]ShippedLine, len(moves))
	for i, m := range moves {
		shipped[i] = ShippedLine{
			LineID:     m.LineID,
			LineNumber: target[i].lineNumber,
			Qty:        m.Qty,
			Weight:     target[i].ship(m.Qty),
		}
	}

	o.fulfillmentStatus = ClassifyFulfillmentStatus(o.lines)
	if !o.HasShipment(shipmentID) {
		o.shipments = append(o.shipments, shipmentID)
	}

	return shipped, nil
}

// IntegrityIssues lists every broken quantity invariant on the order.
func (o *Order) IntegrityIssues() []string {
	var issues []string
	for _, l := range o.lines {
		if issue := l.IntegrityIssue(); issue != "" {
			issues = append(issues, issue)
		}
	}
	return issues
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	var (
		err     error
		ids     = make(map[kernel.UUID]bool, len(lines))
		numbers = make(map[int]bool, len(lines))
	)
	for i, l := range lines {
		if vErr := l.Validate(); vErr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lines[%d]", i), vErr))
			continue
		}
		if ids[l.id] {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				"lines", fmt.Errorf("line id %s is duplicated", l.id)))
		}
		if numbers[l.lineNumber] {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				"lines", fmt.Errorf("line number %d is duplicated", l.lineNumber)))
		}
		ids[l.id] = true
		numbers[l.lineNumber] = true
	}
	if err != nil {
		return err
	}

	o.lines = append([]*Line(nil), lines...)
	return nil
}
