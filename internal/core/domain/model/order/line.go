package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
)

// ErrLineIsNotConstructed is returned when a Line bypassed NewLine/RestoreLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one order line. Quantities are whole units; weights are pounds.
type Line struct {
	id          kernel.UUID
	lineNumber  int
	sku         string
	description string

	qtyOrdered   int
	qtyShipped   int
	qtyRemaining int

	weightPerUnit      float64
	totalWeightOrdered float64
	totalWeightShipped float64

	status LineStatus

	isConstructed bool
}

// NewLine creates an OPEN line with nothing shipped.
//
// Parameters:
//   - lineNumber: 1-based position on the order, used on drop tags
//   - qtyOrdered: must be positive
//   - weightPerUnit: must not be negative
func NewLine(
	id kernel.UUID,
	lineNumber int,
	sku string,
	description string,
	qtyOrdered int,
	weightPerUnit float64,
) (*Line, error) {
	l := &Line{
		sku:           strings.TrimSpace(sku),
		description:   description,
		status:        LineOpen,
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setLineNumber(lineNumber),
		l.setQtyOrdered(qtyOrdered),
		l.setWeightPerUnit(weightPerUnit),
	); err != nil {
		return nil, err
	}

	l.qtyRemaining = l.qtyOrdered
	l.totalWeightOrdered = float64(l.qtyOrdered) * l.weightPerUnit

	return l, nil
}

// RestoreLine rebuilds a line from storage exactly as persisted. It performs
// no validation so that lines corrupted outside the aggregate can still be
// loaded and reported by the integrity scan.
func RestoreLine(
	id kernel.UUID,
	lineNumber int,
	sku string,
	description string,
	qtyOrdered, qtyShipped, qtyRemaining int,
	weightPerUnit, totalWeightOrdered, totalWeightShipped float64,
	status LineStatus,
) *Line {
	return &Line{
		id:                 id,
		lineNumber:         lineNumber,
		sku:                sku,
		description:        description,
		qtyOrdered:         qtyOrdered,
		qtyShipped:         qtyShipped,
		qtyRemaining:       qtyRemaining,
		weightPerUnit:      weightPerUnit,
		totalWeightOrdered: totalWeightOrdered,
		totalWeightShipped: totalWeightShipped,
		status:             status,
		isConstructed:      true,
	}
}

// Validate ensures the line was created through a constructor.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

func (l *Line) ID() kernel.UUID {
	return l.id
}

func (l *Line) LineNumber() int {
	return l.lineNumber
}

func (l *Line) SKU() string {
	return l.sku
}

func (l *Line) Description() string {
	return l.description
}

func (l *Line) QtyOrdered() int {
	return l.qtyOrdered
}

func (l *Line) QtyShipped() int {
	return l.qtyShipped
}

func (l *Line) QtyRemaining() int {
	return l.qtyRemaining
}

func (l *Line) WeightPerUnit() float64 {
	return l.weightPerUnit
}

func (l *Line) TotalWeightOrdered() float64 {
	return l.totalWeightOrdered
}

func (l *Line) TotalWeightShipped() float64 {
	return l.totalWeightShipped
}

func (l *Line) Status() LineStatus {
	return l.status
}

// WeightFor returns the weight of qty units of this line.
func (l *Line) WeightFor(qty int) float64 {
	return float64(qty) * l.weightPerUnit
}

// IntegrityIssue describes a broken quantity invariant, or "" when the line is sound.
func (l *Line) IntegrityIssue() string {
	switch {
	case l.qtyRemaining < 0:
		return fmt.Sprintf("line %d is overshipped: remaining quantity is %d", l.lineNumber, l.qtyRemaining)
	case l.qtyOrdered != l.qtyShipped+l.qtyRemaining:
		return fmt.Sprintf("line %d does not balance: ordered %d != shipped %d + remaining %d",
			l.lineNumber, l.qtyOrdered, l.qtyShipped, l.qtyRemaining)
	default:
		return ""
	}
}

// ship moves qty units from remaining to shipped. Callers check bounds first.
func (l *Line) ship(qty int) float64 {
	weight := l.WeightFor(qty)
	l.qtyShipped += qty
	l.qtyRemaining -= qty
	l.totalWeightShipped += weight
	l.status = deriveLineStatus(l.status, l.qtyShipped, l.qtyRemaining)
	return weight
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setLineNumber(lineNumber int) error {
	if lineNumber <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("lineNumber", fmt.Errorf("%d is not greater than 0", lineNumber))
	}
	l.lineNumber = lineNumber
	return nil
}

func (l *Line) setQtyOrdered(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qtyOrdered", fmt.Errorf("%d is not greater than 0", qty))
	}
	l.qtyOrdered = qty
	return nil
}

func (l *Line) setWeightPerUnit(weight float64) error {
	if weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weightPerUnit", fmt.Errorf("%g is negative", weight))
	}
	l.weightPerUnit = weight
	return nil
}
