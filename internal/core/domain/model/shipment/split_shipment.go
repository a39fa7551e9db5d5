package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
)

var (
	// ErrSplitShipmentIsNotConstructed is returned when a SplitShipment was not
	// created through NewSplitShipment or RestoreSplitShipment.
	ErrSplitShipmentIsNotConstructed = errors.New("SplitShipment must be created via NewSplitShipment constructor")

	// ErrTransitionIsInvalid marks a status change the state machine forbids.
	ErrTransitionIsInvalid = errors.New("status transition is not allowed")
)

// Params carries the identity and metadata of a split being created.
type Params struct {
	ID           kernel.UUID
	SplitGroupID kernel.UUID
	OrderID      kernel.UUID
	OrderNumber  string
	SplitIndex   int
	Carrier      string
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time

	// SkidWeightThreshold overrides DefaultSkidWeightThreshold when positive.
	SkidWeightThreshold float64
}

// SplitShipment is a partial shipment of one order.
//
// Invariants:
//   - belongs to exactly one order; splitIndex is 1-based within that order
//   - lines, packages and drop tags are fixed at creation
//   - status only moves along the transition table of Status
type SplitShipment struct {
	id           kernel.UUID
	splitGroupID kernel.UUID
	orderID      kernel.UUID
	splitIndex   int
	status       Status

	lines     []Line
	packages  []Package
	dropTags  []DropTag
	documents []Document

	carrier        string
	trackingNumber string
	notes          string
	createdBy      string
	createdAt      time.Time
	shippedAt      *time.Time
	deliveredAt    *time.Time

	isConstructed bool
}

// NewSplitShipment creates a DRAFT split. For each line it synthesizes one
// package (SKID or BUNDLE by weight) and one drop tag, and it seeds the BOL
// and packing list as pending documents.
func NewSplitShipment(p Params, lines []Line) (*SplitShipment, error) {
	s := &SplitShipment{
		status:        Draft,
		carrier:       strings.TrimSpace(p.Carrier),
		notes:         p.Notes,
		createdBy:     p.CreatedBy,
		createdAt:     p.CreatedAt,
		documents:     seedDocuments(),
		isConstructed: true,
	}

	if err := errors.Join(
		s.setIDs(p.ID, p.SplitGroupID, p.OrderID),
		s.setSplitIndex(p.SplitIndex),
		s.setLines(lines),
		requireOrderNumber(p.OrderNumber),
	); err != nil {
		return nil, err
	}

	threshold := p.SkidWeightThreshold
	if threshold <= 0 {
		threshold = DefaultSkidWeightThreshold
	}
	for _, l := range s.lines {
		s.packages = append(s.packages, Package{
			LineID: l.LineID,
			Type:   ChoosePackageType(l.Weight, threshold),
			Qty:    l.Qty,
			Weight: l.Weight,
		})
		s.dropTags = append(s.dropTags, DropTag{
			LineID: l.LineID,
			Number: DropTagNumber(p.OrderNumber, s.splitIndex, l.LineNumber),
		})
	}

	return s, nil
}

// Snapshot is the persisted form of a SplitShipment.
type Snapshot struct {
	ID             kernel.UUID
	SplitGroupID   kernel.UUID
	OrderID        kernel.UUID
	SplitIndex     int
	Status         Status
	Lines          []Line
	Packages       []Package
	DropTags       []DropTag
	Documents      []Document
	Carrier        string
	TrackingNumber string
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}

// RestoreSplitShipment rebuilds a split from storage without re-synthesizing
// its artifacts.
func RestoreSplitShipment(snap Snapshot) *SplitShipment {
	return &SplitShipment{
		id:             snap.ID,
		splitGroupID:   snap.SplitGroupID,
		orderID:        snap.OrderID,
		splitIndex:     snap.SplitIndex,
		status:         snap.Status,
		lines:          append([]Line(nil), snap.Lines...),
		packages:       append([]Package(nil), snap.Packages...),
		dropTags:       append([]DropTag(nil), snap.DropTags...),
		documents:      append([]Document(nil), snap.Documents...),
		carrier:        snap.Carrier,
		trackingNumber: snap.TrackingNumber,
		notes:          snap.Notes,
		createdBy:      snap.CreatedBy,
		createdAt:      snap.CreatedAt,
		shippedAt:      snap.ShippedAt,
		deliveredAt:    snap.DeliveredAt,
		isConstructed:  true,
	}
}

// Snapshot returns a copy of the split's state for persistence and views.
func (s *SplitShipment) Snapshot() Snapshot {
	return Snapshot{
		ID:             s.id,
		SplitGroupID:   s.splitGroupID,
		OrderID:        s.orderID,
		SplitIndex:     s.splitIndex,
		Status:         s.status,
		Lines:          s.Lines(),
		Packages:       s.Packages(),
		DropTags:       s.DropTags(),
		Documents:      s.Documents(),
		Carrier:        s.carrier,
		TrackingNumber: s.trackingNumber,
		Notes:          s.notes,
		CreatedBy:      s.createdBy,
		CreatedAt:      s.createdAt,
		ShippedAt:      s.shippedAt,
		DeliveredAt:    s.deliveredAt,
	}
}

// Validate ensures the split was properly constructed.
func (s *SplitShipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSplitShipmentIsNotConstructed
	}
	return nil
}

func (s *SplitShipment) ID() kernel.UUID           { return s.id }
func (s *SplitShipment) SplitGroupID() kernel.UUID { return s.splitGroupID }
func (s *SplitShipment) OrderID() kernel.UUID      { return s.orderID }
func (s *SplitShipment) SplitIndex() int           { return s.splitIndex }
func (s *SplitShipment) Status() Status            { return s.status }
func (s *SplitShipment) Carrier() string           { return s.carrier }
func (s *SplitShipment) TrackingNumber() string    { return s.trackingNumber }
func (s *SplitShipment) Notes() string             { return s.notes }
func (s *SplitShipment) CreatedBy() string         { return s.createdBy }
func (s *SplitShipment) CreatedAt() time.Time      { return s.createdAt }
func (s *SplitShipment) ShippedAt() *time.Time     { return s.shippedAt }
func (s *SplitShipment) DeliveredAt() *time.Time   { return s.deliveredAt }

func (s *SplitShipment) Lines() []Line         { return append([]Line(nil), s.lines...) }
func (s *SplitShipment) Packages() []Package   { return append([]Package(nil), s.packages...) }
func (s *SplitShipment) DropTags() []DropTag   { return append([]DropTag(nil), s.dropTags...) }
func (s *SplitShipment) Documents() []Document { return append([]Document(nil), s.documents...) }

// TotalQty sums the quantity moved by the split.
func (s *SplitShipment) TotalQty() int {
	total := 0
	for _, l := range s.lines {
		total += l.Qty
	}
	return total
}

// TotalWeight sums the weight moved by the split.
func (s *SplitShipment) TotalWeight() float64 {
	total := 0.0
	for _, l := range s.lines {
		total += l.Weight
	}
	return total
}

// ChangeStatus moves the split to next at instant at. SHIPPED stamps
// shippedAt and DELIVERED stamps deliveredAt. Non-empty carrier and
// trackingNumber replace the stored values on any accepted transition.
//
// Returns the status the split left.
func (s *SplitShipment) ChangeStatus(next Status, at time.Time, carrier, trackingNumber string) (Status, error) {
	newStatus, err := s.status.TransitionTo(next)
	if err != nil {
		return 0, err
	}

	from := s.status
	s.status = newStatus
	switch newStatus {
	case Shipped:
		s.shippedAt = &at
	case Delivered:
		s.deliveredAt = &at
	}
	if c := strings.TrimSpace(carrier); c != "" {
		s.carrier = c
	}
	if tn := strings.TrimSpace(trackingNumber); tn != "" {
		s.trackingNumber = tn
	}

	return from, nil
}

func (s *SplitShipment) setIDs(id, splitGroupID, orderID kernel.UUID) error {
	var err error
	if vErr := id.Validate(); vErr != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("id", vErr))
	}
	if vErr := splitGroupID.Validate(); vErr != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("splitGroupId", vErr))
	}
	if vErr := orderID.Validate(); vErr != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("orderId", vErr))
	}
	if err != nil {
		return err
	}
	s.id, s.splitGroupID, s.orderID = id, splitGroupID, orderID
	return nil
}

func requireOrderNumber(orderNumber string) error {
	if strings.TrimSpace(orderNumber) == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	return nil
}

func (s *SplitShipment) setSplitIndex(splitIndex int) error {
	if splitIndex <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("splitIndex", fmt.Errorf("%d is not greater than 0", splitIndex))
	}
	s.splitIndex = splitIndex
	return nil
}

func (s *SplitShipment) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	var err error
	for i, l := range lines {
		if l.Qty <= 0 {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("lines[%d].qty", i), fmt.Errorf("%d is not greater than 0", l.Qty)))
		}
		if l.Weight < 0 {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("lines[%d].weight", i), fmt.Errorf("%g is negative", l.Weight)))
		}
	}
	if err != nil {
		return err
	}
	s.lines = append([]Line(nil), lines...)
	return nil
}
