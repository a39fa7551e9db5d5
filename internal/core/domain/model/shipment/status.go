package shipment

import (
	"fmt"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
)

// Status is the lifecycle state of a split shipment.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Draft is the initial status of a new split.
	Draft

	// Ready means the split is released to the warehouse.
	Ready

	// Packed means packages and drop tags are physically prepared.
	Packed

	// Shipped means the split left the dock; shippedAt is stamped.
	Shipped

	// InTransit means the carrier has the freight.
	InTransit

	// Delivered is terminal; deliveredAt is stamped.
	Delivered

	// Exception is terminal: the carrier reported a problem.
	Exception
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Draft:     "DRAFT",
		Ready:     "READY",
		Packed:    "PACKED",
		Shipped:   "SHIPPED",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Exception: "EXCEPTION",
	}
}

// getTransitions returns the allowed successors of every non-terminal status.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no successors
	return map[Status][]Status{
		Draft:     {Ready},
		Ready:     {Packed},
		Packed:    {Shipped},
		Shipped:   {InTransit},
		InTransit: {Delivered, Exception},
	}
}

// ParseStatus maps the wire name (e.g. "IN_TRANSIT") to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid split shipment status", s),
	)
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Exception {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Exception
}

// IsPreDispatch reports whether the split has not left the dock yet.
func (s Status) IsPreDispatch() bool {
	return s == Draft || s == Ready || s == Packed
}

// TransitionTo returns next if the table allows s -> next.
//
// Returns:
//   - (next, nil) on a valid transition
//   - (0, an error matching both errs.ErrValueIsInvalid and
//     ErrTransitionIsInvalid) otherwise,
//     including backward moves, skipped steps and moves out of terminal states
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return next, nil
		}
	}
	return 0, fmt.Errorf("%w: %w: %s -> %s", errs.ErrValueIsInvalid, ErrTransitionIsInvalid, s, next)
}
