package order

import (
	"fmt"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
)

// FulfillmentStatus is the order-level progress derived from its lines.
//
//	UNFULFILLED ──> PARTIAL ──> FULFILLED
//	      └───────────┴──────────> OVERSHIPPED (integrity fault)
type FulfillmentStatus int

const (
	// UnknownFulfillment catches uninitialized values.
	UnknownFulfillment FulfillmentStatus = iota

	// Unfulfilled means no line has shipped anything yet.
	Unfulfilled

	// PartiallyFulfilled means some quantity shipped but remaining quantity exists.
	PartiallyFulfilled

	// Fulfilled means every line has nothing remaining.
	Fulfilled

	// Overshipped means at least one line shipped more than ordered.
	// It is only reachable when quantities were changed outside ApplyShipment.
	Overshipped
)

func getFulfillmentStatusStrings() map[FulfillmentStatus]string {
	return map[FulfillmentStatus]string{
		UnknownFulfillment: "UNKNOWN",
		Unfulfilled:        "UNFULFILLED",
		PartiallyFulfilled: "PARTIAL",
		Fulfilled:          "FULFILLED",
		Overshipped:        "OVERSHIPPED",
	}
}

// ParseFulfillmentStatus maps the persisted/wire name back to a status.
func ParseFulfillmentStatus(s string) (FulfillmentStatus, error) {
	for status, name := range getFulfillmentStatusStrings() {
		if status != UnknownFulfillment && name == s {
			return status, nil
		}
	}
	return UnknownFulfillment, errs.NewValueIsInvalidErrorWithCause(
		"fulfillmentStatus",
		fmt.Errorf("%q is not a valid fulfillment status", s),
	)
}

// Validate rejects UnknownFulfillment and out-of-range values.
func (s FulfillmentStatus) Validate() error {
	if s <= UnknownFulfillment || s > Overshipped {
		return errs.NewValueIsInvalidErrorWithCause(
			"fulfillmentStatus",
			fmt.Errorf("%d is not a valid fulfillment status", s),
		)
	}
	return nil
}

// String returns the wire name, e.g. "PARTIAL".
func (s FulfillmentStatus) String() string {
	if str, ok := getFulfillmentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
