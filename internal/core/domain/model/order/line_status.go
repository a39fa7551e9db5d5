package order

import (
	"fmt"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
)

// LineStatus is the progress of a single order line.
type LineStatus int

const (
	LineUnknown LineStatus = iota
	LineOpen
	LinePartial
	LineComplete
	LineCancelled
)

func getLineStatusStrings() map[LineStatus]string {
	return map[LineStatus]string{
		LineUnknown:   "UNKNOWN",
		LineOpen:      "OPEN",
		LinePartial:   "PARTIAL",
		LineComplete:  "COMPLETE",
		LineCancelled: "CANCELLED",
	}
}

// ParseLineStatus maps the persisted/wire name back to a status.
func ParseLineStatus(s string) (LineStatus, error) {
	for status, name := range getLineStatusStrings() {
		if status != LineUnknown && name == s {
			return status, nil
		}
	}
	return LineUnknown, errs.NewValueIsInvalidErrorWithCause(
		"lineStatus",
		fmt.Errorf("%q is not a valid line status", s),
	)
}

func (s LineStatus) String() string {
	if str, ok := getLineStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// deriveLineStatus maps quantities to a status. Cancelled lines stay cancelled.
func deriveLineStatus(current LineStatus, qtyShipped, qtyRemaining int) LineStatus {
	switch {
	case current == LineCancelled:
		return LineCancelled
	case qtyRemaining <= 0:
		return LineComplete
	case qtyShipped > 0:
		return LinePartial
	default:
		return LineOpen
	}
}
