package shipment

import (
	"errors"
	"maps"
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
)

// Action is the kind of change a SplitEvent records.
type Action string

const (
	ActionSplitCreated  Action = "SPLIT_CREATED"
	ActionStatusChanged Action = "STATUS_CHANGED"
)

// Event is an append-only audit entry. Once built it is never mutated.
type Event struct {
	id              kernel.UUID
	orderID         kernel.UUID
	splitShipmentID kernel.UUID
	action          Action
	user            string
	timestamp       time.Time
	details         map[string]any
}

// NewEvent validates the references and copies details.
func NewEvent(
	id, orderID, splitShipmentID kernel.UUID,
	action Action,
	user string,
	timestamp time.Time,
	details map[string]any,
) (*Event, error) {
	var err error
	for name, ref := range map[string]kernel.UUID{"id": id, "orderId": orderID, "splitShipmentId": splitShipmentID} {
		if vErr := ref.Validate(); vErr != nil {
			err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause(name, vErr))
		}
	}
	if action != ActionSplitCreated && action != ActionStatusChanged {
		err = errors.Join(err, errs.NewValueIsInvalidError("action"))
	}
	if timestamp.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("timestamp"))
	}
	if err != nil {
		return nil, err
	}
	return RestoreEvent(id, orderID, splitShipmentID, action, user, timestamp, details), nil
}

// RestoreEvent rebuilds an event from storage.
func RestoreEvent(
	id, orderID, splitShipmentID kernel.UUID,
	action Action,
	user string,
	timestamp time.Time,
	details map[string]any,
) *Event {
	return &Event{
		id:              id,
		orderID:         orderID,
		splitShipmentID: splitShipmentID,
		action:          action,
		user:            user,
		timestamp:       timestamp,
		details:         maps.Clone(details),
	}
}

func (e *Event) ID() kernel.UUID              { return e.id }
func (e *Event) OrderID() kernel.UUID         { return e.orderID }
func (e *Event) SplitShipmentID() kernel.UUID { return e.splitShipmentID }
func (e *Event) Action() Action               { return e.action }
func (e *Event) User() string                 { return e.user }
func (e *Event) Timestamp() time.Time         { return e.timestamp }

// Details returns a copy of the event payload.
func (e *Event) Details() map[string]any {
	return maps.Clone(e.details)
}
