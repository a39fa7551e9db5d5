package ports

import (
	"context"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
)

// SplitShipmentRepository defines the persistence contract for split shipments.
type SplitShipmentRepository interface {
	// Add persists a new split. Adding a second split with the same order and
	// split index fails with errs.VersionIsInvalidError.
	Add(ctx context.Context, aggregate *shipment.SplitShipment) error

	// Update persists status and carrier changes of an existing split.
	Update(ctx context.Context, aggregate *shipment.SplitShipment) error

	// Get returns errs.ObjectNotFoundError when the split does not exist.
	// Inside a unit of work the split is held until the transaction ends.
	Get(ctx context.Context, id kernel.UUID) (*shipment.SplitShipment, error)

	// ListByOrder returns the splits of an order ordered by split index.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.SplitShipment, error)
}

// SplitEventRepository is the append-only audit log of split shipments.
type SplitEventRepository interface {
	Append(ctx context.Context, event *shipment.Event) error

	// ListByOrder returns the events of an order in timestamp order.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.Event, error)
}
