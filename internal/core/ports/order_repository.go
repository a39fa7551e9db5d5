package ports

import (
	"context"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The stored version must
	// equal aggregate.Version(); otherwise the update fails with
	// errs.VersionIsInvalidError and nothing is written. A successful update
	// stores version+1.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines and shipment back-references.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListWithIntegrityIssues returns orders having a line with negative
	// remaining quantity or quantities that do not balance.
	ListWithIntegrityIssues(ctx context.Context) ([]*order.Order, error)
}
