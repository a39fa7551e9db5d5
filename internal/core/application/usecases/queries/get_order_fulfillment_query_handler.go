package queries

import (
	"context"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
)

// GetOrderFulfillmentQueryHandler assembles the fulfillment picture from the
// order, split shipment and split event repositories.
type GetOrderFulfillmentQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	tracker    *services.FulfillmentTracker
}

func NewGetOrderFulfillmentQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	tracker *services.FulfillmentTracker,
) GetOrderFulfillmentQueryHandler {
	return GetOrderFulfillmentQueryHandler{uowFactory: uowFactory, tracker: tracker}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
// The status is derived from the lines, so an overshipped order reads
// OVERSHIPPED even though no split could have produced it.
func (h GetOrderFulfillmentQueryHandler) Handle(
	ctx context.Context,
	query GetOrderFulfillmentQuery,
) (resp GetOrderFulfillmentQueryResponse, err error) {
	if err = query.Validate(); err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	ctx, span := tracer.Start(ctx, "GetOrderFulfillment")
	span.SetAttributes(attribute.String("order.id", query.OrderID().String()))
	defer func() { endSpan(span, err) }()

	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}
	shipments, err := uow.SplitShipmentRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}
	events, err := uow.SplitEventRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	progress := h.tracker.Progress(o)
	shippedPct := make(map[int]float64, len(progress.Lines))
	for _, lp := range progress.Lines {
		shippedPct[lp.LineNumber] = lp.ShippedPct
	}

	resp = GetOrderFulfillmentQueryResponse{
		OrderID:         o.ID(),
		OrderNumber:     o.OrderNumber(),
		Version:         o.Version(),
		Status:          progress.Status,
		OrderShippedPct: progress.OrderShippedPct,
		Remaining:       progress.Remaining,
		Lines:           make([]LineFulfillment, 0, len(o.Lines())),
		Shipments:       shipments,
		Events:          events,
	}
	for _, l := range o.Lines() {
		resp.Lines = append(resp.Lines, LineFulfillment{
			LineID:             l.ID(),
			LineNumber:         l.LineNumber(),
			SKU:                l.SKU(),
			Description:        l.Description(),
			QtyOrdered:         l.QtyOrdered(),
			QtyShipped:         l.QtyShipped(),
			QtyRemaining:       l.QtyRemaining(),
			WeightPerUnit:      l.WeightPerUnit(),
			TotalWeightOrdered: l.TotalWeightOrdered(),
			TotalWeightShipped: l.TotalWeightShipped(),
			Status:             l.Status(),
			ShippedPct:         shippedPct[l.LineNumber()],
		})
	}

	return resp, nil
}
