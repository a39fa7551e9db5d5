package queries

import (
	"errors"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/order"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/guard"
)

var ErrGetOrderFulfillmentQueryIsNotConstructed = errors.New(
	"GetOrderFulfillmentQuery must be created via NewGetOrderFulfillmentQuery constructor",
)

// GetOrderFulfillmentQuery retrieves the fulfillment picture of one order:
// derived status, shipped percentages, remaining totals, its split shipments
// and their event log.
//
// Example:
//
//	query, _ := NewGetOrderFulfillmentQuery(orderID)
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s is %s, %.1f%% shipped\n", resp.OrderNumber, resp.Status, resp.OrderShippedPct)
type GetOrderFulfillmentQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderFulfillmentQuery(orderID kernel.UUID) (GetOrderFulfillmentQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderFulfillmentQuery{}, err
	}

	return GetOrderFulfillmentQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderFulfillmentQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderFulfillmentQueryIsNotConstructed)
}

func (q GetOrderFulfillmentQuery) OrderID() kernel.UUID {
	return q.orderID
}

// LineFulfillment is the state of one order line.
type LineFulfillment struct {
	LineID             kernel.UUID
	LineNumber         int
	SKU                string
	Description        string
	QtyOrdered         int
	QtyShipped         int
	QtyRemaining       int
	WeightPerUnit      float64
	TotalWeightOrdered float64
	TotalWeightShipped float64
	Status             order.LineStatus
	ShippedPct         float64
}

// GetOrderFulfillmentQueryResponse is the fulfillment picture of an order.
// Shipments are ordered by split index and events by timestamp.
type GetOrderFulfillmentQueryResponse struct {
	OrderID         kernel.UUID
	OrderNumber     string
	Version         int
	Status          order.FulfillmentStatus
	OrderShippedPct float64
	Remaining       order.Remaining
	Lines           []LineFulfillment
	Shipments       []*shipment.SplitShipment
	Events          []*shipment.Event
}
