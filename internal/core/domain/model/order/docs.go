// Package order provides the Order aggregate tracked by fulfillment: an order
// number, its lines with ordered/shipped/remaining quantities and weights, and
// back-references to the split shipments that moved goods against it.
//
// The package includes:
//   - Order: the aggregate root; the only way to move quantity is ApplyShipment
//   - Line: an order line whose status is derived from its quantities
//   - FulfillmentStatus and LineStatus: derived states, never set directly
//   - DeriveFulfillmentStatus, LineShippedPct, OrderShippedPct, CalcRemaining:
//     pure progress metrics over a set of lines
//
// Key business rules:
//   - qtyOrdered = qtyShipped + qtyRemaining on every line
//   - a line never ships more than it has remaining
//   - an order whose lines went negative (an external process bypassed
//     validation) is classified OVERSHIPPED and reported as an integrity issue
package order
