// Package shipment provides the SplitShipment aggregate, a physically distinct
// partial shipment of an order, and the append-only SplitEvent audit entries
// recorded for its creation and every status transition.
//
// A split shipment snapshots the quantities it moves when it is created; the
// snapshot, its packages and its drop tags never change afterwards. Only the
// status (and carrier details) move, along this table:
//
//	DRAFT ──> READY ──> PACKED ──> SHIPPED ──> IN_TRANSIT ──┬──> DELIVERED
//	                                                        └──> EXCEPTION
package shipment
