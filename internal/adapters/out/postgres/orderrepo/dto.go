// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order row carries its optimistic version and shipment back-references; its
// lines live in a child table loaded with the order.
package orderrepo

import (
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The fulfillment status is stored for querying only; it is re-derived from the
// lines on load.
type OrderDTO struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderNumber       string         `gorm:"type:varchar(64);not null;uniqueIndex"`
	FulfillmentStatus string         `gorm:"type:varchar(32);not null;index"`
	ShipmentIDs       pq.StringArray `gorm:"type:text[]"`
	Version           int            `gorm:"not null"`
	Lines             []LineDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO is one row of the order_lines table.
type LineDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID `gorm:"type:uuid;not null;index"`
	LineNumber         int       `gorm:"not null"`
	SKU                string    `gorm:"column:sku;type:varchar(64)"`
	Description        string
	QtyOrdered         int     `gorm:"not null"`
	QtyShipped         int     `gorm:"not null"`
	QtyRemaining       int     `gorm:"not null"`
	WeightPerUnit      float64 `gorm:"not null"`
	TotalWeightOrdered float64
	TotalWeightShipped float64
	Status             string `gorm:"type:varchar(32);not null"`
}

// TableName specifies the database table name for order lines.
func (LineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order aggregate and its lines to their database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	lines := make([]LineDTO, 0, len(aggregate.Lines()))
	for _, l := range aggregate.Lines() {
		lines = append(lines, LineDTO{
			ID:                 l.ID().Bytes(),
			OrderID:            orderID,
			LineNumber:         l.LineNumber(),
			SKU:                l.SKU(),
			Description:        l.Description(),
			QtyOrdered:         l.QtyOrdered(),
			QtyShipped:         l.QtyShipped(),
			QtyRemaining:       l.QtyRemaining(),
			WeightPerUnit:      l.WeightPerUnit(),
			TotalWeightOrdered: l.TotalWeightOrdered(),
			TotalWeightShipped: l.TotalWeightShipped(),
			Status:             l.Status().String(),
		})
	}

	shipmentIDs := make(pq.StringArray, 0, len(aggregate.Shipments()))
	for _, id := range aggregate.Shipments() {
		shipmentIDs = append(shipmentIDs, id.String())
	}

	return OrderDTO{
		ID:                orderID,
		OrderNumber:       aggregate.OrderNumber(),
		FulfillmentStatus: aggregate.FulfillmentStatus().String(),
		ShipmentIDs:       shipmentIDs,
		Version:           aggregate.Version(),
		Lines:             lines,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder/RestoreLine so that rows
// corrupted outside the service still load for the integrity scan.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		lineID, lineErr := kernel.UUIDFromBytes(l.ID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		status, statusErr := order.ParseLineStatus(l.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		lines = append(lines, order.RestoreLine(
			lineID, l.LineNumber, l.SKU, l.Description,
			l.QtyOrdered, l.QtyShipped, l.QtyRemaining,
			l.WeightPerUnit, l.TotalWeightOrdered, l.TotalWeightShipped,
			status,
		))
	}

	shipments := make([]kernel.UUID, 0, len(dto.ShipmentIDs))
	for _, raw := range dto.ShipmentIDs {
		shipmentID, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return nil, parseErr
		}
		shipments = append(shipments, shipmentID)
	}

	return order.RestoreOrder(id, dto.OrderNumber, lines, shipments, dto.Version), nil
}
