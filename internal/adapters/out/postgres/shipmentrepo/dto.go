// Package shipmentrepo persists split shipments and their append-only audit events.
// Lines, packages, drop tags and documents are fixed at creation and stored as
// JSONB columns on the split row.
package shipmentrepo

import (
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// SplitShipmentDTO is one row of the split_shipments table. The pair
// (order_id, split_index) is unique, which is what rejects a second split
// racing for the same index.
type SplitShipmentDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SplitGroupID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	OrderID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_split_order_index"`
	SplitIndex     int            `gorm:"not null;uniqueIndex:idx_split_order_index"`
	Status         string         `gorm:"type:varchar(32);not null;index"`
	Lines          []lineJSON     `gorm:"type:jsonb;serializer:json"`
	Packages       []packageJSON  `gorm:"type:jsonb;serializer:json"`
	DropTags       []dropTagJSON  `gorm:"type:jsonb;serializer:json"`
	Documents      []documentJSON `gorm:"type:jsonb;serializer:json"`
	Carrier        string         `gorm:"type:varchar(128)"`
	TrackingNumber string         `gorm:"type:varchar(128)"`
	Notes          string
	CreatedBy      string    `gorm:"type:varchar(128)"`
	CreatedAt      time.Time `gorm:"not null"`
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}

// TableName specifies the database table name for split shipments.
func (SplitShipmentDTO) TableName() string {
	return "split_shipments"
}

type lineJSON struct {
	LineID     kernel.UUID `json:"lineId"`
	LineNumber int         `json:"lineNumber"`
	Qty        int         `json:"qty"`
	Weight     float64     `json:"weight"`
}

type packageJSON struct {
	LineID kernel.UUID          `json:"lineId"`
	Type   shipment.PackageType `json:"type"`
	Qty    int                  `json:"qty"`
	Weight float64              `json:"weight"`
}

type dropTagJSON struct {
	LineID kernel.UUID `json:"lineId"`
	Number string      `json:"number"`
}

type documentJSON struct {
	Type   shipment.DocumentType   `json:"type"`
	Status shipment.DocumentStatus `json:"status"`
}

// SplitEventDTO is one row of the split_events table. Rows are only inserted;
// Seq keeps insertion order for events sharing a timestamp.
type SplitEventDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	SplitShipmentID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Action          string         `gorm:"type:varchar(32);not null"`
	User            string         `gorm:"column:user_name;type:varchar(128)"`
	Timestamp       time.Time      `gorm:"column:occurred_at;not null;index"`
	Details         map[string]any `gorm:"type:jsonb;serializer:json"`
	Seq             int64          `gorm:"autoIncrement;not null"`
}

// TableName specifies the database table name for split events.
func (SplitEventDTO) TableName() string {
	return "split_events"
}

func splitFromDomain(split *shipment.SplitShipment) SplitShipmentDTO {
	snap := split.Snapshot()

	lines := make([]lineJSON, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, lineJSON(l))
	}
	packages := make([]packageJSON, 0, len(snap.Packages))
	for _, p := range snap.Packages {
		packages = append(packages, packageJSON(p))
	}
	dropTags := make([]dropTagJSON, 0, len(snap.DropTags))
	for _, d := range snap.DropTags {
		dropTags = append(dropTags, dropTagJSON(d))
	}
	documents := make([]documentJSON, 0, len(snap.Documents))
	for _, d := range snap.Documents {
		documents = append(documents, documentJSON(d))
	}

	return SplitShipmentDTO{
		ID:             snap.ID.Bytes(),
		SplitGroupID:   snap.SplitGroupID.Bytes(),
		OrderID:        snap.OrderID.Bytes(),
		SplitIndex:     snap.SplitIndex,
		Status:         snap.Status.String(),
		Lines:          lines,
		Packages:       packages,
		DropTags:       dropTags,
		Documents:      documents,
		Carrier:        snap.Carrier,
		TrackingNumber: snap.TrackingNumber,
		Notes:          snap.Notes,
		CreatedBy:      snap.CreatedBy,
		CreatedAt:      snap.CreatedAt,
		ShippedAt:      snap.ShippedAt,
		DeliveredAt:    snap.DeliveredAt,
	}
}

func splitToDomain(dto SplitShipmentDTO) (*shipment.SplitShipment, error) {
	ids := make([]kernel.UUID, 0, 3)
	for _, raw := range []uuid.UUID{dto.ID, dto.SplitGroupID, dto.OrderID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	snap := shipment.Snapshot{
		ID:             ids[0],
		SplitGroupID:   ids[1],
		OrderID:        ids[2],
		SplitIndex:     dto.SplitIndex,
		Status:         status,
		Carrier:        dto.Carrier,
		TrackingNumber: dto.TrackingNumber,
		Notes:          dto.Notes,
		CreatedBy:      dto.CreatedBy,
		CreatedAt:      dto.CreatedAt,
		ShippedAt:      dto.ShippedAt,
		DeliveredAt:    dto.DeliveredAt,
	}
	for _, l := range dto.Lines {
		snap.Lines = append(snap.Lines, shipment.Line(l))
	}
	for _, p := range dto.Packages {
		snap.Packages = append(snap.Packages, shipment.Package(p))
	}
	for _, d := range dto.DropTags {
		snap.DropTags = append(snap.DropTags, shipment.DropTag(d))
	}
	for _, d := range dto.Documents {
		snap.Documents = append(snap.Documents, shipment.Document(d))
	}

	return shipment.RestoreSplitShipment(snap), nil
}

func eventFromDomain(event *shipment.Event) SplitEventDTO {
	return SplitEventDTO{
		ID:              event.ID().Bytes(),
		OrderID:         event.OrderID().Bytes(),
		SplitShipmentID: event.SplitShipmentID().Bytes(),
		Action:          string(event.Action()),
		User:            event.User(),
		Timestamp:       event.Timestamp(),
		Details:         event.Details(),
	}
}

func eventToDomain(dto SplitEventDTO) (*shipment.Event, error) {
	ids := make([]kernel.UUID, 0, 3)
	for _, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.SplitShipmentID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return shipment.RestoreEvent(ids[0], ids[1], ids[2],
		shipment.Action(dto.Action), dto.User, dto.Timestamp, dto.Details), nil
}
