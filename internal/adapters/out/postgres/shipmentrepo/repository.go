package shipmentrepo

import (
	"context"
	"errors"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/adapters/out/postgres/pgerr"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormSplitShipmentRepository implements SplitShipmentRepository using GORM.
type GormSplitShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormSplitShipmentRepository creates a new GORM split shipment repository.
func NewGormSplitShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormSplitShipmentRepository {
	return &GormSplitShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new split. A unique violation on (order_id, split_index) means
// another split claimed the index first and is reported as a version conflict.
func (r *GormSplitShipmentRepository) Add(ctx context.Context, aggregate *shipment.SplitShipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := splitFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsConflict(err) {
			return errs.NewVersionIsInvalidErrorWithCause("splitIndex", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable part of a split: status, carrier, tracking number
// and the shipped/delivered stamps.
func (r *GormSplitShipmentRepository) Update(ctx context.Context, aggregate *shipment.SplitShipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := splitFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SplitShipmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":          dto.Status,
			"carrier":         dto.Carrier,
			"tracking_number": dto.TrackingNumber,
			"shipped_at":      dto.ShippedAt,
			"delivered_at":    dto.DeliveredAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("splitId", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a split by ID. Inside a transaction the row stays locked
// (SELECT ... FOR UPDATE) until commit or rollback, so concurrent status
// changes of one split apply one after the other against the latest status.
func (r *GormSplitShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.SplitShipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SplitShipmentDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("splitId", id)
		}
		return nil, err
	}

	return splitToDomain(dto)
}

// ListByOrder retrieves the splits of an order ordered by split index.
func (r *GormSplitShipmentRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.SplitShipment, error) {
	var dtos []SplitShipmentDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("split_index").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	splits := make([]*shipment.SplitShipment, 0, len(dtos))
	for _, dto := range dtos {
		split, err := splitToDomain(dto)
		if err != nil {
			return nil, err
		}
		splits = append(splits, split)
	}

	return splits, nil
}

// GormSplitEventRepository implements SplitEventRepository using GORM.
type GormSplitEventRepository struct {
	db *gorm.DB
}

// NewGormSplitEventRepository creates a new GORM split event repository.
func NewGormSplitEventRepository(db *gorm.DB) *GormSplitEventRepository {
	return &GormSplitEventRepository{db: db}
}

// Append inserts an event. Events are never updated.
func (r *GormSplitEventRepository) Append(ctx context.Context, event *shipment.Event) error {
	if event == nil {
		return errs.NewValueIsRequiredError("event")
	}

	dto := eventFromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder retrieves the events of an order in timestamp order.
func (r *GormSplitEventRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.Event, error) {
	var dtos []SplitEventDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at, seq").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]*shipment.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := eventToDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}
