package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/adapters/out/postgres/pgerr"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/order"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.Code(err) == pgerr.UniqueViolation {
			return errs.NewVersionIsInvalidErrorWithCause("order", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order guarded by its version: the row is only touched when
// the stored version still equals aggregate.Version(), and the write bumps it.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"fulfillment_status": dto.FulfillmentStatus,
			"shipment_ids":       dto.ShipmentIDs,
			"version":            dto.Version + 1,
		})
	if result.Error != nil {
		if pgerr.IsConflict(result.Error) {
			return errs.NewVersionIsInvalidErrorWithCause("order", result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("orderId", aggregate.ID())
		}
		return errs.NewVersionIsInvalidErrorWithCause("order",
			fmt.Errorf("version %d is no longer current", dto.Version))
	}

	for i := range dto.Lines {
		if err := db.Save(&dto.Lines[i]).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its lines by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Lines", byLineNumber).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListWithIntegrityIssues retrieves orders owning at least one overshipped or
// unbalanced line, ordered by order number.
func (r *GormOrderRepository) ListWithIntegrityIssues(ctx context.Context) ([]*order.Order, error) {
	db := r.db.WithContext(ctx)
	broken := db.Model(&LineDTO{}).
		Select("order_id").
		Where("qty_remaining < 0 OR qty_ordered <> qty_shipped + qty_remaining")

	var dtos []OrderDTO
	if err := db.Preload("Lines", byLineNumber).
		Where("id IN (?)", broken).
		Order("order_number").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func byLineNumber(db *gorm.DB) *gorm.DB {
	return db.Order("line_number")
}
