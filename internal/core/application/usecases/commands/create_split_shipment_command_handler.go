package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/ports"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
)

// CreateSplitShipmentCommandHandler creates a split shipment and moves the
// shipped quantities on the order in one transaction.
//
// Concurrent splits of the same order are serialized twice: the handler holds
// the order lock for the whole transaction, and the order update fails with
// errs.VersionIsInvalidError if the order changed since it was read.
//
// Example:
//
//	handler := NewCreateSplitShipmentCommandHandler(uowFactory, locker, tracker, m, logger)
//	cmd, _ := NewCreateSplitShipmentCommand(orderID, []services.SplitLine{{LineID: lineID, QtyToShip: 60}},
//	    services.SplitMeta{User: "dock-1"})
//
//	split, err := handler.Handle(ctx, cmd)
//	var invalid *services.SplitValidationError
//	if errors.As(err, &invalid) {
//	    // every problem of the request is in invalid.Messages
//	}
type CreateSplitShipmentCommandHandler struct {
	uowFactory SplitUoWFactory
	locker     ports.OrderLocker
	tracker    *services.FulfillmentTracker
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewCreateSplitShipmentCommandHandler wires the handler. metrics may be nil.
func NewCreateSplitShipmentCommandHandler(
	uowFactory SplitUoWFactory,
	locker ports.OrderLocker,
	tracker *services.FulfillmentTracker,
	m *metrics.Metrics,
	logger *slog.Logger,
) CreateSplitShipmentCommandHandler {
	return CreateSplitShipmentCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		tracker:    tracker,
		metrics:    m,
		logger:     logger.With("component", "create-split-shipment"),
	}
}

// Handle locks the order, validates and applies the split, and persists the
// split, the updated order and the SPLIT_CREATED event.
func (h *CreateSplitShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateSplitShipmentCommand,
) (split *shipment.SplitShipment, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "CreateSplitShipment")
	span.SetAttributes(attribute.String("order.id", cmd.OrderID().String()))
	defer func() { endSpan(span, err) }()

	unlock, err := h.locker.Lock(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	defer func() {
		if unlockErr := unlock(context.WithoutCancel(ctx)); unlockErr != nil {
			h.logger.WarnContext(ctx, "failed to release order lock",
				"order_id", cmd.OrderID().String(), "error", unlockErr)
		}
	}()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	existing, err := uow.SplitShipmentRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	split, event, err := h.tracker.CreateSplitShipment(o, existing, cmd.Lines(), cmd.Meta())
	if err != nil {
		var invalid *services.SplitValidationError
		if errors.As(err, &invalid) {
			h.metrics.SplitRejected()
		}
		return nil, err
	}

	if err = uow.SplitShipmentRepository().Add(ctx, split); err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.SplitEventRepository().Append(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.SplitCreated(split.TotalWeight())
	h.logger.InfoContext(ctx, "split shipment created",
		"order_id", o.ID().String(),
		"split_id", split.ID().String(),
		"split_index", split.SplitIndex(),
		"fulfillment_status", o.FulfillmentStatus().String(),
	)

	return split, nil
}
