package commands

import (
	"context"
	"log/slog"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
)

// UpdateSplitShipmentStatusCommandHandler applies a status transition and
// appends the STATUS_CHANGED event in the same transaction.
type UpdateSplitShipmentStatusCommandHandler struct {
	uowFactory SplitUoWFactory
	tracker    *services.FulfillmentTracker
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewUpdateSplitShipmentStatusCommandHandler wires the handler. metrics may be nil.
func NewUpdateSplitShipmentStatusCommandHandler(
	uowFactory SplitUoWFactory,
	tracker *services.FulfillmentTracker,
	m *metrics.Metrics,
	logger *slog.Logger,
) UpdateSplitShipmentStatusCommandHandler {
	return UpdateSplitShipmentStatusCommandHandler{
		uowFactory: uowFactory,
		tracker:    tracker,
		metrics:    m,
		logger:     logger.With("component", "update-split-shipment-status"),
	}
}

// Handle returns the updated split. Illegal transitions fail with
// shipment.ErrTransitionIsInvalid and nothing is written.
func (h *UpdateSplitShipmentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateSplitShipmentStatusCommand,
) (split *shipment.SplitShipment, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "UpdateSplitShipmentStatus")
	span.SetAttributes(
		attribute.String("split.id", cmd.SplitID().String()),
		attribute.String("split.status", cmd.NewStatus().String()),
	)
	defer func() { endSpan(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	split, err = uow.SplitShipmentRepository().Get(ctx, cmd.SplitID())
	if err != nil {
		return nil, err
	}

	event, err := h.tracker.UpdateSplitShipmentStatus(split, cmd.NewStatus(), cmd.Meta())
	if err != nil {
		return nil, err
	}

	if err = uow.SplitShipmentRepository().Update(ctx, split); err != nil {
		return nil, err
	}
	if err = uow.SplitEventRepository().Append(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.SplitTransitioned(split.Status().String())
	h.logger.InfoContext(ctx, "split shipment status changed",
		"split_id", split.ID().String(),
		"status", split.Status().String(),
	)

	return split, nil
}
