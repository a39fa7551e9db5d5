package commands_test

import (
	"errors"
	"testing"
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/application/usecases/commands"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func splitInStatus(status shipment.Status) *shipment.SplitShipment {
	lineID := kernel.NewUUID()
	return shipment.RestoreSplitShipment(shipment.Snapshot{
		ID:           kernel.NewUUID(),
		SplitGroupID: kernel.NewUUID(),
		OrderID:      kernel.NewUUID(),
		SplitIndex:   1,
		Status:       status,
		Lines:        []shipment.Line{{LineID: lineID, LineNumber: 1, Qty: 60, Weight: 2400}},
		CreatedBy:    "dock-1",
		CreatedAt:    handlerNow.Add(-time.Hour),
	})
}

func newStatusHandler(factory *MockSplitUoWFactory) commands.UpdateSplitShipmentStatusCommandHandler {
	return commands.NewUpdateSplitShipmentStatusCommandHandler(
		factory, newTestTracker(), metrics.New(prometheus.NewRegistry()), discardLogger())
}

func TestUpdateSplitShipmentStatusCommandHandler_Handle_Shipped(t *testing.T) {
	ctx := t.Context()
	split := splitInStatus(shipment.Packed)

	splitRepo := new(MockSplitShipmentRepository)
	eventRepo := new(MockSplitEventRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("SplitShipmentRepository").Return(splitRepo).Once(),
		splitRepo.On("Get", mock.Anything, split.ID()).Return(split, nil).Once(),
		uow.On("SplitShipmentRepository").Return(splitRepo).Once(),
		splitRepo.On("Update", mock.Anything, split).Return(nil).Once(),
		uow.On("SplitEventRepository").Return(eventRepo).Once(),
		eventRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *shipment.Event) bool {
			d := e.Details()
			return e.Action() == shipment.ActionStatusChanged &&
				d["from"] == "PACKED" && d["to"] == "SHIPPED" && d["trackingNumber"] == "1Z999"
		})).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	factory := new(MockSplitUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewUpdateSplitShipmentStatusCommand(split.ID(), shipment.Shipped,
		services.StatusMeta{User: "dock-1", Carrier: "XPO", TrackingNumber: "1Z999"})
	require.NoError(t, err)

	h := newStatusHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.Shipped, updated.Status())
	require.NotNil(t, updated.ShippedAt())
	assert.Equal(t, handlerNow, *updated.ShippedAt())
	assert.Equal(t, "XPO", updated.Carrier())
	splitRepo.AssertExpectations(t)
	eventRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateSplitShipmentStatusCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	split := splitInStatus(shipment.Draft)

	splitRepo := new(MockSplitShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("SplitShipmentRepository").Return(splitRepo).Once()
	splitRepo.On("Get", mock.Anything, split.ID()).Return(split, nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockSplitUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewUpdateSplitShipmentStatusCommand(split.ID(), shipment.Delivered,
		services.StatusMeta{User: "dock-1"})

	h := newStatusHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, shipment.ErrTransitionIsInvalid)
	assert.Equal(t, shipment.Draft, split.Status())
	assert.Nil(t, split.DeliveredAt())
	splitRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateSplitShipmentStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	splitID := kernel.NewUUID()

	splitRepo := new(MockSplitShipmentRepository)
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("SplitShipmentRepository").Return(splitRepo).Once()
	splitRepo.On("Get", mock.Anything, splitID).
		Return(nil, errs.NewObjectNotFoundError("splitID", splitID)).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockSplitUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewUpdateSplitShipmentStatusCommand(splitID, shipment.Ready, services.StatusMeta{User: "dock-1"})

	h := newStatusHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateSplitShipmentStatusCommandHandler_Handle_AppendError(t *testing.T) {
	ctx := t.Context()
	split := splitInStatus(shipment.Draft)

	splitRepo := new(MockSplitShipmentRepository)
	eventRepo := new(MockSplitEventRepository)
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("SplitShipmentRepository").Return(splitRepo)
	uow.On("SplitEventRepository").Return(eventRepo)
	splitRepo.On("Get", mock.Anything, split.ID()).Return(split, nil).Once()
	splitRepo.On("Update", mock.Anything, split).Return(nil).Once()
	eventRepo.On("Append", mock.Anything, mock.Anything).Return(errors.New("append error")).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockSplitUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewUpdateSplitShipmentStatusCommand(split.ID(), shipment.Ready, services.StatusMeta{User: "dock-1"})

	h := newStatusHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "append error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
