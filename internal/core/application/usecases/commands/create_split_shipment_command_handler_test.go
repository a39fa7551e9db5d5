package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/application/usecases/commands"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/order"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/ports"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var handlerNow = time.Date(2024, time.January, 15, 16, 0, 0, 0, time.UTC)

func newTestTracker() *services.FulfillmentTracker {
	return services.NewFulfillmentTracker(services.WithTrackerClock(func() time.Time { return handlerNow }))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// halfShippedOrder has one line: ordered 150, shipped 60, remaining 90, 40 lbs per unit.
func halfShippedOrder() (*order.Order, *order.Line) {
	line := order.RestoreLine(kernel.NewUUID(), 1, "HR-PLATE", "Hot rolled plate",
		150, 60, 90, 40, 6000, 2400, order.LinePartial)
	return order.RestoreOrder(kernel.NewUUID(), "SO-10042", []*order.Line{line}, nil, 1), line
}

type splitFixture struct {
	orderRepo *MockOrderRepository
	splitRepo *MockSplitShipmentRepository
	eventRepo *MockSplitEventRepository
	uow       *MockUoW
	factory   *MockSplitUoWFactory
	locker    *MockOrderLocker
	registry  *prometheus.Registry
	unlocked  bool
}

func newSplitFixture() *splitFixture {
	f := &splitFixture{
		orderRepo: new(MockOrderRepository),
		splitRepo: new(MockSplitShipmentRepository),
		eventRepo: new(MockSplitEventRepository),
		uow:       new(MockUoW),
		factory:   new(MockSplitUoWFactory),
		locker:    new(MockOrderLocker),
		registry:  prometheus.NewRegistry(),
	}
	f.uow.On("OrderRepository").Return(f.orderRepo).Maybe()
	f.uow.On("SplitShipmentRepository").Return(f.splitRepo).Maybe()
	f.uow.On("SplitEventRepository").Return(f.eventRepo).Maybe()
	f.factory.On("Create").Return(f.uow).Maybe()
	return f
}

func (f *splitFixture) expectLock(orderID kernel.UUID) {
	unlock := ports.UnlockFunc(func(context.Context) error {
		f.unlocked = true
		return nil
	})
	f.locker.On("Lock", mock.Anything, orderID).Return(unlock, nil).Once()
}

func (f *splitFixture) handler() commands.CreateSplitShipmentCommandHandler {
	return commands.NewCreateSplitShipmentCommandHandler(
		f.factory, f.locker, newTestTracker(), metrics.New(f.registry), discardLogger())
}

func TestCreateSplitShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o, line := halfShippedOrder()
	f := newSplitFixture()
	f.expectLock(o.ID())

	var stored *shipment.SplitShipment
	mock.InOrder(
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		f.splitRepo.On("ListByOrder", mock.Anything, o.ID()).Return([]*shipment.SplitShipment{}, nil).Once(),
		f.splitRepo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.SplitShipment")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*shipment.SplitShipment) }).
			Return(nil).Once(),
		f.orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		f.eventRepo.On("Append", mock.Anything, mock.MatchedBy(func(e *shipment.Event) bool {
			return e.Action() == shipment.ActionSplitCreated && e.User() == "dock-1"
		})).Return(nil).Once(),
		f.uow.On("Commit", mock.Anything).Return(nil).Once(),
		f.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	cmd, err := commands.NewCreateSplitShipmentCommand(o.ID(),
		[]services.SplitLine{{LineID: line.ID(), QtyToShip: 90}}, services.SplitMeta{User: "dock-1"})
	require.NoError(t, err)

	h := f.handler()
	split, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, split)
	assert.Same(t, stored, split)
	assert.Equal(t, 1, split.SplitIndex())
	assert.Equal(t, shipment.Draft, split.Status())
	assert.Equal(t, 0, line.QtyRemaining())
	assert.Equal(t, order.Fulfilled, o.FulfillmentStatus())
	assert.True(t, f.unlocked)

	require.NoError(t, testutil.GatherAndCompare(f.registry, strings.NewReader(`
# HELP fulfillment_split_shipments_created_total Split shipments created.
# TYPE fulfillment_split_shipments_created_total counter
fulfillment_split_shipments_created_total 1
`), "fulfillment_split_shipments_created_total"))

	f.orderRepo.AssertExpectations(t)
	f.splitRepo.AssertExpectations(t)
	f.eventRepo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.locker.AssertExpectations(t)
}

func TestCreateSplitShipmentCommandHandler_Handle_ContinuesSplitGroup(t *testing.T) {
	ctx := t.Context()
	o, line := halfShippedOrder()
	f := newSplitFixture()
	f.expectLock(o.ID())

	groupID := kernel.NewUUID()
	first := shipment.RestoreSplitShipment(shipment.Snapshot{
		ID:           kernel.NewUUID(),
		SplitGroupID: groupID,
		OrderID:      o.ID(),
		SplitIndex:   1,
		Status:       shipment.Shipped,
		Lines:        []shipment.Line{{LineID: line.ID(), LineNumber: 1, Qty: 60, Weight: 2400}},
		CreatedBy:    "dock-1",
		CreatedAt:    handlerNow.Add(-48 * time.Hour),
	})

	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	f.splitRepo.On("ListByOrder", mock.Anything, o.ID()).Return([]*shipment.SplitShipment{first}, nil).Once()
	f.splitRepo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.SplitShipment")).Return(nil).Once()
	f.orderRepo.On("Update", mock.Anything, o).Return(nil).Once()
	f.eventRepo.On("Append", mock.Anything, mock.AnythingOfType("*shipment.Event")).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()

	cmd, _ := commands.NewCreateSplitShipmentCommand(o.ID(),
		[]services.SplitLine{{LineID: line.ID(), QtyToShip: 30}}, services.SplitMeta{User: "dock-2"})

	h := f.handler()
	split, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, split.SplitIndex())
	assert.Equal(t, groupID, split.SplitGroupID())
	assert.Equal(t, 60, line.QtyRemaining())
	assert.Equal(t, order.PartiallyFulfilled, o.FulfillmentStatus())
}

func TestCreateSplitShipmentCommandHandler_Handle_RejectsOverRemaining(t *testing.T) {
	ctx := t.Context()
	o, line := halfShippedOrder()
	f := newSplitFixture()
	f.expectLock(o.ID())

	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	f.splitRepo.On("ListByOrder", mock.Anything, o.ID()).Return([]*shipment.SplitShipment{}, nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()

	cmd, _ := commands.NewCreateSplitShipmentCommand(o.ID(),
		[]services.SplitLine{{LineID: line.ID(), QtyToShip: 91}}, services.SplitMeta{User: "dock-1"})

	h := f.handler()
	split, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, split)
	var invalid *services.SplitValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"line 1: quantity to ship 91 exceeds remaining quantity 90"}, invalid.Messages)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.Equal(t, 90, line.QtyRemaining())
	assert.True(t, f.unlocked)
	f.splitRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)

	require.NoError(t, testutil.GatherAndCompare(f.registry, strings.NewReader(`
# HELP fulfillment_split_shipments_rejected_total Split shipment requests rejected by validation.
# TYPE fulfillment_split_shipments_rejected_total counter
fulfillment_split_shipments_rejected_total 1
`), "fulfillment_split_shipments_rejected_total"))
}

func TestCreateSplitShipmentCommandHandler_Handle_LockHeld(t *testing.T) {
	ctx := t.Context()
	o, line := halfShippedOrder()
	f := newSplitFixture()
	f.locker.On("Lock", mock.Anything, o.ID()).Return(nil, ports.ErrOrderLocked).Once()

	cmd, _ := commands.NewCreateSplitShipmentCommand(o.ID(),
		[]services.SplitLine{{LineID: line.ID(), QtyToShip: 10}}, services.SplitMeta{User: "dock-1"})

	h := f.handler()
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrOrderLocked)
	f.factory.AssertNotCalled(t, "Create")
}

func TestCreateSplitShipmentCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	f := newSplitFixture()
	orderID := kernel.NewUUID()
	f.expectLock(orderID)

	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.orderRepo.On("Get", mock.Anything, orderID).Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()

	cmd, _ := commands.NewCreateSplitShipmentCommand(orderID,
		[]services.SplitLine{{LineID: kernel.NewUUID(), QtyToShip: 10}}, services.SplitMeta{User: "dock-1"})

	h := f.handler()
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.True(t, f.unlocked)
}

func TestCreateSplitShipmentCommandHandler_Handle_StaleOrderVersion(t *testing.T) {
	ctx := t.Context()
	o, line := halfShippedOrder()
	f := newSplitFixture()
	f.expectLock(o.ID())

	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	f.splitRepo.On("ListByOrder", mock.Anything, o.ID()).Return([]*shipment.SplitShipment{}, nil).Once()
	f.splitRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	f.orderRepo.On("Update", mock.Anything, o).Return(errs.NewVersionIsInvalidError("order")).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()

	cmd, _ := commands.NewCreateSplitShipmentCommand(o.ID(),
		[]services.SplitLine{{LineID: line.ID(), QtyToShip: 10}}, services.SplitMeta{User: "dock-1"})

	h := f.handler()
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	f.eventRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateSplitShipmentCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	o, line := halfShippedOrder()
	f := newSplitFixture()
	f.expectLock(o.ID())

	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	f.splitRepo.On("ListByOrder", mock.Anything, o.ID()).Return([]*shipment.SplitShipment{}, nil).Once()
	f.splitRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	f.orderRepo.On("Update", mock.Anything, o).Return(nil).Once()
	f.eventRepo.On("Append", mock.Anything, mock.Anything).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(errors.New("commit error")).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()

	cmd, _ := commands.NewCreateSplitShipmentCommand(o.ID(),
		[]services.SplitLine{{LineID: line.ID(), QtyToShip: 10}}, services.SplitMeta{User: "dock-1"})

	h := f.handler()
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	assert.True(t, f.unlocked)
}

func TestCreateSplitShipmentCommandHandler_Handle_NotConstructed(t *testing.T) {
	f := newSplitFixture()
	h := f.handler()

	_, err := h.Handle(t.Context(), commands.CreateSplitShipmentCommand{})

	require.ErrorIs(t, err, commands.ErrCreateSplitShipmentCommandIsNotConstructed)
	f.locker.AssertNotCalled(t, "Lock", mock.Anything, mock.Anything)
}
