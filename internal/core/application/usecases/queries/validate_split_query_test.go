package queries_test

import (
	"testing"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/application/usecases/queries"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/order"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// partialOrder has one line: ordered 150, shipped 60, remaining 90, 40 lbs per unit.
func partialOrder() (*order.Order, *order.Line) {
	line := order.RestoreLine(kernel.NewUUID(), 1, "HR-PLATE", "Hot rolled plate",
		150, 60, 90, 40, 6000, 2400, order.LinePartial)
	return order.RestoreOrder(kernel.NewUUID(), "SO-10042", []*order.Line{line}, nil, 1), line
}

func orderFactory(repo *MockOrderRepository) *MockUnitOfWorkFactory {
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(repo)
	factory := new(MockUnitOfWorkFactory)
	factory.On("Create").Return(uow)
	return factory
}

func TestValidateSplitQueryHandler_Handle(t *testing.T) {
	tracker := services.NewFulfillmentTracker()

	t.Run("collects every problem without changing the order", func(t *testing.T) {
		o, line := partialOrder()
		repo := new(MockOrderRepository)
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

		query, err := queries.NewValidateSplitQuery(o.ID(), []services.SplitLine{
			{LineID: line.ID(), QtyToShip: 91},
			{LineID: line.ID(), QtyToShip: 1},
		})
		require.NoError(t, err)

		h := queries.NewValidateSplitQueryHandler(orderFactory(repo), tracker)
		result, err := h.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, []string{
			"line 1: quantity to ship 91 exceeds remaining quantity 90",
			"line 1 is listed more than once",
		}, result.Errors)
		assert.Equal(t, 90, line.QtyRemaining())
	})

	t.Run("valid proposal", func(t *testing.T) {
		o, line := partialOrder()
		repo := new(MockOrderRepository)
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

		query, _ := queries.NewValidateSplitQuery(o.ID(), []services.SplitLine{{LineID: line.ID(), QtyToShip: 90}})

		h := queries.NewValidateSplitQueryHandler(orderFactory(repo), tracker)
		result, err := h.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.True(t, result.Valid)
	})

	t.Run("unknown order", func(t *testing.T) {
		orderID := kernel.NewUUID()
		repo := new(MockOrderRepository)
		repo.On("Get", mock.Anything, orderID).Return(nil, errs.NewObjectNotFoundError("orderId", orderID)).Once()

		query, _ := queries.NewValidateSplitQuery(orderID, nil)

		h := queries.NewValidateSplitQueryHandler(orderFactory(repo), tracker)
		_, err := h.Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("query requires an order id", func(t *testing.T) {
		_, err := queries.NewValidateSplitQuery(kernel.UUID{}, nil)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}
