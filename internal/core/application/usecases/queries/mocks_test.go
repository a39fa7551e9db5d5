package queries_test

import (
	"context"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/order"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/rules"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListWithIntegrityIssues(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSplitShipmentRepository struct{ mock.Mock }

func (m *MockSplitShipmentRepository) Add(ctx context.Context, s *shipment.SplitShipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSplitShipmentRepository) Update(ctx context.Context, s *shipment.SplitShipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSplitShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.SplitShipment, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*shipment.SplitShipment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSplitShipmentRepository) ListByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*shipment.SplitShipment, error) {
	args := m.Called(ctx, orderID)
	if s := args.Get(0); s != nil {
		return s.([]*shipment.SplitShipment), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSplitEventRepository struct{ mock.Mock }

func (m *MockSplitEventRepository) Append(ctx context.Context, e *shipment.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockSplitEventRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*shipment.Event, error) {
	args := m.Called(ctx, orderID)
	if e := args.Get(0); e != nil {
		return e.([]*shipment.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCutoffRuleRepository struct{ mock.Mock }

func (m *MockCutoffRuleRepository) Get(ctx context.Context, locationID string) (*rules.CutoffRuleSet, error) {
	args := m.Called(ctx, locationID)
	if rs := args.Get(0); rs != nil {
		return rs.(*rules.CutoffRuleSet), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCutoffRuleRepository) Save(ctx context.Context, rs *rules.CutoffRuleSet) error {
	args := m.Called(ctx, rs)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) SplitShipmentRepository() ports.SplitShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.SplitShipmentRepository)
}

func (m *MockUoW) SplitEventRepository() ports.SplitEventRepository {
	args := m.Called()
	return args.Get(0).(ports.SplitEventRepository)
}

func (m *MockUoW) CutoffRuleRepository() ports.CutoffRuleRepository {
	args := m.Called()
	return args.Get(0).(ports.CutoffRuleRepository)
}

type MockUnitOfWorkFactory struct{ mock.Mock }

func (m *MockUnitOfWorkFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}
