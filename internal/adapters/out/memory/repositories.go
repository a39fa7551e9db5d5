package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/order"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/rules"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/errs"
)

type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(func(st *state) error {
		if _, exists := st.orders[aggregate.ID()]; exists {
			return errs.NewVersionIsInvalidErrorWithCause("order", fmt.Errorf("order %s already exists", aggregate.ID()))
		}
		st.orders[aggregate.ID()] = orderRecord{order: cloneOrder(aggregate, aggregate.Version()), version: aggregate.Version()}
		return nil
	})
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(func(st *state) error {
		stored, exists := st.orders[aggregate.ID()]
		if !exists {
			return errs.NewObjectNotFoundError("orderId", aggregate.ID())
		}
		if stored.version != aggregate.Version() {
			return errs.NewVersionIsInvalidError("order")
		}
		next := aggregate.Version() + 1
		st.orders[aggregate.ID()] = orderRecord{order: cloneOrder(aggregate, next), version: next}
		return nil
	})
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	var found *order.Order
	err := r.uow.read(func(st *state) error {
		stored, exists := st.orders[id]
		if !exists {
			return errs.NewObjectNotFoundError("orderId", id)
		}
		found = cloneOrder(stored.order, stored.version)
		return nil
	})
	return found, err
}

func (r *OrderRepository) ListWithIntegrityIssues(_ context.Context) ([]*order.Order, error) {
	var found []*order.Order
	err := r.uow.read(func(st *state) error {
		for _, stored := range st.orders {
			if len(stored.order.IntegrityIssues()) > 0 {
				found = append(found, cloneOrder(stored.order, stored.version))
			}
		}
		return nil
	})
	slices.SortFunc(found, func(a, b *order.Order) int {
		return strings.Compare(a.OrderNumber(), b.OrderNumber())
	})
	return found, err
}

func cloneOrder(o *order.Order, version int) *order.Order {
	lines := make([]*order.Line, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, order.RestoreLine(l.ID(), l.LineNumber(), l.SKU(), l.Description(),
			l.QtyOrdered(), l.QtyShipped(), l.QtyRemaining(),
			l.WeightPerUnit(), l.TotalWeightOrdered(), l.TotalWeightShipped(), l.Status()))
	}
	return order.RestoreOrder(o.ID(), o.OrderNumber(), lines, o.Shipments(), version)
}

type SplitShipmentRepository struct {
	uow *UnitOfWork
}

func (r *SplitShipmentRepository) Add(_ context.Context, aggregate *shipment.SplitShipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(func(st *state) error {
		for _, snap := range st.splits {
			if snap.OrderID == aggregate.OrderID() && snap.SplitIndex == aggregate.SplitIndex() {
				return errs.NewVersionIsInvalidError("splitIndex")
			}
		}
		st.splits[aggregate.ID()] = aggregate.Snapshot()
		return nil
	})
}

func (r *SplitShipmentRepository) Update(_ context.Context, aggregate *shipment.SplitShipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(func(st *state) error {
		if _, exists := st.splits[aggregate.ID()]; !exists {
			return errs.NewObjectNotFoundError("splitId", aggregate.ID())
		}
		st.splits[aggregate.ID()] = aggregate.Snapshot()
		return nil
	})
}

func (r *SplitShipmentRepository) Get(_ context.Context, id kernel.UUID) (*shipment.SplitShipment, error) {
	var found *shipment.SplitShipment
	err := r.uow.read(func(st *state) error {
		snap, exists := st.splits[id]
		if !exists {
			return errs.NewObjectNotFoundError("splitId", id)
		}
		found = shipment.RestoreSplitShipment(snap)
		return nil
	})
	return found, err
}

func (r *SplitShipmentRepository) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*shipment.SplitShipment, error) {
	found := make([]*shipment.SplitShipment, 0)
	err := r.uow.read(func(st *state) error {
		for _, snap := range st.splits {
			if snap.OrderID == orderID {
				found = append(found, shipment.RestoreSplitShipment(snap))
			}
		}
		return nil
	})
	slices.SortFunc(found, func(a, b *shipment.SplitShipment) int {
		return a.SplitIndex() - b.SplitIndex()
	})
	return found, err
}

type SplitEventRepository struct {
	uow *UnitOfWork
}

func (r *SplitEventRepository) Append(_ context.Context, event *shipment.Event) error {
	return r.uow.write(func(st *state) error {
		st.events = append(st.events, event)
		return nil
	})
}

func (r *SplitEventRepository) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*shipment.Event, error) {
	found := make([]*shipment.Event, 0)
	err := r.uow.read(func(st *state) error {
		for _, e := range st.events {
			if e.OrderID() == orderID {
				found = append(found, e)
			}
		}
		return nil
	})
	slices.SortStableFunc(found, func(a, b *shipment.Event) int {
		return a.Timestamp().Compare(b.Timestamp())
	})
	return found, err
}

type CutoffRuleRepository struct {
	uow *UnitOfWork
}

func (r *CutoffRuleRepository) Get(_ context.Context, locationID string) (*rules.CutoffRuleSet, error) {
	var found *rules.CutoffRuleSet
	err := r.uow.read(func(st *state) error {
		rs, exists := st.rules[locationID]
		if !exists {
			return errs.NewObjectNotFoundError("locationId", locationID)
		}
		found = rs
		return nil
	})
	return found, err
}

// Save stores the rule set as is; CutoffRuleSet has no mutators.
func (r *CutoffRuleRepository) Save(_ context.Context, ruleSet *rules.CutoffRuleSet) error {
	if err := ruleSet.Validate(); err != nil {
		return err
	}
	return r.uow.write(func(st *state) error {
		st.rules[ruleSet.LocationID()] = ruleSet
		return nil
	})
}
