// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SplitShipmentRepoFactory provides access to split shipment repository within a transaction.
	SplitShipmentRepoFactory interface {
		SplitShipmentRepository() ports.SplitShipmentRepository
	}

	// SplitEventRepoFactory provides access to the split event log within a transaction.
	SplitEventRepoFactory interface {
		SplitEventRepository() ports.SplitEventRepository
	}

	// CutoffRuleRepoFactory provides access to cutoff rules within a transaction.
	CutoffRuleRepoFactory interface {
		CutoffRuleRepository() ports.CutoffRuleRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SplitUoW manages transactions spanning an order, its split shipments
	// and the split event log.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   // ... create the split
	//   err = uow.SplitShipmentRepository().Add(ctx, split)
	//   err = uow.OrderRepository().Update(ctx, o)
	//   err = uow.SplitEventRepository().Append(ctx, event)
	//
	//   err = uow.Commit(ctx)
	SplitUoW interface {
		TxManager
		OrderRepoFactory
		SplitShipmentRepoFactory
		SplitEventRepoFactory
	}

	// SplitUoWFactory creates new split unit of work instances.
	SplitUoWFactory interface {
		Create() SplitUoW
	}

	// RulesUoW manages transactions for cutoff rule changes.
	RulesUoW interface {
		TxManager
		CutoffRuleRepoFactory
	}

	// RulesUoWFactory creates new rules unit of work instances.
	RulesUoWFactory interface {
		Create() RulesUoW
	}
)
