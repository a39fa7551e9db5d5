package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. It is a no-op after Commit.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// SplitShipmentRepository returns a SplitShipmentRepository bound to the current transaction.
	SplitShipmentRepository() SplitShipmentRepository

	// SplitEventRepository returns a SplitEventRepository bound to the current transaction.
	SplitEventRepository() SplitEventRepository

	// CutoffRuleRepository returns a CutoffRuleRepository bound to the current transaction.
	CutoffRuleRepository() CutoffRuleRepository
}
