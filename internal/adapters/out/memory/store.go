// Package memory provides an in-memory implementation of the fulfillment
// unit of work, used for local runs and tests.
//
// A transaction takes the store's write lock at Begin and works on a copy of
// the committed state; Commit publishes the copy, Rollback drops it. Reads
// outside a transaction see the last committed state.
package memory

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/order"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/rules"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/shipment"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/ports"
)

var (
	ErrTransactionIsActive = errors.New("transaction is already active")
	ErrNoActiveTransaction = errors.New("no active transaction")
)

var (
	_ ports.UnitOfWorkFactory = (*Store)(nil)
	_ ports.UnitOfWork        = (*UnitOfWork)(nil)
)

type orderRecord struct {
	order   *order.Order
	version int
}

type state struct {
	orders map[kernel.UUID]orderRecord
	splits map[kernel.UUID]shipment.Snapshot
	events []*shipment.Event
	rules  map[string]*rules.CutoffRuleSet
}

func newState() state {
	return state{
		orders: make(map[kernel.UUID]orderRecord),
		splits: make(map[kernel.UUID]shipment.Snapshot),
		rules:  make(map[string]*rules.CutoffRuleSet),
	}
}

// clone copies the maps. Records are replaced, never mutated in place, so a
// shallow copy isolates a transaction from the committed state.
func (s state) clone() state {
	return state{
		orders: maps.Clone(s.orders),
		splits: maps.Clone(s.splits),
		events: append([]*shipment.Event(nil), s.events...),
		rules:  maps.Clone(s.rules),
	}
}

// Store holds the committed state.
type Store struct {
	mu    sync.RWMutex
	state state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

// Create returns a unit of work bound to the store.
func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

// UnitOfWork is a single-use transaction over a Store.
type UnitOfWork struct {
	store *Store
	tx    *state
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.tx != nil {
		return ErrTransactionIsActive
	}
	u.store.mu.Lock()
	working := u.store.state.clone()
	u.tx = &working
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.tx == nil {
		return ErrNoActiveTransaction
	}
	u.store.state = *u.tx
	u.tx = nil
	u.store.mu.Unlock()
	return nil
}

// Rollback discards the working copy. It is a no-op without a transaction.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return nil
	}
	u.tx = nil
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: u}
}

func (u *UnitOfWork) SplitShipmentRepository() ports.SplitShipmentRepository {
	return &SplitShipmentRepository{uow: u}
}

func (u *UnitOfWork) SplitEventRepository() ports.SplitEventRepository {
	return &SplitEventRepository{uow: u}
}

func (u *UnitOfWork) CutoffRuleRepository() ports.CutoffRuleRepository {
	return &CutoffRuleRepository{uow: u}
}

func (u *UnitOfWork) read(fn func(st *state) error) error {
	if u.tx != nil {
		return fn(u.tx)
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	return fn(&u.store.state)
}

func (u *UnitOfWork) write(fn func(st *state) error) error {
	if u.tx != nil {
		return fn(u.tx)
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(&u.store.state)
}
