package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/ports"
)

var _ ports.OrderLocker = (*OrderLocker)(nil)

// OrderLocker serializes operations per order inside one process. Waiters
// give up with ports.ErrOrderLocked when their context ends.
type OrderLocker struct {
	mu    sync.Mutex
	slots map[kernel.UUID]*lockSlot
}

type lockSlot struct {
	sem     chan struct{}
	holders int
}

func NewOrderLocker() *OrderLocker {
	return &OrderLocker{slots: make(map[kernel.UUID]*lockSlot)}
}

func (l *OrderLocker) Lock(ctx context.Context, orderID kernel.UUID) (ports.UnlockFunc, error) {
	slot := l.acquireSlot(orderID)

	select {
	case slot.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseSlot(orderID)
		return nil, fmt.Errorf("%w: %w", ports.ErrOrderLocked, ctx.Err())
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-slot.sem
			l.releaseSlot(orderID)
		})
		return nil
	}, nil
}

// acquireSlot registers interest in the order's slot so that it is not
// dropped while a caller waits on it.
func (l *OrderLocker) acquireSlot(orderID kernel.UUID) *lockSlot {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.slots[orderID]
	if !ok {
		slot = &lockSlot{sem: make(chan struct{}, 1)}
		l.slots[orderID] = slot
	}
	slot.holders++
	return slot
}

func (l *OrderLocker) releaseSlot(orderID kernel.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot := l.slots[orderID]
	slot.holders--
	if slot.holders == 0 {
		delete(l.slots, orderID)
	}
}
