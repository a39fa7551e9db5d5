package ports

import (
	"context"
	"errors"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
)

// ErrOrderLocked is returned by OrderLocker.Lock when another operation holds
// the order and the lock could not be obtained before the context ended.
var ErrOrderLocked = errors.New("order is locked by another operation")

// UnlockFunc releases a lock obtained from OrderLocker.
type UnlockFunc func(ctx context.Context) error

// OrderLocker serializes quantity-changing operations per order.
type OrderLocker interface {
	Lock(ctx context.Context, orderID kernel.UUID) (UnlockFunc, error)
}
