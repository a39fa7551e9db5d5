// Package redis implements the per-order lock on Redis so that several
// service instances serialize quantity-changing operations on the same order.
//
// A lock is a key holding a random token, set with NX and a TTL. Release
// deletes the key only while it still holds the caller's token, so a holder
// whose TTL ran out cannot release a lock that another caller obtained since.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

var _ ports.OrderLocker = (*OrderLocker)(nil)

// ErrLockExpired is returned by an UnlockFunc when the lock's TTL elapsed
// before release. The protected work may have overlapped with another holder;
// the order version check is what rejects the loser in that case.
var ErrLockExpired = errors.New("order lock expired before release")

const (
	DefaultTTL           = 10 * time.Second
	DefaultRetryInterval = 25 * time.Millisecond
	DefaultKeyPrefix     = "fulfillment:order-lock:"
)

var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// OrderLocker is a ports.OrderLocker backed by Redis.
type OrderLocker struct {
	client        goredis.UniversalClient
	ttl           time.Duration
	retryInterval time.Duration
	keyPrefix     string
}

// Option configures an OrderLocker.
type Option func(*OrderLocker)

// WithTTL bounds how long a crashed holder can block an order.
func WithTTL(ttl time.Duration) Option {
	return func(l *OrderLocker) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// WithRetryInterval sets the pause between acquisition attempts.
func WithRetryInterval(d time.Duration) Option {
	return func(l *OrderLocker) {
		if d > 0 {
			l.retryInterval = d
		}
	}
}

// WithKeyPrefix namespaces lock keys, e.g. per environment.
func WithKeyPrefix(prefix string) Option {
	return func(l *OrderLocker) {
		l.keyPrefix = prefix
	}
}

// NewOrderLocker creates a locker using client.
//
// Example:
//
//	client := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
//	locker := redis.NewOrderLocker(client, redis.WithTTL(5*time.Second))
//	unlock, err := locker.Lock(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	defer unlock(context.WithoutCancel(ctx))
func NewOrderLocker(client goredis.UniversalClient, opts ...Option) *OrderLocker {
	l := &OrderLocker{
		client:        client,
		ttl:           DefaultTTL,
		retryInterval: DefaultRetryInterval,
		keyPrefix:     DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lock retries SET NX until it wins or ctx ends. A context that ends while
// waiting yields ports.ErrOrderLocked.
func (l *OrderLocker) Lock(ctx context.Context, orderID kernel.UUID) (ports.UnlockFunc, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	key := l.keyPrefix + orderID.String()
	token := kernel.NewUUID().String()

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ports.ErrOrderLocked, ctx.Err())
		case <-timer.C:
		}

		acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("%w: %w", ports.ErrOrderLocked, ctxErr)
			}
			return nil, fmt.Errorf("acquire lock for order %s: %w", orderID, err)
		}
		if acquired {
			return l.unlockFunc(key, token), nil
		}
		timer.Reset(l.retryInterval)
	}
}

// Ping checks connectivity to Redis.
func (l *OrderLocker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *OrderLocker) unlockFunc(key, token string) ports.UnlockFunc {
	var (
		once sync.Once
		err  error
	)
	return func(ctx context.Context) error {
		once.Do(func() {
			deleted, runErr := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
			switch {
			case runErr != nil:
				err = fmt.Errorf("release lock %s: %w", key, runErr)
			case deleted == 0:
				err = ErrLockExpired
			}
		})
		return err
	}
}
