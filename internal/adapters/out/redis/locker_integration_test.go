package redis_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/adapters/out/redis"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/kernel"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// OrderLockerIntegrationTestSuite runs the Redis order lock against a Redis container.
type OrderLockerIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *goredis.Client
}

func (suite *OrderLockerIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = goredis.NewClient(&goredis.Options{Addr: endpoint})
	suite.Require().NoError(suite.client.Ping(ctx).Err())
}

func (suite *OrderLockerIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushDB(context.Background()).Err())
}

func (suite *OrderLockerIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderLockerIntegrationTestSuite) TestLock_ThenUnlock_RemovesKey() {
	ctx := context.Background()
	locker := redis.NewOrderLocker(suite.client, redis.WithTTL(time.Minute))
	orderID := kernel.NewUUID()
	key := redis.DefaultKeyPrefix + orderID.String()

	unlock, err := locker.Lock(ctx, orderID)
	suite.Require().NoError(err)

	ttl, err := suite.client.PTTL(ctx, key).Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, time.Duration(0))
	suite.LessOrEqual(ttl, time.Minute)

	suite.Require().NoError(unlock(ctx))
	suite.Require().NoError(unlock(ctx), "unlock is idempotent")

	exists, err := suite.client.Exists(ctx, key).Result()
	suite.Require().NoError(err)
	suite.Zero(exists)
}

func (suite *OrderLockerIntegrationTestSuite) TestLock_HeldElsewhere_ReturnsOrderLocked() {
	ctx := context.Background()
	holder := redis.NewOrderLocker(suite.client)
	contender := redis.NewOrderLocker(suite.client)
	orderID := kernel.NewUUID()

	unlock, err := holder.Lock(ctx, orderID)
	suite.Require().NoError(err)
	defer func() { _ = unlock(ctx) }()

	waitCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = contender.Lock(waitCtx, orderID)

	suite.Require().ErrorIs(err, ports.ErrOrderLocked)
	suite.Require().ErrorIs(err, context.DeadlineExceeded)

	otherUnlock, err := contender.Lock(ctx, kernel.NewUUID())
	suite.Require().NoError(err, "other orders are not blocked")
	suite.Require().NoError(otherUnlock(ctx))
}

func (suite *OrderLockerIntegrationTestSuite) TestLock_WaitsForRelease() {
	ctx := context.Background()
	locker := redis.NewOrderLocker(suite.client, redis.WithRetryInterval(5*time.Millisecond))
	orderID := kernel.NewUUID()

	unlock, err := locker.Lock(ctx, orderID)
	suite.Require().NoError(err)
	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = unlock(context.Background())
	}()

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	second, err := locker.Lock(waitCtx, orderID)

	suite.Require().NoError(err)
	suite.Require().NoError(second(ctx))
}

func (suite *OrderLockerIntegrationTestSuite) TestUnlock_AfterExpiry_KeepsNewHoldersLock() {
	ctx := context.Background()
	shortLived := redis.NewOrderLocker(suite.client, redis.WithTTL(50*time.Millisecond))
	locker := redis.NewOrderLocker(suite.client, redis.WithTTL(time.Minute))
	orderID := kernel.NewUUID()

	staleUnlock, err := shortLived.Lock(ctx, orderID)
	suite.Require().NoError(err)

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	unlock, err := locker.Lock(waitCtx, orderID)
	suite.Require().NoError(err)

	suite.Require().ErrorIs(staleUnlock(ctx), redis.ErrLockExpired)

	exists, err := suite.client.Exists(ctx, redis.DefaultKeyPrefix+orderID.String()).Result()
	suite.Require().NoError(err)
	suite.Equal(int64(1), exists, "the stale holder must not delete the new lock")
	suite.Require().NoError(unlock(ctx))
}

func (suite *OrderLockerIntegrationTestSuite) TestLock_SerializesAcrossLockers() {
	orderID := kernel.NewUUID()

	var (
		inside     atomic.Int32
		violations atomic.Int32
		wg         sync.WaitGroup
	)
	for range 6 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locker := redis.NewOrderLocker(suite.client, redis.WithRetryInterval(2*time.Millisecond))
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			unlock, err := locker.Lock(ctx, orderID)
			if !suite.NoError(err) {
				return
			}
			if inside.Add(1) > 1 {
				violations.Add(1)
			}
			time.Sleep(5 * time.Millisecond)
			inside.Add(-1)
			suite.NoError(unlock(ctx))
		}()
	}
	wg.Wait()

	suite.Zero(violations.Load())
}

func (suite *OrderLockerIntegrationTestSuite) TestPing() {
	suite.Require().NoError(redis.NewOrderLocker(suite.client).Ping(context.Background()))
}

func TestOrderLockerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderLockerIntegrationTestSuite))
}
