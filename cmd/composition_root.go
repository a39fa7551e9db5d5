package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/adapters/in/http"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/adapters/out/memory"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/adapters/out/postgres"
	redisadapter "github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/adapters/out/redis"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/application/usecases/commands"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/application/usecases/queries"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/calendar"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/model/rules"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/domain/services"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/ports"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/jobs"
	"github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived collaborators of the service and builds
// use case handlers on top of them.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	registry *prometheus.Registry
	metrics  *metrics.Metrics

	uowFactory ports.UnitOfWorkFactory
	locker     ports.OrderLocker

	tracker   *services.FulfillmentTracker
	evaluator *services.PromiseEvaluator

	healthChecks map[string]httpin.HealthCheck
	closers      []func() error
}

// NewCompositionRoot opens the store and the lock backend selected by
// STORE_DRIVER and LOCK_DRIVER. Close releases them.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	defaultCutoff, err := calendar.ParseClockTime(cfg.DefaultDivisionCutoff)
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_DIVISION_CUTOFF: %w", err)
	}
	defaultRule, err := rules.NewDivisionRule(defaultCutoff, true, calendar.MondayToFriday, false)
	if err != nil {
		return nil, fmt.Errorf("default division rule: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c := &CompositionRoot{
		config:   cfg,
		logger:   logger,
		registry: registry,
		metrics:  metrics.New(registry),
		tracker: services.NewFulfillmentTracker(
			services.WithSkidWeightThreshold(cfg.SkidWeightThreshold),
		),
		evaluator: services.NewPromiseEvaluator(
			services.WithCapacityEstimator(services.NewProcessingTimeEstimator()),
			services.WithDefaultDivisionRule(defaultRule),
		),
		healthChecks: map[string]httpin.HealthCheck{},
	}

	if err = c.openStore(ctx); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	if err = c.openLocker(ctx); err != nil {
		return nil, errors.Join(err, c.Close())
	}

	return c, nil
}

func (c *CompositionRoot) openStore(ctx context.Context) error {
	if c.config.StoreDriver == StoreDriverMemory {
		c.uowFactory = memory.NewStore()
		c.logger.InfoContext(ctx, "Using in-memory store")
		return nil
	}

	gormDB, err := gorm.Open(postgresdriver.Open(c.config.PostgresDSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	c.closers = append(c.closers, sqlDB.Close)

	if err = postgres.Migrate(gormDB.WithContext(ctx)); err != nil {
		return err
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	c.healthChecks["postgres"] = sqlDB.PingContext
	c.logger.InfoContext(ctx, "Using postgres store", "host", c.config.DBHost, "database", c.config.DBName)
	return nil
}

func (c *CompositionRoot) openLocker(ctx context.Context) error {
	if c.config.LockDriver == LockDriverMemory {
		c.locker = memory.NewOrderLocker()
		return nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     c.config.RedisAddr,
		Password: c.config.RedisPassword,
		DB:       c.config.RedisDB,
	})
	c.closers = append(c.closers, client.Close)

	locker := redisadapter.NewOrderLocker(client, redisadapter.WithTTL(c.config.LockTTL))
	if err := locker.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	c.locker = locker
	c.healthChecks["redis"] = locker.Ping
	c.logger.InfoContext(ctx, "Using redis order locks", "addr", c.config.RedisAddr, "ttl", c.config.LockTTL)
	return nil
}

// Close releases the store and lock backend connections.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateSplitShipmentCommandHandler() commands.CreateSplitShipmentCommandHandler {
	var f commands.SplitUoWFactory = FuncSplitUoWFactory(func() commands.SplitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateSplitShipmentCommandHandler(f, c.locker, c.tracker, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateUpdateSplitShipmentStatusCommandHandler() commands.UpdateSplitShipmentStatusCommandHandler {
	var f commands.SplitUoWFactory = FuncSplitUoWFactory(func() commands.SplitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateSplitShipmentStatusCommandHandler(f, c.tracker, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateSaveCutoffRuleSetCommandHandler() commands.SaveCutoffRuleSetCommandHandler {
	var f commands.RulesUoWFactory = FuncRulesUoWFactory(func() commands.RulesUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSaveCutoffRuleSetCommandHandler(f)
}

func (c *CompositionRoot) CreateEvaluatePromiseQueryHandler() queries.EvaluatePromiseQueryHandler {
	return queries.NewEvaluatePromiseQueryHandler(c.uowFactory, c.evaluator, c.metrics)
}

func (c *CompositionRoot) CreateValidateSplitQueryHandler() queries.ValidateSplitQueryHandler {
	return queries.NewValidateSplitQueryHandler(c.uowFactory, c.tracker)
}

func (c *CompositionRoot) CreateGetOrderFulfillmentQueryHandler() queries.GetOrderFulfillmentQueryHandler {
	return queries.NewGetOrderFulfillmentQueryHandler(c.uowFactory, c.tracker)
}

func (c *CompositionRoot) CreateFindIntegrityIssuesQueryHandler() queries.FindIntegrityIssuesQueryHandler {
	return queries.NewFindIntegrityIssuesQueryHandler(c.uowFactory)
}

// CreateRouter builds the echo router serving the API, /health, /metrics
// and /swagger.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:               c.CreateCreateOrderCommandHandler(),
		CreateSplitShipment:       c.CreateCreateSplitShipmentCommandHandler(),
		UpdateSplitShipmentStatus: c.CreateUpdateSplitShipmentStatusCommandHandler(),
		SaveCutoffRuleSet:         c.CreateSaveCutoffRuleSetCommandHandler(),
		EvaluatePromise:           c.CreateEvaluatePromiseQueryHandler(),
		ValidateSplit:             c.CreateValidateSplitQueryHandler(),
		GetOrderFulfillment:       c.CreateGetOrderFulfillmentQueryHandler(),
		FindIntegrityIssues:       c.CreateFindIntegrityIssuesQueryHandler(),
	})

	return httpin.NewRouter(server, httpin.RouterConfig{
		Logger:       c.logger,
		Gatherer:     c.registry,
		HealthChecks: c.healthChecks,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := c.CreateFindIntegrityIssuesQueryHandler()
	scan := jobs.NewIntegrityScanJob(handler, c.config.IntegrityScanSchedule, c.metrics, c.logger)
	return jobs.NewJobManager(scan)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSplitUoWFactory func() commands.SplitUoW

func (f FuncSplitUoWFactory) Create() commands.SplitUoW {
	return f()
}

type FuncRulesUoWFactory func() commands.RulesUoW

func (f FuncRulesUoWFactory) Create() commands.RulesUoW {
	return f()
}
