package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"bakery-dispatch/internal/config"
	"bakery-dispatch/internal/http/handlers"
	obs "bakery-dispatch/internal/http/middleware"
	"bakery-dispatch/internal/http/middleware/ratelimit"
	"bakery-dispatch/internal/http/pprofserver"
	"bakery-dispatch/internal/http/router"
	"bakery-dispatch/internal/logx"
	"bakery-dispatch/internal/repository"
	"bakery-dispatch/internal/retry"
	"bakery-dispatch/internal/service/courier"
	"bakery-dispatch/internal/service/dispatch"
	"bakery-dispatch/internal/service/lifecycle"
	"bakery-dispatch/internal/service/orderview"
	"bakery-dispatch/internal/storage/proofs"
)

const (
	dbConnectAttempts = 10
	dbConnectDelay    = time.Second
)

type dbConnectFunc func(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect dbConnectFunc
	migrate   func(dsn string) (bool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		migrate:   repository.Migrate,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithMigrate sets the schema migration function
func (b *ContainerBuilder) WithMigrate(fn func(dsn string) (bool, error)) *ContainerBuilder {
	if fn != nil {
		b.migrate = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the HTTP service container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx, registerHTTP)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the worker container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.build(ctx, registerWorker)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context, surface func(*dig.Container) error) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect, b.migrate); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := surface(container); err != nil {
		return nil, fmt.Errorf("surface: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns the HTTP service container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds and returns the worker container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
		func(cfg *config.Config) *time.Location { return cfg.Location() },
		newRegistry,
		newCollectors,
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc, migrate func(string) (bool, error)) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, logger, cfg.DB.DSN(), dbConnectAttempts, dbConnectDelay)
		if err != nil {
			return nil, err
		}
		applied, err := migrate(cfg.DB.DSN())
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("schema ready", logx.Bool("migrated", applied))
		return pool, nil
	}
	return provideAll(container, providerDB)
}

type lifecycleIn struct {
	dig.In

	Config      *config.Config
	Logger      logx.Logger
	Txs         *repository.TxRunner
	Dispatch    *dispatch.Service
	Retrier     *retry.Retrier
	Transitions *prometheus.CounterVec `name:"order_status_transitions_total"`
}

type dispatchIn struct {
	dig.In

	Config   *config.Config
	Logger   logx.Logger
	Txs      *repository.TxRunner
	Outcomes *prometheus.CounterVec `name:"courier_assignments_total"`
}

type retrierIn struct {
	dig.In

	Config  *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"order_write_retries_total"`
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewCourierRepo,
		repository.NewOrderRepo,
		func(pool *pgxpool.Pool, cfg *config.Config) *repository.TxRunner {
			return repository.NewTxRunner(pool, cfg.DB.LockTimeout)
		},
		func(in retrierIn) *retry.Retrier {
			return retry.New(retry.Policy{
				MaxAttempts: in.Config.Retry.MaxAttempts,
				Delay:       in.Config.Retry.Delay,
			}, in.Logger, in.Retries)
		},
		func(in dispatchIn) *dispatch.Service {
			return dispatch.NewService(in.Txs, in.Outcomes, in.Config.OperationTimeout, in.Logger)
		},
		func(in lifecycleIn) *lifecycle.Service {
			return lifecycle.NewService(in.Txs, in.Dispatch, in.Retrier, in.Transitions, in.Config.OperationTimeout, in.Logger)
		},
		func(repo *repository.OrderRepo, loc *time.Location, cfg *config.Config) *orderview.Service {
			return orderview.NewService(repo, loc, cfg.OperationTimeout)
		},
		func(repo *repository.CourierRepo, cfg *config.Config) *courier.Service {
			return courier.NewService(repo, cfg.OperationTimeout)
		},
	)
}

type routerIn struct {
	dig.In

	Logger    logx.Logger
	Base      *handlers.Handlers
	Orders    *handlers.OrderHandler
	Couriers  *handlers.CourierHandler
	RateLimit *ratelimit.Middleware
	Metrics   obs.HTTPMetrics
	Registry  *prometheus.Registry
}

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		func(cfg *config.Config) (*proofs.LocalStore, error) {
			return proofs.NewLocalStore(cfg.Uploads.Dir)
		},
		func(
			cfg *config.Config,
			logger logx.Logger,
			views *orderview.Service,
			lc *lifecycle.Service,
			picker *dispatch.Service,
			store *proofs.LocalStore,
		) *handlers.OrderHandler {
			return handlers.NewOrderHandler(logger, views, lc, picker, store, cfg.Uploads.MaxBytes)
		},
		func(logger logx.Logger, couriers *courier.Service, views *orderview.Service) *handlers.CourierHandler {
			return handlers.NewCourierHandler(logger, couriers, views)
		},
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		func(in routerIn) http.Handler {
			return router.New(router.Deps{
				Base:      in.Base,
				Orders:    in.Orders,
				Couriers:  in.Couriers,
				RateLimit: in.RateLimit,
				Metrics:   in.Metrics,
				Gatherer:  in.Registry,
				Logger:    in.Logger,
			})
		},
		serverProvider,
		func(cfg *config.Config) pprofOut {
			return pprofOut{Server: pprofserver.New(cfg.Pprof)}
		},
	)
}
