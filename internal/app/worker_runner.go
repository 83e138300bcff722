package app

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"bakery-dispatch/internal/jobs"
	"bakery-dispatch/internal/logx"
	"bakery-dispatch/internal/transport/kafka"
)

// WorkerRunner runs the Kafka consumer and the scheduled audit.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun starts the worker using the provided DI container and blocks until shutdown.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

// workerRun blocks until ctx is done. Without Kafka settings only the audit runs.
func workerRun(
	ctx context.Context,
	pool *pgxpool.Pool,
	logger logx.Logger,
	consumer *kafka.Consumer,
	audit *jobs.AuditJob,
) error {
	defer closeWorker(pool, logger, consumer)

	if audit != nil {
		if err := audit.Start(); err != nil {
			return err
		}
		defer audit.Stop()
	}

	logger.Info("service-orders-worker started", logx.Bool("kafka", consumer != nil))
	if consumer == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	return consumer.Run(ctx)
}

func closeWorker(pool *pgxpool.Pool, logger logx.Logger, consumer *kafka.Consumer) {
	if err := consumer.Close(); err != nil {
		logger.Error("kafka close error", logx.Err(err))
	}
	if pool != nil {
		pool.Close()
	}
	_ = logger.Sync()
}
