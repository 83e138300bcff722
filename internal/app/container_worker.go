package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"bakery-dispatch/internal/config"
	"bakery-dispatch/internal/jobs"
	"bakery-dispatch/internal/logx"
	"bakery-dispatch/internal/repository"
	"bakery-dispatch/internal/service/lifecycle"
	"bakery-dispatch/internal/service/orders"
	"bakery-dispatch/internal/transport/kafka"
)

type processorIn struct {
	dig.In

	Logger    logx.Logger
	Lifecycle *lifecycle.Service
	Orders    *repository.OrderRepo
	Results   *prometheus.CounterVec `name:"order_events_total"`
}

type auditIn struct {
	dig.In

	Config     *config.Config
	Logger     logx.Logger
	Orders     *repository.OrderRepo
	Violations *prometheus.GaugeVec `name:"order_invariant_violations"`
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(in processorIn) *orders.Processor {
			return orders.NewProcessor(in.Lifecycle, in.Orders, in.Results, in.Logger)
		},
		func(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, p.Handle)
		},
		func(in auditIn) *jobs.AuditJob {
			return jobs.NewAuditJob(in.Orders, in.Violations, in.Config.Audit.Schedule, in.Config.OperationTimeout, in.Logger)
		},
	)
}
