// Package jobs holds the worker's scheduled tasks.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"bakery-dispatch/internal/domain"
	"bakery-dispatch/internal/logx"
)

// Invariant labels of the order_invariant_violations gauge.
const (
	InvariantSingleDelivery = "courier_single_delivery"
	InvariantProof          = "proof_iff_completed"
)

type auditor interface {
	Audit(ctx context.Context) (domain.AuditReport, error)
}

// AuditJob periodically counts rows that break the lifecycle invariants.
type AuditJob struct {
	repo     auditor
	gauges   *prometheus.GaugeVec
	cron     *cron.Cron
	schedule string
	timeout  time.Duration
	logger   logx.Logger
}

// NewAuditJob creates the job. schedule is a robfig/cron spec such as "@every 1m".
func NewAuditJob(repo auditor, gauges *prometheus.GaugeVec, schedule string, timeout time.Duration, logger logx.Logger) *AuditJob {
	if logger == nil {
		logger = logx.Nop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AuditJob{
		repo:     repo,
		gauges:   gauges,
		cron:     cron.New(),
		schedule: schedule,
		timeout:  timeout,
		logger:   logger.With(logx.String("component", "audit_job")),
	}
}

// Start schedules the audit.
func (j *AuditJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		_ = j.RunOnce(context.Background())
	}); err != nil {
		return fmt.Errorf("schedule audit %q: %w", j.schedule, err)
	}
	j.cron.Start()
	j.logger.Info("audit job started", logx.String("schedule", j.schedule))
	return nil
}

// Stop stops scheduling and waits for a running audit to finish.
func (j *AuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("audit job stopped")
}

// RunOnce runs a single audit and publishes the counts.
func (j *AuditJob) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	rep, err := j.repo.Audit(ctx)
	if err != nil {
		j.logger.Error("order audit failed", logx.Err(err))
		return err
	}

	if j.gauges != nil {
		j.gauges.WithLabelValues(InvariantSingleDelivery).Set(float64(rep.CouriersOverloaded))
		j.gauges.WithLabelValues(InvariantProof).Set(float64(rep.ProofMismatches))
	}
	if rep.CouriersOverloaded > 0 || rep.ProofMismatches > 0 {
		j.logger.Warn("order invariants violated",
			logx.Int64("couriers_overloaded", rep.CouriersOverloaded),
			logx.Int64("proof_mismatches", rep.ProofMismatches),
		)
	}
	return nil
}
