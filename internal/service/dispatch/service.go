package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"bakery-dispatch/internal/apperr"
	"bakery-dispatch/internal/logx"
	"bakery-dispatch/internal/ports/ordertx"
)

// Assignment outcomes reported by the courier_assignments_total counter.
const (
	OutcomeSelected    = "selected"
	OutcomeNoCourier   = "no_courier"
	OutcomeRosterError = "roster_error"
)

// Service - courier assignment service.
type Service struct {
	txs              ordertx.Runner
	policy           Policy
	outcomes         *prometheus.CounterVec
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates a new dispatch Service.
func NewService(txs ordertx.Runner, outcomes *prometheus.CounterVec, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		txs:              txs,
		outcomes:         outcomes,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Choose locks the roster within tx and applies the policy to it.
func (s *Service) Choose(ctx context.Context, tx ordertx.Repository) (int64, error) {
	roster, err := tx.LockRoster(ctx)
	if err != nil {
		s.observe(OutcomeRosterError)
		return 0, fmt.Errorf("load roster: %w", err)
	}

	id, err := s.policy.Select(roster)
	if err != nil {
		s.observe(OutcomeNoCourier)
		return 0, err
	}
	s.observe(OutcomeSelected)
	return id, nil
}

// AssignCourier returns the courier the policy would assign to the order. Nothing is written.
func (s *Service) AssignCourier(ctx context.Context, orderID int64) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var courierID int64
	err := s.txs.WithTx(ctx, func(tx ordertx.Repository) error {
		o, err := tx.LockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return apperr.ErrOrderNotFound
		}
		courierID, err = s.Choose(ctx, tx)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) && !errors.Is(err, apperr.ErrNoCourierAvailable) {
			s.logger.Error("courier assignment failed",
				logx.Int64("order_id", orderID),
				logx.Err(err),
			)
		}
		return 0, err
	}

	s.logger.Debug("courier selected",
		logx.Int64("order_id", orderID),
		logx.Int64("courier_id", courierID),
	)
	return courierID, nil
}

func (s *Service) observe(outcome string) {
	if s.outcomes != nil {
		s.outcomes.WithLabelValues(outcome).Inc()
	}
}
