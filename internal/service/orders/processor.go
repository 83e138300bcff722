package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"bakery-dispatch/internal/apperr"
	"bakery-dispatch/internal/domain"
	"bakery-dispatch/internal/logx"
)

// Event results reported on the order_events_total metric.
const (
	ResultApplied  = "applied"
	ResultIgnored  = "ignored"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

// Processor applies order events to the order store.
type Processor struct {
	lifecycle StatusChanger
	creator   OrderCreator
	results   *prometheus.CounterVec
	logger    logx.Logger
	factory   *actionFactory
}

// NewProcessor creates a new Processor. results may be nil.
func NewProcessor(lifecycle StatusChanger, creator OrderCreator, results *prometheus.CounterVec, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		lifecycle: lifecycle,
		creator:   creator,
		results:   results,
		logger:    logger,
	}
	p.factory = newActionFactory(p.onPlaced, p.onStatus)
	return p
}

// Handle processes a single event. Events the store rejects for good are logged and
// dropped; any other failure is returned so the message is redelivered.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Status)
	if !ok {
		p.logger.Warn("order event ignored",
			logx.Int64("order_id", e.OrderID),
			logx.String("status", e.Status),
		)
		p.observe(ResultIgnored)
		return nil
	}

	err := fn(ctx, e)
	switch {
	case err == nil:
		p.observe(ResultApplied)
		return nil
	case permanent(err):
		p.logger.Warn("order event rejected",
			logx.Int64("order_id", e.OrderID),
			logx.String("status", e.Status),
			logx.Err(err),
		)
		p.observe(ResultRejected)
		return nil
	default:
		p.observe(ResultFailed)
		return fmt.Errorf("order %d %s: %w", e.OrderID, e.Status, err)
	}
}

func (p *Processor) onPlaced(ctx context.Context, e Event) error {
	if e.Order == nil {
		return fmt.Errorf("%w: placed event without order", apperr.ErrValidation)
	}
	o := *e.Order
	id, err := p.creator.Create(ctx, &o)
	if err != nil {
		return err
	}
	p.logger.Info("order placed",
		logx.Int64("order_id", id),
		logx.Int64("user_id", o.UserID),
		logx.Int("items", len(o.Items)),
	)
	return nil
}

func (p *Processor) onStatus(ctx context.Context, e Event) error {
	_, err := p.lifecycle.ChangeStatus(ctx, domain.StatusChange{
		OrderID:   e.OrderID,
		Status:    e.Status,
		CourierID: e.CourierID,
		Proof:     e.Proof,
		Actor:     domain.System(),
	})
	return err
}

func (p *Processor) observe(result string) {
	if p.results != nil {
		p.results.WithLabelValues(result).Inc()
	}
}

// permanent reports errors that redelivery cannot fix.
func permanent(err error) bool {
	for _, kind := range []error{apperr.ErrInvalid, apperr.ErrNotFound, apperr.ErrConflict, apperr.ErrForbidden} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
