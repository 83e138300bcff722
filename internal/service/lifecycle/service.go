package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"bakery-dispatch/internal/apperr"
	"bakery-dispatch/internal/domain"
	"bakery-dispatch/internal/logx"
	"bakery-dispatch/internal/ports/ordertx"
	"bakery-dispatch/internal/retry"
)

// Service - order status transition engine.
type Service struct {
	txs              ordertx.Runner
	policy           courierPolicy
	retrier          *retry.Retrier
	transitions      *prometheus.CounterVec
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewService creates a new lifecycle Service. The timeout bounds each attempt, not the retry loop.
func NewService(
	txs ordertx.Runner,
	policy courierPolicy,
	retrier *retry.Retrier,
	transitions *prometheus.CounterVec,
	timeout time.Duration,
	logger logx.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if retrier == nil {
		retrier = retry.New(retry.DefaultPolicy, logger, nil)
	}
	return &Service{
		txs:              txs,
		policy:           policy,
		retrier:          retrier,
		transitions:      transitions,
		operationTimeout: timeout,
		logger:           logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

type outcome struct {
	order   domain.Order
	from    domain.OrderStatus
	changed bool
}

// ChangeStatus moves an order to the requested status.
// Requesting the current status is a no-op that returns the order as stored, for every caller.
func (s *Service) ChangeStatus(ctx context.Context, req domain.StatusChange) (domain.Order, error) {
	to, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		return domain.Order{}, fmt.Errorf("%w: %q", apperr.ErrInvalidStatus, req.Status)
	}
	proof := strings.TrimSpace(req.Proof)
	if to == domain.OrderCompleted && proof == "" {
		return domain.Order{}, apperr.ErrMissingProof
	}

	res, err := retry.WithRetry(ctx, s.retrier, func(ctx context.Context) (outcome, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		var out outcome
		err := s.txs.WithTx(ctx, func(tx ordertx.Repository) error {
			o, err := lockOrder(ctx, tx, req.OrderID)
			if err != nil {
				return err
			}
			if err := checkOwner(req.Actor, o); err != nil {
				return err
			}

			out = outcome{order: *o, from: o.Status}
			if o.Status == to {
				return nil
			}
			// couriers only ever complete their delivery
			if req.Actor.Role == domain.RoleCourier && to != domain.OrderCompleted {
				return apperr.ErrActorDenied
			}
			if !domain.CanTransition(o.Status, to) {
				return fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, o.Status, to)
			}

			switch to {
			case domain.OrderDelivered:
				courierID, err := s.resolveCourier(ctx, tx, req.CourierID)
				if err != nil {
					return err
				}
				if err := tx.SetDelivered(ctx, o.ID, o.Status, courierID); err != nil {
					return err
				}
				now := time.Now()
				out.order.CourierID = &courierID
				out.order.CourierAssignedAt = &now
			case domain.OrderCompleted:
				if err := tx.SetCompleted(ctx, o.ID, proof); err != nil {
					return err
				}
				out.order.CompletionProof = &proof
			default:
				if err := tx.SetStatus(ctx, o.ID, o.Status, to); err != nil {
					return err
				}
			}
			out.order.Status = to
			out.changed = true
			return nil
		})
		return out, err
	})
	if err != nil {
		return domain.Order{}, err
	}

	if res.changed {
		s.observe(res.from, res.order)
	}
	return res.order, nil
}

// Reassign puts the courier on the order. A Pending or Process order becomes Delivered,
// a Delivered order gets its courier swapped.
func (s *Service) Reassign(ctx context.Context, orderID, courierID int64, actor domain.Actor) (domain.Order, error) {
	if actor.Role == domain.RoleCourier {
		return domain.Order{}, apperr.ErrActorDenied
	}

	res, err := retry.WithRetry(ctx, s.retrier, func(ctx context.Context) (outcome, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		var out outcome
		err := s.txs.WithTx(ctx, func(tx ordertx.Repository) error {
			o, err := lockOrder(ctx, tx, orderID)
			if err != nil {
				return err
			}
			out = outcome{order: *o, from: o.Status}

			switch o.Status {
			case domain.OrderPending, domain.OrderProcess:
				id, err := s.resolveCourier(ctx, tx, &courierID)
				if err != nil {
					return err
				}
				if err := tx.SetDelivered(ctx, o.ID, o.Status, id); err != nil {
					return err
				}
				out.order.Status = domain.OrderDelivered
			case domain.OrderDelivered:
				if o.CourierID != nil && *o.CourierID == courierID {
					return nil
				}
				id, err := s.resolveCourier(ctx, tx, &courierID)
				if err != nil {
					return err
				}
				if err := tx.ReplaceCourier(ctx, o.ID, id); err != nil {
					return err
				}
			default:
				return fmt.Errorf("%w: cannot reassign %s order", apperr.ErrInvalidTransition, o.Status)
			}
			now := time.Now()
			out.order.CourierID = &courierID
			out.order.CourierAssignedAt = &now
			out.changed = true
			return nil
		})
		return out, err
	})
	if err != nil {
		return domain.Order{}, err
	}

	if res.changed {
		if res.from != res.order.Status {
			s.observe(res.from, res.order)
		} else {
			s.logger.Info("order courier reassigned",
				logx.Int64("order_id", res.order.ID),
				logx.Int64("courier_id", courierID),
			)
		}
	}
	return res.order, nil
}

// resolveCourier validates an explicit courier or asks the policy for one.
func (s *Service) resolveCourier(ctx context.Context, tx ordertx.Repository, requested *int64) (int64, error) {
	if requested == nil {
		return s.policy.Choose(ctx, tx)
	}

	roster, err := tx.LockRoster(ctx)
	if err != nil {
		return 0, fmt.Errorf("load roster: %w", err)
	}
	for _, c := range roster {
		if c.ID != *requested {
			continue
		}
		if c.Busy {
			return 0, fmt.Errorf("%w: courier %d", apperr.ErrCourierBusy, c.ID)
		}
		return c.ID, nil
	}
	return 0, fmt.Errorf("%w: %d", apperr.ErrCourierNotFound, *requested)
}

func (s *Service) observe(from domain.OrderStatus, o domain.Order) {
	if s.transitions != nil {
		s.transitions.WithLabelValues(string(from), string(o.Status)).Inc()
	}
	fields := []logx.Field{
		logx.String("event", "order_status_changed"),
		logx.Int64("order_id", o.ID),
		logx.String("from", string(from)),
		logx.String("to", string(o.Status)),
	}
	if o.CourierID != nil {
		fields = append(fields, logx.Int64("courier_id", *o.CourierID))
	}
	s.logger.Info("order status changed", fields...)
}

func lockOrder(ctx context.Context, tx ordertx.Repository, id int64) (*domain.Order, error) {
	o, err := tx.LockOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: %d", apperr.ErrOrderNotFound, id)
	}
	return o, nil
}

// checkOwner rejects couriers acting on orders that are not assigned to them.
// A courier without an id is trusted, matching the courier app which does not send one.
func checkOwner(actor domain.Actor, o *domain.Order) error {
	if actor.Role != domain.RoleCourier || actor.ID == 0 {
		return nil
	}
	if o.CourierID == nil || *o.CourierID != actor.ID {
		return apperr.ErrNotAssigned
	}
	return nil
}
