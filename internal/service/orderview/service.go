package orderview

import (
	"context"
	"fmt"
	"time"

	"bakery-dispatch/internal/apperr"
	"bakery-dispatch/internal/domain"
)

// Service - read side of the order lifecycle.
type Service struct {
	repo             orderRepository
	loc              *time.Location
	operationTimeout time.Duration
}

// NewService creates a new orderview Service. Buckets are labelled in loc.
func NewService(r orderRepository, loc *time.Location, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: r, loc: loc, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func (s *Service) rows(ctx context.Context, f domain.OrderFilter) ([]domain.OrderItemRow, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Rows(ctx, f)
}

func (s *Service) list(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	rows, err := s.rows(ctx, f)
	if err != nil {
		return nil, err
	}
	return Assemble(rows), nil
}

func (s *Service) grouped(ctx context.Context, f domain.OrderFilter) (GroupedOrders, error) {
	rows, err := s.rows(ctx, f)
	if err != nil {
		return nil, err
	}
	return GroupOrders(rows, s.loc), nil
}

var activeFilter = domain.OrderFilter{Exclude: []domain.OrderStatus{domain.OrderCompleted}}

// Active returns every order that is not Completed.
func (s *Service) Active(ctx context.Context) ([]domain.Order, error) {
	return s.list(ctx, activeFilter)
}

// ActiveGrouped returns Active bucketed by date and time.
func (s *Service) ActiveGrouped(ctx context.Context) (GroupedOrders, error) {
	return s.grouped(ctx, activeFilter)
}

// Completed returns the Completed orders with their proofs.
func (s *Service) Completed(ctx context.Context) ([]domain.Order, error) {
	return s.list(ctx, domain.OrderFilter{Statuses: []domain.OrderStatus{domain.OrderCompleted}})
}

// CourierActive returns the courier's in-flight deliveries, grouped.
func (s *Service) CourierActive(ctx context.Context, courierID int64) (GroupedOrders, error) {
	if courierID <= 0 {
		return nil, fmt.Errorf("%w: courier id must be positive", apperr.ErrValidation)
	}
	return s.grouped(ctx, domain.OrderFilter{
		CourierID: &courierID,
		Statuses:  []domain.OrderStatus{domain.OrderDelivered},
	})
}

// CourierHistory returns the courier's completed and canceled orders.
func (s *Service) CourierHistory(ctx context.Context, courierID int64) ([]domain.Order, error) {
	if courierID <= 0 {
		return nil, fmt.Errorf("%w: courier id must be positive", apperr.ErrValidation)
	}
	return s.list(ctx, domain.OrderFilter{
		CourierID: &courierID,
		Statuses:  []domain.OrderStatus{domain.OrderCompleted, domain.OrderCanceled},
	})
}

// CustomerOrders returns every order placed by the user.
func (s *Service) CustomerOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", apperr.ErrValidation)
	}
	return s.list(ctx, domain.OrderFilter{UserID: &userID})
}

// Stats returns the dashboard counters.
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	count, err := s.repo.Count(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	sales, err := s.repo.Sales(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{OrderCount: count, Sales: sales}, nil
}
