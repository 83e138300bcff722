//go:generate mockgen -source=contracts.go -destination=mocks/mocks.go -package=mocks

package ordertx

import (
	"context"

	"bakery-dispatch/internal/domain"
)

// Repository is the order store as seen from inside one write transaction.
type Repository interface {
	// LockOrder returns the order row locked for update with its items, nil if it does not exist.
	LockOrder(ctx context.Context, id int64) (*domain.Order, error)
	// LockRoster locks every courier row and returns the couriers with freshly computed load.
	LockRoster(ctx context.Context) ([]domain.CourierLoad, error)
	// SetStatus moves the order from one status to another without touching companion fields.
	SetStatus(ctx context.Context, orderID int64, from, to domain.OrderStatus) error
	// SetDelivered moves the order to Delivered and assigns the courier.
	SetDelivered(ctx context.Context, orderID int64, from domain.OrderStatus, courierID int64) error
	// SetCompleted moves a Delivered order to Completed with its proof.
	SetCompleted(ctx context.Context, orderID int64, proof string) error
	// ReplaceCourier swaps the courier of a Delivered order.
	ReplaceCourier(ctx context.Context, orderID, courierID int64) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
