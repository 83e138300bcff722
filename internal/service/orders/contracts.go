//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"bakery-dispatch/internal/domain"
)

// StatusChanger applies a status change through the lifecycle engine.
type StatusChanger interface {
	ChangeStatus(ctx context.Context, req domain.StatusChange) (domain.Order, error)
}

// OrderCreator stores orders handed off by checkout.
type OrderCreator interface {
	Create(ctx context.Context, o *domain.Order) (int64, error)
}
