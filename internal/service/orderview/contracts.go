package orderview

import (
	"context"

	"github.com/shopspring/decimal"

	"bakery-dispatch/internal/domain"
)

type orderRepository interface {
	Rows(ctx context.Context, f domain.OrderFilter) ([]domain.OrderItemRow, error)
	Count(ctx context.Context) (int64, error)
	Sales(ctx context.Context) (decimal.Decimal, error)
}
