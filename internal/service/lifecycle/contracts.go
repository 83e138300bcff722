//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=lifecycle

package lifecycle

import (
	"context"

	"bakery-dispatch/internal/ports/ordertx"
)

// courierPolicy chooses a courier inside an open write transaction.
type courierPolicy interface {
	Choose(ctx context.Context, tx ordertx.Repository) (int64, error)
}
