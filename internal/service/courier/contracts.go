package courier

import (
	"context"

	"bakery-dispatch/internal/domain"
)

// courierRepository defines storage operations required by the business layer.
type courierRepository interface {
	Get(ctx context.Context, id int64) (*domain.CourierLoad, error)
	Roster(ctx context.Context) ([]domain.CourierLoad, error)
}
