package courier

import (
	"context"
	"fmt"
	"time"

	"bakery-dispatch/internal/apperr"
	"bakery-dispatch/internal/domain"
)

// Service serves the courier roster with derived availability.
type Service struct {
	repo             courierRepository
	operationTimeout time.Duration
}

// NewService creates and configures a courier Service.
func NewService(r courierRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Get retrieves a courier by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.CourierLoad, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: courier id must be positive", apperr.ErrValidation)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %d", apperr.ErrCourierNotFound, id)
	}
	return c, nil
}

// List returns every courier ordered by id.
func (s *Service) List(ctx context.Context) ([]domain.CourierLoad, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Roster(ctx)
}
