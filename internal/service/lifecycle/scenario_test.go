package lifecycle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bakery-dispatch/internal/apperr"
	"bakery-dispatch/internal/domain"
	"bakery-dispatch/internal/ports/ordertx"
	"bakery-dispatch/internal/retry"
	"bakery-dispatch/internal/service/dispatch"
)

// memStore is a serialized in-memory order store; a failed transaction restores the snapshot.
type memStore struct {
	mu       sync.Mutex
	orders   map[int64]domain.Order
	couriers []domain.Courier
	clock    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		orders: make(map[int64]domain.Order),
		clock:  time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) WithTx(_ context.Context, fn func(tx ordertx.Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(map[int64]domain.Order, len(m.orders))
	for k, v := range m.orders {
		snapshot[k] = v
	}
	if err := fn(m); err != nil {
		m.orders = snapshot
		return err
	}
	return nil
}

func (m *memStore) LockOrder(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *memStore) LockRoster(context.Context) ([]domain.CourierLoad, error) {
	out := make([]domain.CourierLoad, 0, len(m.couriers))
	for _, c := range m.couriers {
		load := domain.CourierLoad{Courier: c}
		var last time.Time
		for _, o := range m.orders {
			if o.CourierID == nil || *o.CourierID != c.ID {
				continue
			}
			load.Assignments++
			if o.Status == domain.OrderDelivered {
				load.Busy = true
			}
			if o.CourierAssignedAt != nil && !o.CourierAssignedAt.Before(last) {
				last = *o.CourierAssignedAt
				load.LastStatus = o.Status
			}
		}
		out = append(out, load)
	}
	return out, nil
}

func (m *memStore) SetStatus(_ context.Context, id int64, from, to domain.OrderStatus) error {
	o := m.orders[id]
	if o.Status != from {
		return apperr.ErrTransientWriteConflict
	}
	o.Status = to
	m.orders[id] = o
	return nil
}

func (m *memStore) SetDelivered(_ context.Context, id int64, from domain.OrderStatus, courierID int64) error {
	o := m.orders[id]
	if o.Status != from {
		return apperr.ErrTransientWriteConflict
	}
	m.clock = m.clock.Add(time.Minute)
	at := m.clock
	o.Status = domain.OrderDelivered
	o.CourierID = &courierID
	o.CourierAssignedAt = &at
	m.orders[id] = o
	return nil
}

func (m *memStore) SetCompleted(_ context.Context, id int64, proof string) error {
	o := m.orders[id]
	if o.Status != domain.OrderDelivered {
		return apperr.ErrTransientWriteConflict
	}
	o.Status = domain.OrderCompleted
	o.CompletionProof = &proof
	m.orders[id] = o
	return nil
}

func (m *memStore) ReplaceCourier(_ context.Context, id, courierID int64) error {
	o := m.orders[id]
	o.CourierID = &courierID
	m.orders[id] = o
	return nil
}

func TestScenario_AssignDeliverComplete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemStore()
	store.couriers = []domain.Courier{{ID: 1, Name: "C1"}, {ID: 2, Name: "C2"}, {ID: 3, Name: "C3"}}
	c3 := int64(3)
	busySince := store.clock
	store.orders[100] = domain.Order{ID: 100, Status: domain.OrderDelivered, CourierID: &c3, CourierAssignedAt: &busySince}
	store.orders[1] = domain.Order{ID: 1, Status: domain.OrderPending}

	picker := dispatch.NewService(store, nil, 0, nil)
	svc := NewService(store, picker, retry.New(retry.Policy{MaxAttempts: 5}, nil, nil), nil, 0, nil)

	chosen, err := picker.AssignCourier(ctx, 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, chosen)

	o, err := svc.ChangeStatus(ctx, domain.StatusChange{OrderID: 1, Status: "Delivered", CourierID: &chosen, Actor: domain.Admin()})
	require.NoError(t, err)
	require.Equal(t, domain.OrderDelivered, o.Status)
	require.EqualValues(t, 1, *store.orders[1].CourierID)

	_, err = svc.ChangeStatus(ctx, domain.StatusChange{OrderID: 1, Status: "Completed", Actor: domain.Admin()})
	require.ErrorIs(t, err, apperr.ErrMissingProof)

	o, err = svc.ChangeStatus(ctx, domain.StatusChange{OrderID: 1, Status: "Completed", Proof: "img123.jpg", Actor: domain.CourierActor(1)})
	require.NoError(t, err)
	require.Equal(t, domain.OrderCompleted, o.Status)
	require.Equal(t, "img123.jpg", *store.orders[1].CompletionProof)

	// C1 just completed, C2 was never assigned: the idle courier wins next.
	store.orders[2] = domain.Order{ID: 2, Status: domain.OrderProcess}
	o, err = svc.ChangeStatus(ctx, domain.StatusChange{OrderID: 2, Status: "Delivered", Actor: domain.System()})
	require.NoError(t, err)
	require.EqualValues(t, 2, *o.CourierID)

	// everyone is either busy or exhausted: C1 is the exhausted fallback
	store.orders[3] = domain.Order{ID: 3, Status: domain.OrderPending}
	o, err = svc.ChangeStatus(ctx, domain.StatusChange{OrderID: 3, Status: "Delivered", Actor: domain.System()})
	require.NoError(t, err)
	require.EqualValues(t, 1, *o.CourierID)

	store.orders[4] = domain.Order{ID: 4, Status: domain.OrderPending}
	_, err = svc.ChangeStatus(ctx, domain.StatusChange{OrderID: 4, Status: "Delivered", Actor: domain.System()})
	require.ErrorIs(t, err, apperr.ErrNoCourierAvailable)
	require.Equal(t, domain.OrderPending, store.orders[4].Status)
}

func TestScenario_ConcurrentDeliveriesNeverShareCourier(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemStore()
	store.couriers = []domain.Courier{{ID: 1}, {ID: 2}, {ID: 3}}
	for id := int64(1); id <= 6; id++ {
		store.orders[id] = domain.Order{ID: id, Status: domain.OrderPending}
	}

	svc := NewService(store, dispatch.NewService(store, nil, 0, nil), retry.New(retry.Policy{MaxAttempts: 5}, nil, nil), nil, 0, nil)

	var wg sync.WaitGroup
	errs := make([]error, 6)
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ChangeStatus(ctx, domain.StatusChange{OrderID: int64(i + 1), Status: "Delivered", Actor: domain.System()})
		}(i)
	}
	wg.Wait()

	delivered := map[int64]int64{}
	failed := 0
	for i, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, apperr.ErrNoCourierAvailable)
			failed++
			continue
		}
		o := store.orders[int64(i+1)]
		require.Equal(t, domain.OrderDelivered, o.Status)
		delivered[*o.CourierID]++
	}
	require.Equal(t, 3, failed)
	require.Len(t, delivered, 3)
	for courier, n := range delivered {
		require.EqualValues(t, 1, n, "courier %d", courier)
	}
}
