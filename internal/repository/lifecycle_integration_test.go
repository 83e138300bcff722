//go:build integration

package repository_test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"bakery-dispatch/internal/apperr"
	"bakery-dispatch/internal/domain"
	"bakery-dispatch/internal/ports/ordertx"
	"bakery-dispatch/internal/retry"
	"bakery-dispatch/internal/service/dispatch"
	"bakery-dispatch/internal/service/lifecycle"
)

func (s *StoreSuite) engine() *lifecycle.Service {
	retrier := retry.New(retry.Policy{MaxAttempts: 5, Delay: 10 * time.Millisecond}, nil, nil)
	picker := dispatch.NewService(s.txs, nil, 2*time.Second, nil)
	return lifecycle.NewService(s.txs, picker, retrier, nil, 2*time.Second, nil)
}

type storedOrder struct {
	status    domain.OrderStatus
	courierID *int64
	proof     *string
}

func (s *StoreSuite) stored(id int64) storedOrder {
	var (
		out    storedOrder
		status string
	)
	err := s.pool.QueryRow(context.Background(),
		`SELECT status, id_kurir, bukti FROM orders WHERE id = $1`, id,
	).Scan(&status, &out.courierID, &out.proof)
	s.Require().NoError(err)
	out.status = domain.OrderStatus(status)
	return out
}

// race runs both operations at once and returns their errors.
func race(a, b func() error) (errA, errB error) {
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		<-start
		errA = a()
	}()
	go func() {
		defer wg.Done()
		<-start
		errB = b()
	}()
	close(start)
	wg.Wait()
	return errA, errB
}

func (s *StoreSuite) TestLockOrder_LoadsItems() {
	ctx := context.Background()
	id := s.order(
		domain.OrderItem{ProductID: 1, ProductName: "Roti Tawar", Quantity: 2, UnitPrice: decimal.NewFromInt(15000)},
		domain.OrderItem{ProductID: 2, ProductName: "Donat", Quantity: 1, UnitPrice: decimal.NewFromInt(8000)},
	)

	s.Require().NoError(s.txs.WithTx(ctx, func(tx ordertx.Repository) error {
		o, err := tx.LockOrder(ctx, id)
		s.Require().NoError(err)
		s.Require().NotNil(o)
		s.Require().Len(o.Items, 2)
		s.Equal("Roti Tawar", o.Items[0].ProductName)
		s.Equal("Donat", o.Items[1].ProductName)
		s.True(decimal.NewFromInt(8000).Equal(o.Items[1].UnitPrice))
		return nil
	}))
}

func (s *StoreSuite) TestEngineResultsCarryItems() {
	ctx := context.Background()
	eng := s.engine()
	c := s.courier("andi")
	id := s.order()

	o, err := eng.ChangeStatus(ctx, domain.StatusChange{OrderID: id, Status: "process", Actor: domain.Admin()})
	s.Require().NoError(err)
	s.Equal(domain.OrderProcess, o.Status)
	s.Require().Len(o.Items, 1)
	s.Equal("Roti Tawar", o.Items[0].ProductName)

	o, err = eng.Reassign(ctx, id, c, domain.Admin())
	s.Require().NoError(err)
	s.Equal(domain.OrderDelivered, o.Status)
	s.Require().Len(o.Items, 1)

	o, err = eng.ChangeStatus(ctx, domain.StatusChange{OrderID: id, Status: "Completed", Proof: "p.jpg", Actor: domain.CourierActor(c)})
	s.Require().NoError(err)
	s.Equal(domain.OrderCompleted, o.Status)
	s.Require().Len(o.Items, 1)
}

func (s *StoreSuite) TestConcurrentDeliverAndCancel_OneWins() {
	ctx := context.Background()
	eng := s.engine()

	for round := 0; round < 5; round++ {
		c := s.courier("kurir" + string(rune('a'+round)))
		id := s.order()

		deliverErr, cancelErr := race(
			func() error {
				_, err := eng.ChangeStatus(ctx, domain.StatusChange{
					OrderID: id, Status: "Delivered", CourierID: &c, Actor: domain.Admin(),
				})
				return err
			},
			func() error {
				_, err := eng.ChangeStatus(ctx, domain.StatusChange{
					OrderID: id, Status: "Canceled", Actor: domain.Admin(),
				})
				return err
			},
		)

		got := s.stored(id)
		switch {
		case deliverErr == nil:
			s.ErrorIs(cancelErr, apperr.ErrInvalidTransition, "round %d", round)
			s.Equal(domain.OrderDelivered, got.status)
			s.Require().NotNil(got.courierID)
			s.Equal(c, *got.courierID)
		case cancelErr == nil:
			s.ErrorIs(deliverErr, apperr.ErrInvalidTransition, "round %d", round)
			s.Equal(domain.OrderCanceled, got.status)
			s.Nil(got.courierID)
		default:
			s.Failf("no transition won", "round %d: deliver=%v cancel=%v", round, deliverErr, cancelErr)
		}
		s.Nil(got.proof)
	}

	rep, err := s.orders.Audit(ctx)
	s.Require().NoError(err)
	s.Equal(domain.AuditReport{}, rep)
}

func (s *StoreSuite) TestConcurrentCompleteAndReassign_StaysConsistent() {
	ctx := context.Background()
	eng := s.engine()

	for round := 0; round < 5; round++ {
		first := s.courier("first" + string(rune('a'+round)))
		second := s.courier("second" + string(rune('a'+round)))
		id := s.order()
		s.deliver(id, first)

		completeErr, reassignErr := race(
			func() error {
				_, err := eng.ChangeStatus(ctx, domain.StatusChange{
					OrderID: id, Status: "Completed", Proof: "done.jpg", Actor: domain.Admin(),
				})
				return err
			},
			func() error {
				_, err := eng.Reassign(ctx, id, second, domain.Admin())
				return err
			},
		)

		s.Require().NoError(completeErr, "round %d", round)
		got := s.stored(id)
		s.Equal(domain.OrderCompleted, got.status)
		s.Require().NotNil(got.proof)
		s.Equal("done.jpg", *got.proof)
		s.Require().NotNil(got.courierID)
		if reassignErr == nil {
			s.Equal(second, *got.courierID)
		} else {
			s.ErrorIs(reassignErr, apperr.ErrInvalidTransition, "round %d", round)
			s.Equal(first, *got.courierID)
		}
	}

	rep, err := s.orders.Audit(ctx)
	s.Require().NoError(err)
	s.Equal(domain.AuditReport{}, rep)
}
