package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"bakery-dispatch/internal/apperr"
	"bakery-dispatch/internal/domain"
	"bakery-dispatch/internal/metrics"
	"bakery-dispatch/internal/ports/ordertx"
	"bakery-dispatch/internal/ports/ordertx/mocks"
	"bakery-dispatch/internal/service/dispatch"
	testlog "bakery-dispatch/internal/testutil"
)

func newCtrl(t *testing.T) *gomock.Controller {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return ctrl
}

func runTx(tx ordertx.Repository) func(context.Context, func(ordertx.Repository) error) error {
	return func(_ context.Context, fn func(ordertx.Repository) error) error {
		return fn(tx)
	}
}

func TestService_AssignCourier_PrefersIdleLowestID(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	runner := mocks.NewMockRunner(ctrl)
	tx := mocks.NewMockRepository(ctrl)
	outcomes := metrics.NewCourierAssignmentsTotal()

	runner.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx(tx))
	tx.EXPECT().LockOrder(gomock.Any(), int64(1)).Return(&domain.Order{ID: 1, Status: domain.OrderPending}, nil)
	tx.EXPECT().LockRoster(gomock.Any()).Return([]domain.CourierLoad{
		{Courier: domain.Courier{ID: 1}},
		{Courier: domain.Courier{ID: 2}},
		{Courier: domain.Courier{ID: 3}, Busy: true, Assignments: 1, LastStatus: domain.OrderDelivered},
	}, nil)

	svc := dispatch.NewService(runner, outcomes, 0, testlog.New().Logger())

	got, err := svc.AssignCourier(context.Background(), 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, got)
	require.InDelta(t, 1, testutil.ToFloat64(outcomes.WithLabelValues(dispatch.OutcomeSelected)), 0)
}

func TestService_AssignCourier_OrderNotFound(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	runner := mocks.NewMockRunner(ctrl)
	tx := mocks.NewMockRepository(ctrl)

	runner.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx(tx))
	tx.EXPECT().LockOrder(gomock.Any(), int64(9)).Return(nil, nil)

	rec := testlog.New()
	svc := dispatch.NewService(runner, nil, 0, rec.Logger())

	_, err := svc.AssignCourier(context.Background(), 9)
	require.ErrorIs(t, err, apperr.ErrOrderNotFound)
	require.Empty(t, rec.ByMsg("courier assignment failed"))
}

func TestService_AssignCourier_AllBusy(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	runner := mocks.NewMockRunner(ctrl)
	tx := mocks.NewMockRepository(ctrl)
	outcomes := metrics.NewCourierAssignmentsTotal()

	runner.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx(tx))
	tx.EXPECT().LockOrder(gomock.Any(), int64(1)).Return(&domain.Order{ID: 1}, nil)
	tx.EXPECT().LockRoster(gomock.Any()).Return([]domain.CourierLoad{
		{Courier: domain.Courier{ID: 1}, Busy: true},
	}, nil)

	svc := dispatch.NewService(runner, outcomes, 0, nil)

	_, err := svc.AssignCourier(context.Background(), 1)
	require.ErrorIs(t, err, apperr.ErrNoCourierAvailable)
	require.InDelta(t, 1, testutil.ToFloat64(outcomes.WithLabelValues(dispatch.OutcomeNoCourier)), 0)
}

func TestService_AssignCourier_RosterError(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	runner := mocks.NewMockRunner(ctrl)
	tx := mocks.NewMockRepository(ctrl)
	wantErr := errors.New("db down")

	runner.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx(tx))
	tx.EXPECT().LockOrder(gomock.Any(), int64(1)).Return(&domain.Order{ID: 1}, nil)
	tx.EXPECT().LockRoster(gomock.Any()).Return(nil, wantErr)

	rec := testlog.New()
	svc := dispatch.NewService(runner, nil, 0, rec.Logger())

	_, err := svc.AssignCourier(context.Background(), 1)
	require.ErrorIs(t, err, wantErr)
	require.Len(t, rec.ByMsg("courier assignment failed"), 1)
}

func TestService_AssignCourier_UsesOperationTimeout(t *testing.T) {
	t.Parallel()

	ctrl := newCtrl(t)
	runner := mocks.NewMockRunner(ctrl)
	wantErr := errors.New("stopped")

	runner.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ func(ordertx.Repository) error) error {
			_, ok := ctx.Deadline()
			require.True(t, ok, "expected context with deadline")
			return wantErr
		})

	svc := dispatch.NewService(runner, nil, 0, nil)
	_, err := svc.AssignCourier(context.Background(), 1)
	require.ErrorIs(t, err, wantErr)
}
