package app

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"bakery-dispatch/internal/logx"
	testlog "bakery-dispatch/internal/testutil"
)

func runnerContainer(ctx context.Context, t *testing.T, rec *testlog.Recorder, main *http.Server) *dig.Container {
	t.Helper()

	c := dig.New()
	require.NoError(t, c.Provide(func() context.Context { return ctx }))
	require.NoError(t, c.Provide(func() logx.Logger { return rec.Logger() }))
	require.NoError(t, c.Provide(func() *pgxpool.Pool { return nil }))
	require.NoError(t, c.Provide(func() *http.Server { return main }))
	return c
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	rec := testlog.New()
	c := runnerContainer(ctx, t, rec, &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()})

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := run(c)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, rec.ByMsg("shutting down service-orders"), 1)
}

func TestRun_ReturnsListenError(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	c := runnerContainer(context.Background(), t, rec, &http.Server{Addr: "127.0.0.1:-1", Handler: http.NewServeMux()})

	err := run(c)
	require.Error(t, err)
	require.Len(t, rec.ByMsg("server stopped unexpectedly"), 1)
}

func TestGracefulShutdown_DoesNotPanic(t *testing.T) {
	t.Parallel()

	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	require.NotPanics(t, func() {
		gracefulShutdown(srv, logx.Nop(), 100*time.Millisecond)
	})
}

func TestRunner_MustRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantMsg   string
		wantPanic bool
	}{
		{name: "clean exit", err: nil},
		{name: "shutdown", err: context.Canceled, wantMsg: "shutdown requested, exiting"},
		{name: "startup timeout", err: context.DeadlineExceeded, wantMsg: "startup aborted: startup timeout exceeded"},
		{name: "failure", err: errors.New("boom"), wantMsg: "run error", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := testlog.New()
			container := dig.New()
			require.NoError(t, container.Provide(func() logx.Logger { return rec.Logger() }))

			r := &Runner{runFn: func(*dig.Container) error { return tt.err }}
			if tt.wantPanic {
				require.Panics(t, func() { r.MustRun(container) })
			} else {
				require.NotPanics(t, func() { r.MustRun(container) })
			}
			if tt.wantMsg != "" {
				require.Len(t, rec.ByMsg(tt.wantMsg), 1)
			}
		})
	}
}

func TestNewRunner_DefaultFields(t *testing.T) {
	t.Parallel()

	require.NotNil(t, NewRunner().runFn)
	require.NotNil(t, NewWorkerRunner().runFn)
}
