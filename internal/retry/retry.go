package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bakery-dispatch/internal/apperr"
	"bakery-dispatch/internal/logx"
)

type counter interface {
	Inc()
}

// Policy is a fixed-delay retry policy.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultPolicy is five attempts one second apart.
var DefaultPolicy = Policy{MaxAttempts: 5, Delay: time.Second}

// Retrier retries operations failing with a transient error.
type Retrier struct {
	policy    Policy
	logger    logx.Logger
	retries   counter
	transient func(error) bool
	sleep     func(context.Context, time.Duration) bool
}

// New creates a Retrier. Non-positive attempts fall back to DefaultPolicy.MaxAttempts.
func New(p Policy, logger logx.Logger, retries counter) *Retrier {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultPolicy.MaxAttempts
	}
	if p.Delay < 0 {
		p.Delay = 0
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Retrier{
		policy:    p,
		logger:    logger,
		retries:   retries,
		transient: IsTransient,
		sleep:     sleepWithContext,
	}
}

// WithClassifier replaces the transient error classifier.
func (r *Retrier) WithClassifier(fn func(error) bool) *Retrier {
	if fn != nil {
		r.transient = fn
	}
	return r
}

// Policy returns the effective policy.
func (r *Retrier) Policy() Policy { return r.policy }

// IsTransient reports whether err is a contention error worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, apperr.ErrTransientWriteConflict)
}

// WithRetry runs op until it succeeds, fails with a non-transient error or the attempts run out.
// Exhaustion yields apperr.ErrRetryExhausted wrapping the last error.
func WithRetry[T any](ctx context.Context, r *Retrier, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		res, err := op(ctx)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if !r.transient(err) {
			return zero, err
		}
		if attempt == r.policy.MaxAttempts {
			break
		}
		if ctx.Err() != nil {
			return zero, fmt.Errorf("%w: %w", ctx.Err(), err)
		}
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn("order write retry",
			logx.Int("attempt", attempt),
			logx.Duration("delay", r.policy.Delay),
			logx.Err(err),
		)
		if !r.sleep(ctx, r.policy.Delay) {
			return zero, fmt.Errorf("%w: %w", ctx.Err(), err)
		}
	}
	r.logger.Error("order write retries exhausted",
		logx.Int("attempts", r.policy.MaxAttempts),
		logx.Err(lastErr),
	)
	return zero, fmt.Errorf("%w after %d attempts: %w", apperr.ErrRetryExhausted, r.policy.MaxAttempts, lastErr)
}

// Do is WithRetry for operations without a result.
func Do(ctx context.Context, r *Retrier, op func(context.Context) error) error {
	_, err := WithRetry(ctx, r, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
