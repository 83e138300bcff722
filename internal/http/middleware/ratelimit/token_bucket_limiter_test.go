package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bakery-dispatch/internal/config"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestTokenBucketLimiter_BurstThenBlocksThenRefills(t *testing.T) {
	t.Parallel()

	clk := newFakeClock(time.Unix(0, 0))
	l := NewTokenBucketLimiter(clk, Config{Rate: 1, Burst: 2})

	require.True(t, l.Allow("courier:1"))
	require.True(t, l.Allow("courier:1"))
	require.False(t, l.Allow("courier:1"), "bucket must be empty")

	clk.Add(time.Second)
	require.True(t, l.Allow("courier:1"), "one token refilled")
	require.False(t, l.Allow("courier:1"))

	clk.Add(10 * time.Second)
	require.True(t, l.Allow("courier:1"))
	require.True(t, l.Allow("courier:1"))
	require.False(t, l.Allow("courier:1"), "refill is capped by burst")
}

func TestTokenBucketLimiter_IsPerKey(t *testing.T) {
	t.Parallel()

	l := NewTokenBucketLimiter(newFakeClock(time.Unix(0, 0)), Config{Rate: 1, Burst: 1})

	require.True(t, l.Allow("courier:1"))
	require.False(t, l.Allow("courier:1"))
	require.True(t, l.Allow("courier:2"))
	require.True(t, l.Allow("ip:10.0.0.1"))
	require.Equal(t, 3, l.Len())
}

func TestTokenBucketLimiter_MaxBucketsRejectsNewKeys(t *testing.T) {
	t.Parallel()

	l := NewTokenBucketLimiter(newFakeClock(time.Unix(0, 0)), Config{Rate: 1, Burst: 5, MaxBuckets: 1})

	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("b"))
	require.True(t, l.Allow("a"))
}

func TestTokenBucketLimiter_TTLCleanupRemovesIdleBuckets(t *testing.T) {
	t.Parallel()

	clk := newFakeClock(time.Unix(0, 0))
	l := NewTokenBucketLimiter(clk, Config{Rate: 10, Burst: 1, TTL: 2 * time.Second})

	_ = l.Allow("A")
	_ = l.Allow("B")
	require.Equal(t, 2, l.Len())

	// sweeps run at most once a minute
	clk.Add(59 * time.Second)
	_ = l.Allow("B")
	clk.Add(2 * time.Second)
	_ = l.Allow("B")

	require.NotContains(t, l.buckets, "A")
	require.Contains(t, l.buckets, "B")
}

func TestNewTokenBucketPerWindow_UsesLimitAsBurst(t *testing.T) {
	t.Parallel()

	l := NewTokenBucketPerWindow(newFakeClock(time.Unix(0, 0)), 3, time.Second, 0, 0)

	for i := 1; i <= 3; i++ {
		require.True(t, l.Allow("k"), "allow #%d", i)
	}
	require.False(t, l.Allow("k"))
}

func TestFromSettings(t *testing.T) {
	t.Parallel()

	cfg := FromSettings(config.RateLimit{Enabled: true, Rate: 5, Burst: 7, TTL: time.Minute, MaxBuckets: 9})
	require.Equal(t, Config{Rate: 5, Burst: 7, TTL: time.Minute, MaxBuckets: 9}, cfg)
}
