package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_WakeTriggersImmediateTick(t *testing.T) {
	var ticks atomic.Int32
	s := NewScheduler(time.Hour, func(ctx context.Context) {
		ticks.Add(1)
	})
	s.Start(context.Background())
	defer s.Stop()

	s.Wake()

	require.Eventually(t, func() bool {
		return ticks.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_PeriodicTicks(t *testing.T) {
	var ticks atomic.Int32
	s := NewScheduler(10*time.Millisecond, func(ctx context.Context) {
		ticks.Add(1)
	})
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return ticks.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_StopPreventsFurtherTicks(t *testing.T) {
	var ticks atomic.Int32
	s := NewScheduler(5*time.Millisecond, func(ctx context.Context) {
		ticks.Add(1)
	})
	s.Start(context.Background())

	require.Eventually(t, func() bool {
		return ticks.Load() >= 1
	}, time.Second, time.Millisecond)

	s.Stop()
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, ticks.Load(), "tick must never fire after Stop returns")
}

func TestScheduler_StopWithoutStartIsNoOp(t *testing.T) {
	s := NewScheduler(time.Hour, func(ctx context.Context) {})
	s.Stop()
}

func TestScheduler_ContextCancelStopsLoop(t *testing.T) {
	var ticks atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(5*time.Millisecond, func(ctx context.Context) {
		ticks.Add(1)
	})
	s.Start(ctx)

	cancel()
	time.Sleep(20 * time.Millisecond)
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, ticks.Load())
}
