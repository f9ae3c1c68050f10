package cache

import (
	"context"
	"sync"
	"time"
)

// Scheduler drives periodic revalidation plus on-demand wake-ups. It replaces
// ambient timers and event listeners with an explicitly owned start/stop
// lifecycle so teardown is deterministic.
type Scheduler struct {
	interval time.Duration
	tick     func(context.Context)

	mu      sync.Mutex
	wake    chan struct{}
	stop    chan struct{}
	done    chan struct{}
	running bool
}

// NewScheduler creates a scheduler that calls tick every interval and on
// each Wake. It does nothing until Start is called.
func NewScheduler(interval time.Duration, tick func(context.Context)) *Scheduler {
	return &Scheduler{
		interval: interval,
		tick:     tick,
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the scheduling loop. Starting twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		case <-s.wake:
			s.tick(ctx)
		}
	}
}

// Wake requests an immediate tick. Coalesces when one is already pending.
func (s *Scheduler) Wake() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Stop halts the loop and waits for any in-progress tick to finish. After
// Stop returns, tick is never called again. Stopping twice is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stop)
	<-s.done
}
