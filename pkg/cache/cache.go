// Package cache owns the authoritative in-memory volunteer list. It mediates
// between the remote registry and a persisted local snapshot, keeping the
// list usually fresh, never silently stale beyond the TTL, and resilient to
// transient network failure.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
	"github.com/aakfoundation/sevak-registry/pkg/store"
)

// State names the cache's position in its lifecycle.
type State string

const (
	StateBootstrapping State = "bootstrapping"
	StateFetching      State = "fetching"
	StateServingCache  State = "serving_cache"
	StateServingFresh  State = "serving_fresh"
	StateEmpty         State = "empty"
)

// ErrClosed is returned by operations on a cache that has been torn down.
var ErrClosed = errors.New("cache is closed")

// ErrNoData is returned when bootstrap cannot produce any list at all:
// no persisted snapshot, remote unreachable, mock fallback disabled.
var ErrNoData = errors.New("no volunteer data available")

const (
	DefaultTTL             = 5 * time.Minute
	DefaultRefreshInterval = 2 * time.Minute
)

// Fetcher is the remote side of the cache.
type Fetcher interface {
	ListVolunteers(ctx context.Context) ([]model.Volunteer, error)
}

// Deleter removes a record on the backend. Local state updates only after
// a successful call.
type Deleter interface {
	DeleteVolunteer(ctx context.Context, id string) error
}

// Options tune the cache. Zero values fall back to defaults.
type Options struct {
	TTL             time.Duration
	RefreshInterval time.Duration

	// MockFallback, when set, is used as the terminal bootstrap source.
	// Development-only; production configs leave it nil.
	MockFallback func() []model.Volunteer

	// Clock overrides time.Now in tests.
	Clock func() time.Time
}

// VolunteerListCache implements the snapshot lifecycle: bootstrap from the
// persisted store, blocking fetch when the store misses or has expired,
// stale-while-revalidate in steady state, last-fetch-wins on concurrent
// attempts.
type VolunteerListCache struct {
	store   store.SnapshotStore
	fetcher Fetcher
	deleter Deleter
	logger  *zap.Logger

	ttl             time.Duration
	refreshInterval time.Duration
	mockFallback    func() []model.Volunteer
	now             func() time.Time

	sched *Scheduler

	mu       sync.Mutex
	snap     model.Snapshot
	hasSnap  bool
	state    State
	degraded bool
	closed   bool

	// fetchSeq is the generation of the most recent fetch attempt. A fetch
	// commits its result only while its generation is still current, so a
	// stale response can never clobber a fresher one.
	fetchSeq uint64
}

// New creates a volunteer list cache. Call Bootstrap before serving reads.
func New(snapStore store.SnapshotStore, fetcher Fetcher, deleter Deleter, logger *zap.Logger, opts Options) *VolunteerListCache {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	c := &VolunteerListCache{
		store:           snapStore,
		fetcher:         fetcher,
		deleter:         deleter,
		logger:          logger,
		ttl:             opts.TTL,
		refreshInterval: opts.RefreshInterval,
		mockFallback:    opts.MockFallback,
		now:             opts.Clock,
		state:           StateBootstrapping,
	}
	return c
}

// Bootstrap resolves the initial list through the ordered sources: persisted
// store, then remote, then the mock generator when enabled. A fresh store hit
// serves immediately with revalidation deferred to the scheduler; an expired
// or missing snapshot makes the remote fetch blocking, falling back to the
// expired snapshot on failure. Returns ErrNoData when every source misses.
func (c *VolunteerListCache) Bootstrap(ctx context.Context) error {
	c.logger.Debug("Bootstrapping volunteer cache",
		zap.Duration("ttl", c.ttl),
		zap.Duration("refresh_interval", c.refreshInterval))

	persisted := &storeSource{store: c.store, logger: c.logger}
	remote := &remoteSource{cache: c}

	snap, storeHit := persisted.Load(ctx)

	now := c.now()
	if storeHit && !snap.Expired(now, c.ttl) {
		c.serveFallback(snap, false)
		c.logger.Info("Serving persisted snapshot",
			zap.String("source", persisted.Name()),
			zap.Int("records", len(snap.Records)),
			zap.Duration("age", snap.Age(now)))
		return nil
	}

	// No fresh snapshot: the remote fetch blocks. A hit has already been
	// committed and persisted by the fetch itself.
	c.mu.Lock()
	c.state = StateFetching
	c.mu.Unlock()

	if _, ok := remote.Load(ctx); ok {
		return nil
	}

	if storeHit {
		// Fall back to the expired snapshot rather than show nothing.
		c.serveFallback(snap, true)
		c.logger.Warn("Initial fetch failed, serving expired snapshot",
			zap.Int("records", len(snap.Records)),
			zap.Duration("age", snap.Age(now)))
		return nil
	}

	if c.mockFallback != nil {
		mock := &mockSource{generate: c.mockFallback, now: c.now}
		mockSnap, _ := mock.Load(ctx)
		c.serveFallback(mockSnap, true)
		c.logger.Warn("Initial fetch failed, serving generated mock data",
			zap.String("source", mock.Name()),
			zap.Int("records", len(mockSnap.Records)))
		return nil
	}

	c.mu.Lock()
	c.state = StateEmpty
	c.mu.Unlock()
	return ErrNoData
}

// serveFallback installs a snapshot that did not come from a committed fetch.
func (c *VolunteerListCache) serveFallback(snap model.Snapshot, degraded bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	c.hasSnap = true
	c.state = StateServingCache
	c.degraded = degraded
}

// StartBackgroundRefresh starts the periodic revalidation scheduler. The
// interval is shorter than the TTL so refreshes generally land before expiry.
func (c *VolunteerListCache) StartBackgroundRefresh(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.sched != nil {
		c.mu.Unlock()
		return
	}
	c.sched = NewScheduler(c.refreshInterval, c.revalidate)
	sched := c.sched
	c.mu.Unlock()

	sched.Start(ctx)
	c.logger.Debug("Background refresh started", zap.Duration("interval", c.refreshInterval))
}

// Wake re-checks staleness immediately, the analog of a tab regaining focus.
// The persisted store is re-read first because another process may have
// written a newer snapshot while this one was idle.
func (c *VolunteerListCache) Wake(ctx context.Context) {
	if snap, err := c.store.Get(ctx); err == nil {
		c.mu.Lock()
		if !c.closed && (!c.hasSnap || snap.FetchedAt.After(c.snap.FetchedAt)) {
			c.snap = snap
			c.hasSnap = true
			c.state = StateServingCache
			c.degraded = false
		}
		c.mu.Unlock()
	}

	c.mu.Lock()
	sched := c.sched
	c.mu.Unlock()
	if sched != nil {
		sched.Wake()
	} else {
		c.revalidate(ctx)
	}
}

// revalidate performs a silent background fetch when the snapshot has
// reached its TTL. Failures are logged and swallowed; the old snapshot
// keeps serving and the next tick retries.
func (c *VolunteerListCache) revalidate(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	stale := !c.hasSnap || c.snap.Expired(c.now(), c.ttl)
	c.mu.Unlock()

	if !stale {
		return
	}

	if err := c.fetch(ctx); err != nil {
		c.logger.Warn("Background refresh failed, keeping current snapshot", zap.Error(err))
	} else {
		c.logger.Debug("Background refresh completed")
	}
}

// Refresh performs an explicit blocking fetch regardless of TTL state. On
// failure the existing snapshot is kept and the error is returned for the
// caller to surface.
func (c *VolunteerListCache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.mu.Unlock()

	if err := c.fetch(ctx); err != nil {
		return fmt.Errorf("failed to refresh volunteer list: %w", err)
	}
	return nil
}

// fetch performs one generation-tracked fetch attempt and commits the result
// if the attempt is still current when the response arrives.
func (c *VolunteerListCache) fetch(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.fetchSeq++
	gen := c.fetchSeq
	c.mu.Unlock()

	records, err := c.fetcher.ListVolunteers(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.fetchSeq {
		// A newer attempt superseded this one; drop the response either way.
		c.logger.Debug("Discarding superseded fetch response", zap.Uint64("generation", gen))
		return nil
	}

	if err != nil {
		return err
	}

	snap := model.Snapshot{Records: records, FetchedAt: c.now()}
	c.snap = snap
	c.hasSnap = true
	c.state = StateServingFresh
	c.degraded = false

	if perr := c.store.Set(ctx, snap); perr != nil {
		// Persist failures degrade the next cold start, not this session.
		c.logger.Warn("Failed to persist snapshot", zap.Error(perr))
	}

	return nil
}

// Delete removes a volunteer on the backend, then mirrors the removal into
// the in-memory list and the persisted snapshot. The snapshot's FetchedAt is
// unchanged so the TTL clock keeps running.
func (c *VolunteerListCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.mu.Unlock()

	if err := c.deleter.DeleteVolunteer(ctx, id); err != nil {
		return fmt.Errorf("failed to delete volunteer %s: %w", id, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.hasSnap {
		return nil
	}

	kept := make([]model.Volunteer, 0, len(c.snap.Records))
	for _, v := range c.snap.Records {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	c.snap = model.Snapshot{Records: kept, FetchedAt: c.snap.FetchedAt}

	if err := c.store.Set(ctx, c.snap); err != nil {
		c.logger.Warn("Failed to persist snapshot after delete", zap.Error(err))
	}

	c.logger.Info("Volunteer removed from cache", zap.String("volunteer_id", id), zap.Int("remaining", len(kept)))
	return nil
}

// ApplyRole mirrors a server-confirmed role change into the cached record.
// Pass an empty role to record a demotion to the base role.
func (c *VolunteerListCache) ApplyRole(ctx context.Context, id string, role model.Role, assignment *model.RoleAssignment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.hasSnap {
		return
	}

	records := make([]model.Volunteer, len(c.snap.Records))
	copy(records, c.snap.Records)
	for i := range records {
		if records[i].ID == id {
			if role == "" {
				records[i].Role = model.RoleYodha
				records[i].RoleAssignment = nil
			} else {
				records[i].Role = role
				records[i].RoleAssignment = assignment
			}
			break
		}
	}
	c.snap = model.Snapshot{Records: records, FetchedAt: c.snap.FetchedAt}

	if err := c.store.Set(ctx, c.snap); err != nil {
		c.logger.Warn("Failed to persist snapshot after role change", zap.Error(err))
	}
}

// List returns the current authoritative records. The returned slice is the
// snapshot's backing array; callers must not mutate it.
func (c *VolunteerListCache) List() []model.Volunteer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.Records
}

// Snapshot returns the current snapshot and whether one is held.
func (c *VolunteerListCache) Snapshot() (model.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap, c.hasSnap
}

// State returns the cache's current lifecycle state.
func (c *VolunteerListCache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Degraded reports whether the cache is serving fallback data after a failed
// blocking fetch.
func (c *VolunteerListCache) Degraded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.degraded
}

// Close stops the scheduler and invalidates every in-flight fetch so nothing
// mutates state after teardown.
func (c *VolunteerListCache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.fetchSeq++
	sched := c.sched
	c.sched = nil
	c.mu.Unlock()

	if sched != nil {
		sched.Stop()
	}
	c.logger.Debug("Volunteer cache closed")
}
