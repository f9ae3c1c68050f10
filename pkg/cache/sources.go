package cache

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
	"github.com/aakfoundation/sevak-registry/pkg/store"
)

// Source yields a candidate snapshot during bootstrap. Sources are tried in
// a fixed priority order and return a definite hit or miss; there is no
// implicit fallthrough.
type Source interface {
	Name() string
	Load(ctx context.Context) (model.Snapshot, bool)
}

// storeSource reads the persisted snapshot, of any age. Parse failures and
// storage errors are a miss.
type storeSource struct {
	store  store.SnapshotStore
	logger *zap.Logger
}

func (s *storeSource) Name() string { return "persisted-store" }

func (s *storeSource) Load(ctx context.Context) (model.Snapshot, bool) {
	snap, err := s.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrCacheMiss) {
			s.logger.Warn("Snapshot store read failed", zap.Error(err))
		}
		return model.Snapshot{}, false
	}
	return snap, true
}

// remoteSource performs a generation-tracked blocking fetch. On a hit the
// cache has already committed and persisted the result.
type remoteSource struct {
	cache *VolunteerListCache
}

func (s *remoteSource) Name() string { return "remote-api" }

func (s *remoteSource) Load(ctx context.Context) (model.Snapshot, bool) {
	if err := s.cache.fetch(ctx); err != nil {
		s.cache.logger.Warn("Remote source fetch failed", zap.String("source", s.Name()), zap.Error(err))
		return model.Snapshot{}, false
	}
	snap, ok := s.cache.Snapshot()
	return snap, ok
}

// mockSource generates development-only data. Always a hit. It is only part
// of the source chain when the config enables mock fallback.
type mockSource struct {
	generate func() []model.Volunteer
	now      func() time.Time
}

func (s *mockSource) Name() string { return "mock-generator" }

func (s *mockSource) Load(ctx context.Context) (model.Snapshot, bool) {
	return model.Snapshot{Records: s.generate(), FetchedAt: s.now()}, true
}
