// Package memstore provides an in-memory SnapshotStore used in tests.
package memstore

import (
	"context"
	"sync"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
	"github.com/aakfoundation/sevak-registry/pkg/store"
)

// Store is an in-memory SnapshotStore.
type Store struct {
	mu   sync.Mutex
	snap model.Snapshot
	set  bool

	// GetErr and SetErr, when non-nil, are returned by the corresponding
	// operations. Tests use these to simulate storage failures.
	GetErr error
	SetErr error
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Seed creates a store pre-populated with the given snapshot.
func Seed(snap model.Snapshot) *Store {
	return &Store{snap: snap, set: true}
}

func (s *Store) Get(ctx context.Context) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return model.Snapshot{}, s.GetErr
	}
	if !s.set {
		return model.Snapshot{}, store.ErrCacheMiss
	}
	return s.snap, nil
}

func (s *Store) Set(ctx context.Context, snap model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.snap = snap
	s.set = true
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = model.Snapshot{}
	s.set = false
	return nil
}
