// Package store defines the persistence port for cached volunteer snapshots.
// The cache never reaches for ambient storage directly; it talks to a
// SnapshotStore so tests can swap in an in-memory fake.
package store

import (
	"context"
	"errors"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
)

// ErrCacheMiss is returned when no usable snapshot is persisted. Corrupted
// or old-versioned entries are reported as a miss, never as a failure.
var ErrCacheMiss = errors.New("snapshot not found in store")

// SnapshotStore persists the volunteer snapshot under a namespaced,
// versioned key.
type SnapshotStore interface {
	// Get returns the persisted snapshot, or ErrCacheMiss if absent,
	// unparsable, or written by an incompatible format version.
	Get(ctx context.Context) (model.Snapshot, error)

	// Set replaces the persisted snapshot.
	Set(ctx context.Context, snap model.Snapshot) error

	// Clear removes the persisted snapshot. Clearing an empty store is not
	// an error.
	Clear(ctx context.Context) error
}
