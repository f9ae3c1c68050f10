// Package filestore persists snapshots as a JSON file on local disk. It is
// the single-seat analog of the browser's local storage: one writer, cheap
// reads, and readers that re-validate rather than trust an in-memory mirror.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
	"github.com/aakfoundation/sevak-registry/pkg/store"
)

// formatVersion is bumped whenever the envelope layout changes. Entries
// written by a different version are discarded as a cache miss so format
// changes never crash on old data.
const formatVersion = 2

const snapshotFileName = "volunteer_snapshot.json"

// envelope wraps the snapshot with its format version on disk.
type envelope struct {
	Version  int            `json:"version"`
	Snapshot model.Snapshot `json:"snapshot"`
}

// Store is a file-backed SnapshotStore.
type Store struct {
	path string
}

// New creates a file store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Store{path: filepath.Join(dir, snapshotFileName)}, nil
}

// Get reads the persisted snapshot. Missing files, unparsable payloads, and
// old-versioned envelopes all surface as store.ErrCacheMiss.
func (s *Store) Get(ctx context.Context) (model.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Snapshot{}, store.ErrCacheMiss
		}
		return model.Snapshot{}, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// Corrupted entry: treat as a miss, not an error.
		return model.Snapshot{}, store.ErrCacheMiss
	}
	if env.Version != formatVersion {
		return model.Snapshot{}, store.ErrCacheMiss
	}
	if env.Snapshot.FetchedAt.IsZero() {
		return model.Snapshot{}, store.ErrCacheMiss
	}

	return env.Snapshot, nil
}

// Set writes the snapshot atomically via a temp file rename so a concurrent
// reader never observes a partial write.
func (s *Store) Set(ctx context.Context, snap model.Snapshot) error {
	data, err := json.Marshal(envelope{Version: formatVersion, Snapshot: snap})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}
	return nil
}

// Clear removes the persisted snapshot.
func (s *Store) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove snapshot file: %w", err)
	}
	return nil
}
