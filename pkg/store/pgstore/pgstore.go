// Package pgstore persists snapshots in PostgreSQL for deployments where
// several admin seats share one cache. The table is the shared mutable
// resource; readers always re-validate against it rather than trusting a
// local mirror.
package pgstore

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
	"github.com/aakfoundation/sevak-registry/pkg/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// formatVersion mirrors the file store's envelope versioning; rows written
// by an incompatible version read back as a cache miss.
const formatVersion = 2

const snapshotKey = "volunteer_list"

// Store is a PostgreSQL-backed SnapshotStore.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new PostgreSQL snapshot store.
func New(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the database connection pool
func (s *Store) Close() {
	s.pool.Close()
}

// RunMigrations executes all pending SQL migration files in order.
// It tracks which migrations have been applied in a schema_migrations table.
func (s *Store) RunMigrations(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	rows, err := s.pool.Query(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("failed to query applied migrations: %w", err)
	}
	applied := make(map[string]bool)
	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration filename: %w", err)
		}
		applied[filename] = true
	}
	rows.Close()

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, filename := range sqlFiles {
		if applied[filename] {
			continue
		}

		content, err := fs.ReadFile(migrationsFS, "migrations/"+filename)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for %s: %w", filename, err)
		}

		_, err = tx.Exec(ctx, string(content))
		if err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}

		_, err = tx.Exec(ctx, `INSERT INTO schema_migrations (filename) VALUES ($1)`, filename)
		if err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("failed to record migration %s: %w", filename, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", filename, err)
		}
	}

	return nil
}

// Get reads the shared snapshot row. Missing rows, unparsable payloads, and
// incompatible format versions surface as store.ErrCacheMiss.
func (s *Store) Get(ctx context.Context) (model.Snapshot, error) {
	var (
		version int
		payload []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT format_version, payload
		FROM volunteer_snapshot
		WHERE snapshot_key = $1
	`, snapshotKey).Scan(&version, &payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Snapshot{}, store.ErrCacheMiss
		}
		return model.Snapshot{}, fmt.Errorf("failed to query snapshot: %w", err)
	}

	if version != formatVersion {
		return model.Snapshot{}, store.ErrCacheMiss
	}

	var snap model.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return model.Snapshot{}, store.ErrCacheMiss
	}
	if snap.FetchedAt.IsZero() {
		return model.Snapshot{}, store.ErrCacheMiss
	}

	return snap, nil
}

// Set upserts the shared snapshot row.
func (s *Store) Set(ctx context.Context, snap model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO volunteer_snapshot (snapshot_key, format_version, fetched_at, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (snapshot_key)
		DO UPDATE SET format_version = $2, fetched_at = $3, payload = $4
	`, snapshotKey, formatVersion, snap.FetchedAt, payload)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

// Clear removes the shared snapshot row.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM volunteer_snapshot WHERE snapshot_key = $1
	`, snapshotKey)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
