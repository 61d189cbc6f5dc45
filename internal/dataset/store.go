package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Loader produces a fully built snapshot from some backend (CSV directory,
// SQLite database, in-memory fixture).
type Loader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// Store publishes the current snapshot. Reload builds the new snapshot
// completely before swapping the visible pointer, so in-flight readers see
// either the old generation or the new one in full, never a mix.
type Store struct {
	loader  Loader
	current atomic.Pointer[Snapshot]
}

// NewStore wraps a loader. Call Reload once before serving.
func NewStore(loader Loader) *Store {
	s := &Store{loader: loader}
	s.current.Store(NewSnapshot(nil, nil, nil))
	return s
}

// Snapshot returns the currently published dataset generation.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Reload re-invokes the loader and atomically republishes the snapshot. On
// failure the previous generation stays visible.
func (s *Store) Reload(ctx context.Context) (Counts, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return Counts{}, fmt.Errorf("load dataset: %w", err)
	}
	s.current.Store(snap)

	counts := snap.Counts()
	slog.InfoContext(ctx, "Dataset reloaded",
		"categories", counts.Categories,
		"products", counts.Products,
		"sales", counts.Sales)
	return counts, nil
}
