package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrNoChange can be returned by an Update mutation to signal that the
// collection should not be rewritten. Update treats it as success.
var ErrNoChange = errors.New("no change")

// Records is a typed repository over one collection. It decodes records on
// load, encodes on save, and serializes the read-modify-write sequence so a
// future backend can add optimistic concurrency control without touching
// callers.
type Records[T any] struct {
	store Store
	name  Collection

	// mu serializes Update's load-mutate-save window within this process.
	// Cross-process writers are outside the storage contract.
	mu sync.Mutex
}

// NewRecords creates a typed repository for the given collection.
func NewRecords[T any](store Store, name Collection) *Records[T] {
	return &Records[T]{store: store, name: name}
}

// Load returns every valid record in the collection. Records that fail to
// decode are skipped with a warning rather than failing the whole load; the
// stored shape is trusted data written by this process, so a bad record
// indicates corruption that should not take reads down with it.
func (r *Records[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := r.store.Load(ctx, r.name)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %q: %w", r.name, err)
	}

	items := make([]T, 0, len(raw))
	for i, rec := range raw {
		var item T
		if err := json.Unmarshal(rec, &item); err != nil {
			slog.Warn("Skipping invalid record",
				"collection", string(r.name),
				"position", i,
				"error", err,
			)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Save replaces the full contents of the collection.
func (r *Records[T]) Save(ctx context.Context, items []T) error {
	raw := make([]json.RawMessage, len(items))
	for i, item := range items {
		rec, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to encode record for %q: %w", r.name, err)
		}
		raw[i] = rec
	}

	if err := r.store.Save(ctx, r.name, raw); err != nil {
		return fmt.Errorf("failed to save collection %q: %w", r.name, err)
	}
	return nil
}

// Update runs a read-modify-write cycle: it loads the collection, applies
// mutate, and saves the result. The cycle is a critical section relative to
// other Updates on the same repository.
//
// If mutate returns ErrNoChange the collection is not rewritten and Update
// returns the loaded items with a nil error. Any other error aborts the
// cycle before anything is written.
func (r *Records[T]) Update(ctx context.Context, mutate func([]T) ([]T, error)) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	mutated, err := mutate(items)
	if err != nil {
		if errors.Is(err, ErrNoChange) {
			return items, nil
		}
		return nil, err
	}

	if err := r.Save(ctx, mutated); err != nil {
		return nil, err
	}
	return mutated, nil
}
