// Package item is the in-memory item store with snapshot persistence.
package item

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/kailas-cloud/catalog/internal/db"
	"github.com/kailas-cloud/catalog/internal/domain"
	domitem "github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/metrics"
	"github.com/kailas-cloud/catalog/internal/repository/snapshot"
)

// Persister stores and restores the full item collection.
type Persister interface {
	Load(ctx context.Context) ([]domitem.Item, error)
	Save(ctx context.Context, items []domitem.Item) error
}

// SeedConfig controls the sample generated when no snapshot exists.
type SeedConfig struct {
	Size int
	Seed int64
}

// Store implements usecase/catalog.Repository and usecase/item.Repository.
//
// Stored items are never mutated in place: inserts append and Replace swaps the
// whole slice, so a shallow copy of the slice is a consistent snapshot.
type Store struct {
	mu      sync.Mutex
	items   []domitem.Item
	index   map[string]int
	version uint64
	loaded  bool

	persistMu sync.Mutex
	persisted uint64

	persister Persister
	seed      SeedConfig
}

// New creates an empty store. Call Load before serving.
func New(p Persister, seed SeedConfig) *Store {
	return &Store{
		index:     make(map[string]int),
		persister: p,
		seed:      seed,
	}
}

// Load restores the last snapshot. When none exists it generates the sample
// catalog and saves it; seeded reports that case.
func (s *Store) Load(ctx context.Context) (seeded bool, err error) {
	items, err := s.persister.Load(ctx)
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		sample, genErr := domitem.Sample(s.seed.Size, s.seed.Seed)
		if genErr != nil {
			return false, fmt.Errorf("generate sample: %w", genErr)
		}
		return true, s.Replace(ctx, sample)
	}
	if err != nil {
		return false, fmt.Errorf("load snapshot: %w", err)
	}

	index, err := buildIndex(items)
	if err != nil {
		return false, fmt.Errorf("load snapshot: %w", err)
	}

	s.mu.Lock()
	s.items, s.index = items, index
	s.version++
	s.loaded = true
	v := s.version
	s.mu.Unlock()

	// The loaded state is already durable.
	s.persistMu.Lock()
	s.persisted = max(s.persisted, v)
	s.persistMu.Unlock()

	metrics.Items.Set(float64(len(items)))
	return false, nil
}

// Replace swaps the whole collection and persists it.
func (s *Store) Replace(ctx context.Context, items []domitem.Item) error {
	index, err := buildIndex(items)
	if err != nil {
		return err
	}
	items = cloneItems(items)

	s.mu.Lock()
	s.items, s.index = items, index
	s.version++
	s.loaded = true
	v, snap := s.version, slices.Clone(s.items)
	s.mu.Unlock()

	metrics.Items.Set(float64(len(snap)))
	return s.persist(ctx, v, snap)
}

// Insert adds a new item and persists the collection. A taken id yields
// domain.ErrAlreadyExists. If the write fails the item stays in memory and the
// error wraps domain.ErrPersistence.
func (s *Store) Insert(ctx context.Context, it domitem.Item) error {
	s.mu.Lock()
	if _, ok := s.index[it.ID]; ok {
		s.mu.Unlock()
		return fmt.Errorf("item %q: %w", it.ID, domain.ErrAlreadyExists)
	}
	s.index[it.ID] = len(s.items)
	s.items = append(s.items, it.Clone())
	s.version++
	v, snap := s.version, slices.Clone(s.items)
	s.mu.Unlock()

	metrics.Items.Set(float64(len(snap)))
	return s.persist(ctx, v, snap)
}

// Get returns a copy of the item with id, or domain.ErrNotFound.
func (s *Store) Get(_ context.Context, id string) (domitem.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return domitem.Item{}, domain.ErrNotFound
	}
	return s.items[i].Clone(), nil
}

// Snapshot returns a deep copy of all items in insertion order.
func (s *Store) Snapshot(_ context.Context) []domitem.Item {
	s.mu.Lock()
	items := slices.Clone(s.items)
	s.mu.Unlock()

	for i := range items {
		items[i] = items[i].Clone()
	}
	return items
}

// Len returns the number of stored items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Loaded reports whether Load or Replace has completed.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Ping checks the persistence backend when it supports it.
func (s *Store) Ping(ctx context.Context) error {
	p, ok := s.persister.(db.Pinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("persistence ping: %w", err)
	}
	return nil
}

// persist writes snap unless a newer version has already been written.
func (s *Store) persist(ctx context.Context, version uint64, snap []domitem.Item) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if version <= s.persisted {
		return nil
	}
	err := s.persister.Save(ctx, snap)
	metrics.RecordPersist(err)
	if err != nil {
		return fmt.Errorf("%w: save snapshot: %w", domain.ErrPersistence, err)
	}
	s.persisted = version
	return nil
}

func buildIndex(items []domitem.Item) (map[string]int, error) {
	index := make(map[string]int, len(items))
	for i := range items {
		id := items[i].ID
		if id == "" {
			return nil, domain.NewValidationError("id", fmt.Sprintf("item at position %d has no id", i))
		}
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("duplicate item %q: %w", id, domain.ErrAlreadyExists)
		}
		index[id] = i
	}
	return index, nil
}

func cloneItems(items []domitem.Item) []domitem.Item {
	out := make([]domitem.Item, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}
