package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/catalog/internal/db"
	"github.com/kailas-cloud/catalog/internal/domain/item"
)

// store is the consumer interface for the Redis persister (ISP).
type store interface {
	db.Pinger
	db.KVStore
}

// Redis persists the catalog as a single JSON value under one key.
type Redis struct {
	store store
	key   string
}

// NewRedis creates a Redis persister.
func NewRedis(s store, key string) *Redis {
	return &Redis{store: s, key: key}
}

// Load reads the snapshot key. A missing key yields ErrNoSnapshot.
func (r *Redis) Load(ctx context.Context) ([]item.Item, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("snapshot GET %s: %w", r.key, err)
	}
	if len(data) == 0 {
		return nil, ErrNoSnapshot
	}
	return decode(data)
}

// Save overwrites the snapshot key.
func (r *Redis) Save(ctx context.Context, items []item.Item) error {
	data, err := encode(items)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("snapshot SET %s: %w", r.key, err)
	}
	return nil
}

// Ping checks connectivity to the backing store.
func (r *Redis) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
