package catalog

import (
	"context"
	"sync"

	domitem "github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/repository/snapshot"
)

// memoryPersister keeps the last saved snapshot in process memory.
type memoryPersister struct {
	mu    sync.Mutex
	items []domitem.Item
	saved bool
}

func (m *memoryPersister) Load(_ context.Context) ([]domitem.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return nil, snapshot.ErrNoSnapshot
	}
	return cloneItems(m.items), nil
}

func (m *memoryPersister) Save(_ context.Context, items []domitem.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = cloneItems(items)
	m.saved = true
	return nil
}

func cloneItems(items []domitem.Item) []domitem.Item {
	out := make([]domitem.Item, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}
