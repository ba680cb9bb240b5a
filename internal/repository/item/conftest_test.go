package item

import (
	"context"
	"sync"
	"time"

	domitem "github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/repository/snapshot"
)

// memPersister records every saved snapshot.
type memPersister struct {
	mu      sync.Mutex
	stored  []domitem.Item
	has     bool
	saves   int
	loadErr error
	saveErr error
}

func (p *memPersister) Load(_ context.Context) ([]domitem.Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	if !p.has {
		return nil, snapshot.ErrNoSnapshot
	}
	return p.stored, nil
}

func (p *memPersister) Save(_ context.Context, items []domitem.Item) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves++
	if p.saveErr != nil {
		return p.saveErr
	}
	p.stored = items
	p.has = true
	return nil
}

func (p *memPersister) last() []domitem.Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stored
}

func (p *memPersister) setSaveErr(err error) {
	p.mu.Lock()
	p.saveErr = err
	p.mu.Unlock()
}

type pingPersister struct {
	memPersister
	pingErr error
}

func (p *pingPersister) Ping(_ context.Context) error { return p.pingErr }

func newItem(id string) domitem.Item {
	return domitem.Item{
		ID:         id,
		Name:       "Item " + id,
		Category:   "books",
		Price:      10,
		Tags:       []string{"new"},
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Vendor:     "Acme",
		Attributes: domitem.Attributes{"color": "red"},
	}
}
