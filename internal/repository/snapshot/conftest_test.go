package snapshot

import (
	"context"
	"time"

	"github.com/kailas-cloud/catalog/internal/domain/item"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	data   map[string][]byte
	getFn  func(ctx context.Context, key string) ([]byte, error)
	setFn  func(ctx context.Context, key string, value []byte) error
	pingFn func(ctx context.Context) error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte)}
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	v, ok := m.data[key]
	if !ok {
		return nil, errKeyNotFound
	}
	return v, nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	m.data[key] = value
	return nil
}

func (m *mockStore) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func testItems() []item.Item {
	return []item.Item{
		{
			ID:         "a1",
			Name:       "Smart Lamp 120",
			Category:   "home",
			Price:      49.5,
			Rating:     4.1,
			Tags:       []string{"eco", "new"},
			CreatedAt:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			Stock:      12,
			Vendor:     "Initech",
			Attributes: item.Attributes{"color": "white"},
		},
		{
			ID:         "b2",
			Name:       "Ultra Desk 901",
			Category:   "office",
			Price:      320,
			Tags:       []string{},
			CreatedAt:  time.Date(2023, 1, 1, 0, 17, 0, 0, time.UTC),
			Vendor:     "Globex",
			Attributes: item.Attributes{},
		},
	}
}
