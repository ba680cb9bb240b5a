// Package snapshot stores the whole catalog as one JSON document.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/catalog/internal/domain/item"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("snapshot: none stored")

func encode(items []item.Item) ([]byte, error) {
	if items == nil {
		items = []item.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func decode(data []byte) ([]item.Item, error) {
	var items []item.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	for i := range items {
		normalize(&items[i])
	}
	return items, nil
}

// normalize fills collections a hand-edited snapshot may have left null.
func normalize(it *item.Item) {
	if it.Tags == nil {
		it.Tags = []string{}
	}
	if it.Attributes == nil {
		it.Attributes = item.Attributes{}
	}
}
