package catalog

import (
	"context"

	domitem "github.com/kailas-cloud/catalog/internal/domain/item"
)

// Repository is the read side of the item store.
type Repository interface {
	Snapshot(ctx context.Context) []domitem.Item
	Get(ctx context.Context, id string) (domitem.Item, error)
}
