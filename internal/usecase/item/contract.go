package item

import (
	"context"

	domitem "github.com/kailas-cloud/catalog/internal/domain/item"
)

// Repository is the write side of the item store.
type Repository interface {
	Insert(ctx context.Context, it domitem.Item) error
}

// CreateInput holds the caller-supplied fields of a new item. Nil pointers and
// empty values take the documented defaults.
type CreateInput struct {
	ID         string
	Name       string
	Category   string
	Price      float64
	Rating     *float64
	Tags       []string
	Stock      *int
	Vendor     string
	Attributes domitem.Attributes
}
