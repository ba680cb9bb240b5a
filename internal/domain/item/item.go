// Package item defines the catalog item and its field catalogue.
package item

import (
	"math"
	"slices"
	"time"

	"github.com/kailas-cloud/catalog/internal/domain"
)

// MaxRating is the upper bound of the rating scale.
const MaxRating = 5.0

// Attributes is an open-schema bag of text attributes (color, size, sku, ...).
type Attributes map[string]string

// Clone returns an independent copy. A nil bag stays nil.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Item is one catalog product.
type Item struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Price      float64    `json:"price"`
	Rating     float64    `json:"rating"`
	Tags       []string   `json:"tags"`
	CreatedAt  time.Time  `json:"created_at"`
	Stock      int        `json:"stock"`
	Vendor     string     `json:"vendor"`
	Attributes Attributes `json:"attributes"`
}

// Clone returns a deep copy, so callers can hand it out without sharing tags or attributes.
func (it Item) Clone() Item {
	out := it
	if it.Tags != nil {
		out.Tags = slices.Clone(it.Tags)
	}
	out.Attributes = it.Attributes.Clone()
	return out
}

// HasTag reports whether tag is in the item's tag set.
func (it Item) HasTag(tag string) bool {
	return slices.Contains(it.Tags, tag)
}

// Validate checks the numeric invariants every stored item must hold.
func (it Item) Validate() error {
	if it.ID == "" {
		return domain.NewValidationError("id", "must not be empty")
	}
	if math.IsNaN(it.Price) || math.IsInf(it.Price, 0) || it.Price < 0 {
		return domain.NewValidationError("price", "must be a non-negative number")
	}
	if math.IsNaN(it.Rating) || it.Rating < 0 || it.Rating > MaxRating {
		return domain.Invalidf("rating", "must be between 0 and %g", MaxRating)
	}
	if it.Stock < 0 {
		return domain.NewValidationError("stock", "must be non-negative")
	}
	return nil
}

// Value returns the value of a field by name, for projection.
func (it Item) Value(f Field) (any, bool) {
	switch f {
	case FieldID:
		return it.ID, true
	case FieldName:
		return it.Name, true
	case FieldCategory:
		return it.Category, true
	case FieldPrice:
		return it.Price, true
	case FieldRating:
		return it.Rating, true
	case FieldTags:
		return it.Tags, true
	case FieldCreatedAt:
		return it.CreatedAt, true
	case FieldStock:
		return it.Stock, true
	case FieldVendor:
		return it.Vendor, true
	case FieldAttributes:
		return it.Attributes, true
	default:
		return nil, false
	}
}
