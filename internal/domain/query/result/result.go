// Package result holds the engine's output values.
package result

import (
	"github.com/kailas-cloud/catalog/internal/domain/query/page"
	"github.com/kailas-cloud/catalog/internal/domain/query/stats"
)

// Page is one page of a list query.
type Page struct {
	// Items holds item.Item values, or projection.Record values when a projection was requested.
	Items []any
	Meta  Meta
}

// Meta describes how Items were cut from the filtered set.
type Meta struct {
	page.Window
	StatsOverPage     *stats.Stats
	StatsOverFiltered *stats.Stats
}

// Total returns the post-filter, pre-pagination count.
func (p *Page) Total() int { return p.Meta.Total }

// BaseItem identifies the item a related query was anchored on.
type BaseItem struct {
	ID       string
	Category string
}

// Related is the result of a related-items query.
type Related struct {
	Base  BaseItem
	Items []any
}
