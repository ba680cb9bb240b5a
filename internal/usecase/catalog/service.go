// Package catalog runs list, single-item and related-items queries over the item store.
package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/kailas-cloud/catalog/internal/domain"
	domitem "github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/query/filter"
	"github.com/kailas-cloud/catalog/internal/domain/query/order"
	"github.com/kailas-cloud/catalog/internal/domain/query/projection"
	"github.com/kailas-cloud/catalog/internal/domain/query/request"
	"github.com/kailas-cloud/catalog/internal/domain/query/result"
	"github.com/kailas-cloud/catalog/internal/domain/query/stats"
	"github.com/kailas-cloud/catalog/internal/metrics"
)

// Service answers catalog queries. Every query works on a private snapshot,
// so the store lock is never held while filtering or sorting.
type Service struct {
	repo Repository
}

// New creates a catalog query service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List filters, sorts, paginates and projects the catalog.
func (s *Service) List(ctx context.Context, spec *request.Spec) result.Page {
	items := spec.Filter().Apply(s.repo.Snapshot(ctx))

	var meta result.Meta
	if spec.IncludeStats() {
		filtered := stats.Compute(items)
		meta.StatsOverFiltered = &filtered
	}

	order.Sort(items, spec.Keys())
	pageItems, window := spec.Pagination().Apply(items)
	meta.Window = window

	if spec.IncludeStats() {
		onPage := stats.Compute(pageItems)
		meta.StatsOverPage = &onPage
	}

	metrics.ObserveList(window.Total, window.Returned)

	return result.Page{
		Items: spec.Fields().Apply(pageItems),
		Meta:  meta,
	}
}

// Get returns one item, projected to fields.
func (s *Service) Get(ctx context.Context, id string, fields projection.Fields) (any, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return fields.Project(it), nil
}

// Related returns other items of the base item's category, best first.
// The base and its peers come from the same snapshot.
func (s *Service) Related(ctx context.Context, id string, q *request.Related) (result.Related, error) {
	items := s.repo.Snapshot(ctx)

	idx := slices.IndexFunc(items, func(it domitem.Item) bool { return it.ID == id })
	if idx < 0 {
		return result.Related{}, fmt.Errorf("related items %q: %w", id, domain.ErrNotFound)
	}
	base := items[idx]

	var peers []domitem.Item
	if q.Limit() > 0 {
		peers = filter.Filter{Category: base.Category}.Apply(items)
		// An empty category leaves the filter unconstrained, hence the second check.
		peers = slices.DeleteFunc(peers, func(it domitem.Item) bool {
			return it.ID == base.ID || it.Category != base.Category
		})
		order.Sort(peers, q.Keys())
		peers = peers[:min(len(peers), q.Limit())]
	}

	metrics.ObserveRelated(len(peers))

	return result.Related{
		Base:  result.BaseItem{ID: base.ID, Category: base.Category},
		Items: q.Fields().Apply(peers),
	}, nil
}
