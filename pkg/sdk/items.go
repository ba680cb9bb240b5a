package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	domitem "github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/query/projection"
	"github.com/kailas-cloud/catalog/internal/domain/query/request"
)

// ItemService queries and creates catalog items.
type ItemService struct {
	catalog catalogUseCase
	items   itemUseCase
	limits  request.Limits
	obs     *observer
}

// List filters, sorts and pages the catalog.
func (s *ItemService) List(ctx context.Context, q Query) (_ ListResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("list", start, err) }()

	spec, err := request.Parse(q.values(), s.limits)
	if err != nil {
		return ListResult{}, fmt.Errorf("list items: %w", err)
	}

	pg := s.catalog.List(ctx, &spec)
	items, records := splitResults(pg.Items)
	meta := fromInternalWindow(&pg.Meta.Window)
	meta.StatsOverPage = fromInternalStats(pg.Meta.StatsOverPage)
	meta.StatsOverFiltered = fromInternalStats(pg.Meta.StatsOverFiltered)

	return ListResult{Items: items, Records: records, Meta: meta}, nil
}

// Get returns one item by id.
func (s *ItemService) Get(ctx context.Context, id string) (_ Item, err error) {
	start := time.Now()
	defer func() { s.obs.observe("get", start, err) }()

	v, err := s.catalog.Get(ctx, id, projection.Fields{})
	if err != nil {
		return Item{}, fmt.Errorf("get item: %w", err)
	}
	it, ok := v.(domitem.Item)
	if !ok {
		return Item{}, fmt.Errorf("get item: unexpected result %T", v)
	}
	return fromInternalItem(&it), nil
}

// GetFields returns one item restricted to the named fields.
// Unknown field names are ignored; if none remain the full item is returned as a record.
func (s *ItemService) GetFields(ctx context.Context, id string, fields ...string) (_ Record, err error) {
	start := time.Now()
	defer func() { s.obs.observe("get", start, err) }()

	fs := projection.Parse(strings.Join(fields, ","))
	if fs.IsEmpty() {
		fs = projection.New(domitem.Fields()...)
	}
	v, err := s.catalog.Get(ctx, id, fs)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	rec, ok := v.(projection.Record)
	if !ok {
		return nil, fmt.Errorf("get item: unexpected result %T", v)
	}
	return Record(rec), nil
}

// Related returns other items in the same category as id, best first.
func (s *ItemService) Related(ctx context.Context, id string, q RelatedQuery) (_ RelatedResult, err error) {
	start := time.Now()
	defer func() { s.obs.observe("related", start, err) }()

	rq, err := request.ParseRelated(q.values(), s.limits)
	if err != nil {
		return RelatedResult{}, fmt.Errorf("related items: %w", err)
	}
	res, err := s.catalog.Related(ctx, id, &rq)
	if err != nil {
		return RelatedResult{}, fmt.Errorf("related items: %w", err)
	}

	items, records := splitResults(res.Items)
	return RelatedResult{
		BaseID:       res.Base.ID,
		BaseCategory: res.Base.Category,
		Items:        items,
		Records:      records,
	}, nil
}

// Create validates, normalises and stores a new item.
func (s *ItemService) Create(ctx context.Context, n NewItem) (_ Item, err error) {
	start := time.Now()
	defer func() { s.obs.observe("create", start, err) }()

	it, err := s.items.Create(ctx, toCreateInput(&n))
	if err != nil {
		return Item{}, fmt.Errorf("create item: %w", err)
	}
	return fromInternalItem(&it), nil
}
