package catalog

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/catalog/internal/domain"
	domitem "github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/query/filter"
	"github.com/kailas-cloud/catalog/internal/domain/query/page"
	"github.com/kailas-cloud/catalog/internal/domain/query/projection"
	"github.com/kailas-cloud/catalog/internal/domain/query/request"
)

// --- Mocks ---

type memRepo struct {
	items []domitem.Item
}

func (m *memRepo) Snapshot(_ context.Context) []domitem.Item {
	out := make([]domitem.Item, len(m.items))
	for i := range m.items {
		out[i] = m.items[i].Clone()
	}
	return out
}

func (m *memRepo) Get(_ context.Context, id string) (domitem.Item, error) {
	for _, it := range m.items {
		if it.ID == id {
			return it.Clone(), nil
		}
	}
	return domitem.Item{}, domain.ErrNotFound
}

func abc() *memRepo {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return &memRepo{items: []domitem.Item{
		{ID: "A", Name: "Alpha", Category: "electronics", Price: 100, Rating: 4.0, Tags: []string{}, CreatedAt: at},
		{ID: "B", Name: "Beta", Category: "electronics", Price: 50, Rating: 4.5, Tags: []string{}, CreatedAt: at},
		{ID: "C", Name: "Gamma", Category: "books", Price: 20, Rating: 3.0, Tags: []string{}, CreatedAt: at},
	}}
}

func list(t *testing.T, svc *Service, raw string) []string {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	spec, err := request.Parse(q, request.DefaultLimits())
	require.NoError(t, err)

	pg := svc.List(context.Background(), &spec)
	ids := make([]string, len(pg.Items))
	for i, v := range pg.Items {
		switch it := v.(type) {
		case domitem.Item:
			ids[i] = it.ID
		case projection.Record:
			ids[i], _ = it["id"].(string)
		}
	}
	return ids
}

// --- Tests ---

func TestList_EndToEndScenario(t *testing.T) {
	svc := New(abc())

	ids := list(t, svc, "category=electronics&sort_by=-rating")
	assert.Equal(t, []string{"B", "A"}, ids)

	ids = list(t, svc, "min_price=60&max_price=200")
	assert.Equal(t, []string{"A"}, ids)

	q, err := url.ParseQuery("page=1&page_size=2&sort_by=price")
	require.NoError(t, err)
	spec, err := request.Parse(q, request.DefaultLimits())
	require.NoError(t, err)
	pg := svc.List(context.Background(), &spec)

	require.Len(t, pg.Items, 2)
	assert.Equal(t, "C", pg.Items[0].(domitem.Item).ID)
	assert.Equal(t, "B", pg.Items[1].(domitem.Item).ID)
	assert.Equal(t, 3, pg.Total())
	assert.Equal(t, 2, pg.Meta.Pages)
	assert.True(t, pg.Meta.HasNext)
	assert.False(t, pg.Meta.HasPrev)
}

func TestList_DefaultSortNewestFirst(t *testing.T) {
	repo := abc()
	repo.items[2].CreatedAt = repo.items[2].CreatedAt.Add(time.Hour)
	ids := list(t, New(repo), "")
	assert.Equal(t, []string{"C", "A", "B"}, ids)
}

func TestList_Stats(t *testing.T) {
	svc := New(abc())
	q := url.Values{"include_stats": {"yes"}, "sort_by": {"price"}, "limit": {"1"}}
	spec, err := request.Parse(q, request.DefaultLimits())
	require.NoError(t, err)

	pg := svc.List(context.Background(), &spec)
	require.NotNil(t, pg.Meta.StatsOverFiltered)
	require.NotNil(t, pg.Meta.StatsOverPage)
	assert.Equal(t, 3, pg.Meta.StatsOverFiltered.Count)
	assert.InDelta(t, 56.67, *pg.Meta.StatsOverFiltered.AvgPrice, 1e-9)
	assert.Equal(t, 1, pg.Meta.StatsOverPage.Count)
	assert.InDelta(t, 20.0, *pg.Meta.StatsOverPage.AvgPrice, 1e-9)
}

func TestList_NoStatsUnlessRequested(t *testing.T) {
	p, err := page.NewOffset(0, 10)
	require.NoError(t, err)
	spec := request.New(filter.Filter{}, nil, p, projection.Fields{}, false)
	pg := New(abc()).List(context.Background(), &spec)
	assert.Nil(t, pg.Meta.StatsOverFiltered)
	assert.Nil(t, pg.Meta.StatsOverPage)
	assert.Len(t, pg.Items, 3)
}

func TestList_EmptyMatchHasNullAverages(t *testing.T) {
	q := url.Values{"category": {"garden"}, "include_stats": {"true"}}
	spec, err := request.Parse(q, request.DefaultLimits())
	require.NoError(t, err)

	pg := New(abc()).List(context.Background(), &spec)
	assert.Empty(t, pg.Items)
	assert.Equal(t, 0, pg.Total())
	assert.Nil(t, pg.Meta.StatsOverFiltered.AvgPrice)
	assert.Nil(t, pg.Meta.StatsOverPage.AvgRating)
}

func TestList_Projection(t *testing.T) {
	q := url.Values{"fields": {"id,price"}, "sort_by": {"id"}}
	spec, err := request.Parse(q, request.DefaultLimits())
	require.NoError(t, err)

	pg := New(abc()).List(context.Background(), &spec)
	require.Len(t, pg.Items, 3)
	assert.Equal(t, projection.Record{"id": "A", "price": 100.0}, pg.Items[0])
}

func TestList_DoesNotReorderStore(t *testing.T) {
	repo := abc()
	_ = list(t, New(repo), "sort_by=price")
	assert.Equal(t, "A", repo.items[0].ID)
}

func TestGet(t *testing.T) {
	svc := New(abc())

	got, err := svc.Get(context.Background(), "B", projection.Fields{})
	require.NoError(t, err)
	assert.Equal(t, "Beta", got.(domitem.Item).Name)

	got, err = svc.Get(context.Background(), "B", projection.Parse("name"))
	require.NoError(t, err)
	assert.Equal(t, projection.Record{"name": "Beta"}, got)

	_, err = svc.Get(context.Background(), "Z", projection.Fields{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// --- Related ---

func related(t *testing.T, svc *Service, id string, params url.Values) ([]string, error) {
	t.Helper()
	q, err := request.ParseRelated(params, request.DefaultLimits())
	require.NoError(t, err)
	res, err := svc.Related(context.Background(), id, &q)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(res.Items))
	for i, v := range res.Items {
		ids[i] = v.(domitem.Item).ID
	}
	return ids, nil
}

func TestRelated_ExcludesBaseAndOtherCategories(t *testing.T) {
	repo := abc()
	repo.items = append(repo.items,
		domitem.Item{ID: "D", Category: "electronics", Price: 10, Rating: 4.5},
		domitem.Item{ID: "E", Category: "electronics", Price: 300, Rating: 2},
	)
	ids, err := related(t, New(repo), "A", url.Values{})
	require.NoError(t, err)
	// -rating,price: D and B tie on rating, cheaper first.
	assert.Equal(t, []string{"D", "B", "E"}, ids)
}

func TestRelated_BaseItem(t *testing.T) {
	q, err := request.ParseRelated(url.Values{}, request.DefaultLimits())
	require.NoError(t, err)
	res, err := New(abc()).Related(context.Background(), "C", &q)
	require.NoError(t, err)
	assert.Equal(t, "C", res.Base.ID)
	assert.Equal(t, "books", res.Base.Category)
	assert.Empty(t, res.Items)
}

func TestRelated_Limit(t *testing.T) {
	ids, err := related(t, New(abc()), "A", url.Values{"limit": {"0"}})
	require.NoError(t, err)
	assert.Empty(t, ids)

	repo := abc()
	for _, id := range []string{"D", "E", "F"} {
		repo.items = append(repo.items, domitem.Item{ID: id, Category: "electronics", Rating: 1})
	}
	ids, err = related(t, New(repo), "A", url.Values{"limit": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "D"}, ids)
}

func TestRelated_UnknownBase(t *testing.T) {
	_, err := related(t, New(abc()), "nope", url.Values{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// snapshotOnlyRepo serves Snapshot but fails Get, so Related must find the
// base inside the snapshot it filters.
type snapshotOnlyRepo struct {
	*memRepo
	snapshots int
}

func (r *snapshotOnlyRepo) Snapshot(ctx context.Context) []domitem.Item {
	r.snapshots++
	return r.memRepo.Snapshot(ctx)
}

func (r *snapshotOnlyRepo) Get(context.Context, string) (domitem.Item, error) {
	return domitem.Item{}, errors.New("unexpected Get")
}

func TestRelated_SingleSnapshot(t *testing.T) {
	repo := &snapshotOnlyRepo{memRepo: abc()}
	ids, err := related(t, New(repo), "A", url.Values{})
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, ids)
	assert.Equal(t, 1, repo.snapshots)

	_, err = related(t, New(repo), "nope", url.Values{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRelated_EmptyCategoryMatchesOnlyEmpty(t *testing.T) {
	repo := abc()
	repo.items = append(repo.items,
		domitem.Item{ID: "X", Rating: 1},
		domitem.Item{ID: "Y", Rating: 2},
	)
	ids, err := related(t, New(repo), "X", url.Values{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Y"}, ids)
}
