package catalog

import (
	"net/url"
	"strconv"
	"strings"

	domitem "github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/query/page"
	"github.com/kailas-cloud/catalog/internal/domain/query/projection"
	"github.com/kailas-cloud/catalog/internal/domain/query/request"
	"github.com/kailas-cloud/catalog/internal/domain/query/stats"
	itemuc "github.com/kailas-cloud/catalog/internal/usecase/item"
)

// values renders q as the query string the HTTP API would receive.
func (q *Query) values() url.Values {
	v := url.Values{}
	setString(v, request.ParamCategory, q.Category)
	setString(v, request.ParamVendor, q.Vendor)
	setFloat(v, request.ParamMinPrice, q.MinPrice)
	setFloat(v, request.ParamMaxPrice, q.MaxPrice)
	setFloat(v, request.ParamMinRating, q.MinRating)
	setFloat(v, request.ParamMaxRating, q.MaxRating)
	for _, tag := range q.Tags {
		v.Add(request.ParamTag, tag)
	}
	setString(v, request.ParamText, q.Text)
	setString(v, request.ParamSortBy, q.SortBy)
	setString(v, request.ParamFields, strings.Join(q.Fields, ","))
	setInt(v, request.ParamPage, q.Page)
	setInt(v, request.ParamPageSize, q.PageSize)
	setInt(v, request.ParamOffset, q.Offset)
	setInt(v, request.ParamLimit, q.Limit)
	if q.IncludeStats {
		v.Set(request.ParamIncludeStats, "true")
	}
	return v
}

func (q *RelatedQuery) values() url.Values {
	v := url.Values{}
	if q.Limit != nil {
		v.Set(request.ParamLimit, strconv.Itoa(*q.Limit))
	}
	setString(v, request.ParamSortBy, q.SortBy)
	setString(v, request.ParamFields, strings.Join(q.Fields, ","))
	return v
}

func setString(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

func setFloat(v url.Values, key string, val *float64) {
	if val != nil {
		v.Set(key, strconv.FormatFloat(*val, 'f', -1, 64))
	}
}

func setInt(v url.Values, key string, val int) {
	if val != 0 {
		v.Set(key, strconv.Itoa(val))
	}
}

func fromInternalItem(it *domitem.Item) Item {
	c := it.Clone()
	return Item{
		ID:         c.ID,
		Name:       c.Name,
		Category:   c.Category,
		Price:      c.Price,
		Rating:     c.Rating,
		Tags:       c.Tags,
		CreatedAt:  c.CreatedAt,
		Stock:      c.Stock,
		Vendor:     c.Vendor,
		Attributes: map[string]string(c.Attributes),
	}
}

// splitResults separates full items from projected records.
func splitResults(vals []any) ([]Item, []Record) {
	var items []Item
	var records []Record
	for _, v := range vals {
		switch x := v.(type) {
		case domitem.Item:
			items = append(items, fromInternalItem(&x))
		case projection.Record:
			records = append(records, Record(x))
		}
	}
	return items, records
}

func fromInternalStats(s *stats.Stats) *Stats {
	if s == nil {
		return nil
	}
	return &Stats{AvgPrice: s.AvgPrice, AvgRating: s.AvgRating, Count: s.Count}
}

func fromInternalWindow(w *page.Window) PageMeta {
	return PageMeta{
		Mode:     string(w.Mode),
		Offset:   w.Offset,
		Limit:    w.Limit,
		Page:     w.Page,
		PageSize: w.PageSize,
		Pages:    w.Pages,
		Total:    w.Total,
		Returned: w.Returned,
		HasNext:  w.HasNext,
		HasPrev:  w.HasPrev,
	}
}

func toCreateInput(n *NewItem) *itemuc.CreateInput {
	in := &itemuc.CreateInput{
		ID:       n.ID,
		Name:     n.Name,
		Category: n.Category,
		Price:    n.Price,
		Rating:   n.Rating,
		Tags:     n.Tags,
		Stock:    n.Stock,
		Vendor:   n.Vendor,
	}
	if n.Attributes != nil {
		in.Attributes = domitem.Attributes(n.Attributes)
	}
	return in
}
