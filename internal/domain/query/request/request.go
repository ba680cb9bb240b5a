// Package request turns raw query parameters into a validated query specification.
package request

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/kailas-cloud/catalog/internal/domain"
	"github.com/kailas-cloud/catalog/internal/domain/query/filter"
	"github.com/kailas-cloud/catalog/internal/domain/query/order"
	"github.com/kailas-cloud/catalog/internal/domain/query/page"
	"github.com/kailas-cloud/catalog/internal/domain/query/projection"
)

// Query parameter names.
const (
	ParamCategory     = "category"
	ParamVendor       = "vendor"
	ParamMinPrice     = "min_price"
	ParamMaxPrice     = "max_price"
	ParamMinRating    = "min_rating"
	ParamMaxRating    = "max_rating"
	ParamTag          = "tag"
	ParamText         = "q"
	ParamSortBy       = order.Param
	ParamPage         = "page"
	ParamPageSize     = "page_size"
	ParamOffset       = "offset"
	ParamLimit        = "limit"
	ParamFields       = projection.Param
	ParamIncludeStats = "include_stats"
)

// ListParams are the parameters a list query accepts.
var ListParams = []string{
	ParamCategory, ParamVendor,
	ParamMinPrice, ParamMaxPrice, ParamMinRating, ParamMaxRating,
	ParamTag, ParamText, ParamSortBy,
	ParamPage, ParamPageSize, ParamOffset, ParamLimit,
	ParamFields, ParamIncludeStats,
}

// RelatedParams are the parameters a related-items query accepts.
var RelatedParams = []string{ParamLimit, ParamSortBy, ParamFields}

// ItemParams are the parameters a single-item lookup accepts.
var ItemParams = []string{ParamFields}

// Paging defaults.
const (
	DefaultPageSize     = 25
	MaxPageSize         = 100
	DefaultRelatedLimit = 5
	MaxRelatedLimit     = 50
)

// Limits bounds page sizes so a single query cannot materialise the whole catalog.
type Limits struct {
	DefaultPageSize     int
	MaxPageSize         int
	DefaultRelatedLimit int
	MaxRelatedLimit     int
}

// DefaultLimits returns the built-in paging limits.
func DefaultLimits() Limits {
	return Limits{
		DefaultPageSize:     DefaultPageSize,
		MaxPageSize:         MaxPageSize,
		DefaultRelatedLimit: DefaultRelatedLimit,
		MaxRelatedLimit:     MaxRelatedLimit,
	}
}

// Spec is a validated list query.
type Spec struct {
	filter       filter.Filter
	keys         []order.Key
	pagination   page.Pagination
	fields       projection.Fields
	includeStats bool
}

// New assembles a Spec from already-validated parts. Empty keys fall back to order.DefaultList.
func New(
	f filter.Filter, keys []order.Key, p page.Pagination,
	fields projection.Fields, includeStats bool,
) Spec {
	if len(keys) == 0 {
		keys = order.DefaultList
	}
	return Spec{filter: f, keys: keys, pagination: p, fields: fields, includeStats: includeStats}
}

// Parse validates a flat parameter map. Names outside ListParams are rejected.
// A parameter with a blank value counts as absent; for a repeated single-valued
// parameter the first value wins.
func Parse(params map[string][]string, lim Limits) (Spec, error) {
	if err := CheckKnown(params, ListParams...); err != nil {
		return Spec{}, err
	}

	f, err := parseFilter(params)
	if err != nil {
		return Spec{}, err
	}

	keys, err := order.ParseKeys(first(params, ParamSortBy))
	if err != nil {
		return Spec{}, err
	}

	p, err := parsePagination(params, lim)
	if err != nil {
		return Spec{}, err
	}

	return New(
		f, keys, p,
		projection.Parse(first(params, ParamFields)),
		ParseBool(first(params, ParamIncludeStats)),
	), nil
}

// Filter returns the predicate set.
func (s *Spec) Filter() filter.Filter { return s.filter }

// Keys returns the sort keys.
func (s *Spec) Keys() []order.Key { return s.keys }

// Pagination returns the paging mode.
func (s *Spec) Pagination() page.Pagination { return s.pagination }

// Fields returns the projection allow-list.
func (s *Spec) Fields() projection.Fields { return s.fields }

// IncludeStats reports whether aggregate stats were requested.
func (s *Spec) IncludeStats() bool { return s.includeStats }

// WithCategory returns a copy whose category predicate is forced to category.
func (s *Spec) WithCategory(category string) Spec {
	out := *s
	out.filter.Category = category
	return out
}

// WithPriceRange returns a copy whose price predicate is forced to [minPrice, maxPrice].
func (s *Spec) WithPriceRange(minPrice, maxPrice float64) Spec {
	out := *s
	out.filter.Price = filter.NewRange(&minPrice, &maxPrice)
	return out
}

// CheckKnown rejects the first parameter, in name order, that is not in allowed.
func CheckKnown(params map[string][]string, allowed ...string) error {
	for _, name := range slices.Sorted(maps.Keys(params)) {
		if !slices.Contains(allowed, name) {
			return domain.NewValidationError(name, "unknown parameter")
		}
	}
	return nil
}

// CheckAbsent rejects any of names that carries a non-blank value. Routes use it
// for parameters their path already fixes.
func CheckAbsent(params map[string][]string, reason string, names ...string) error {
	for _, name := range names {
		if first(params, name) != "" {
			return domain.NewValidationError(name, reason)
		}
	}
	return nil
}

// ParseBool accepts true, 1, yes, y and on in any case. Everything else is false.
func ParseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// ParseDecimal parses a finite decimal for param.
func ParseDecimal(param, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.Invalidf(param, "must be a number, got %q", raw)
	}
	return v, nil
}

func parseFilter(params map[string][]string) (filter.Filter, error) {
	price, err := parseRange(params, ParamMinPrice, ParamMaxPrice)
	if err != nil {
		return filter.Filter{}, err
	}
	rating, err := parseRange(params, ParamMinRating, ParamMaxRating)
	if err != nil {
		return filter.Filter{}, err
	}

	var tags []string
	for _, t := range params[ParamTag] {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return filter.Filter{
		Category: first(params, ParamCategory),
		Vendor:   first(params, ParamVendor),
		Price:    price,
		Rating:   rating,
		Tags:     tags,
		Text:     first(params, ParamText),
	}, nil
}

func parseRange(params map[string][]string, minParam, maxParam string) (filter.Range, error) {
	var lo, hi *float64
	if raw := first(params, minParam); raw != "" {
		v, err := ParseDecimal(minParam, raw)
		if err != nil {
			return filter.Range{}, err
		}
		lo = &v
	}
	if raw := first(params, maxParam); raw != "" {
		v, err := ParseDecimal(maxParam, raw)
		if err != nil {
			return filter.Range{}, err
		}
		hi = &v
	}
	return filter.NewRange(lo, hi), nil
}

func parsePagination(params map[string][]string, lim Limits) (page.Pagination, error) {
	pageRaw, sizeRaw := first(params, ParamPage), first(params, ParamPageSize)
	if pageRaw != "" || sizeRaw != "" {
		n, err := parseInt(ParamPage, pageRaw, 1)
		if err != nil {
			return page.Pagination{}, err
		}
		size, err := parseInt(ParamPageSize, sizeRaw, lim.DefaultPageSize)
		if err != nil {
			return page.Pagination{}, err
		}
		p, err := page.NewNumbered(n, min(size, lim.MaxPageSize))
		if err != nil {
			return page.Pagination{}, err
		}
		return p, nil
	}

	offset, err := parseInt(ParamOffset, first(params, ParamOffset), 0)
	if err != nil {
		return page.Pagination{}, err
	}
	limit, err := parseInt(ParamLimit, first(params, ParamLimit), lim.DefaultPageSize)
	if err != nil {
		return page.Pagination{}, err
	}
	p, err := page.NewOffset(offset, min(limit, lim.MaxPageSize))
	if err != nil {
		return page.Pagination{}, err
	}
	return p, nil
}

func parseInt(param, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Invalidf(param, "must be an integer, got %q", raw)
	}
	return v, nil
}

// first returns the first value of name, trimmed; "" when absent.
func first(params map[string][]string, name string) string {
	vs := params[name]
	if len(vs) == 0 {
		return ""
	}
	return strings.TrimSpace(vs[0])
}
