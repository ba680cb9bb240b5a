// Package filter holds the catalog predicates. All active predicates are ANDed.
package filter

import (
	"strings"

	"github.com/kailas-cloud/catalog/internal/domain/item"
)

// Range is an inclusive numeric range; a nil bound leaves that side open.
type Range struct {
	min *float64
	max *float64
}

// NewRange creates a range. min > max is allowed and matches nothing.
func NewRange(minVal, maxVal *float64) Range {
	return Range{min: minVal, max: maxVal}
}

// Min returns the lower bound.
func (r Range) Min() *float64 { return r.min }

// Max returns the upper bound.
func (r Range) Max() *float64 { return r.max }

// IsEmpty reports whether neither bound is set.
func (r Range) IsEmpty() bool { return r.min == nil && r.max == nil }

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	if r.min != nil && v < *r.min {
		return false
	}
	if r.max != nil && v > *r.max {
		return false
	}
	return true
}

// Filter is the predicate set of one query. Zero values mean "not filtered".
type Filter struct {
	Category string
	Vendor   string
	Price    Range
	Rating   Range
	// Tags must all be present on an item.
	Tags []string
	// Text is a case-insensitive substring tested against name, vendor, category and tags.
	Text string
}

// IsEmpty reports whether no predicate is active.
func (f Filter) IsEmpty() bool {
	return f.Category == "" && f.Vendor == "" && f.Price.IsEmpty() && f.Rating.IsEmpty() &&
		len(f.Tags) == 0 && f.Text == ""
}

// Matches reports whether it satisfies every active predicate.
func (f Filter) Matches(it *item.Item) bool {
	if f.Category != "" && it.Category != f.Category {
		return false
	}
	if f.Vendor != "" && it.Vendor != f.Vendor {
		return false
	}
	if !f.Price.Contains(it.Price) || !f.Rating.Contains(it.Rating) {
		return false
	}
	for _, t := range f.Tags {
		if !it.HasTag(t) {
			return false
		}
	}
	if f.Text != "" && !matchesText(it, strings.ToLower(f.Text)) {
		return false
	}
	return true
}

// Apply returns the items that match, in their original order.
func (f Filter) Apply(items []item.Item) []item.Item {
	if f.IsEmpty() {
		return items
	}
	out := make([]item.Item, 0, len(items))
	for i := range items {
		if f.Matches(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

func matchesText(it *item.Item, needle string) bool {
	if containsFold(it.Name, needle) || containsFold(it.Vendor, needle) || containsFold(it.Category, needle) {
		return true
	}
	for _, t := range it.Tags {
		if containsFold(t, needle) {
			return true
		}
	}
	return false
}

// containsFold expects needle already lowercased.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}
