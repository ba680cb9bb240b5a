// Package order implements the stable multi-key item sort.
package order

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kailas-cloud/catalog/internal/domain"
	"github.com/kailas-cloud/catalog/internal/domain/item"
)

// Param is the query parameter carrying sort keys.
const Param = "sort_by"

// Key is one (field, direction) sort key.
type Key struct {
	field item.Field
	desc  bool
}

// NewKey validates that f is sortable.
func NewKey(f item.Field, desc bool) (Key, error) {
	if !f.Sortable() {
		return Key{}, domain.Invalidf(Param, "field %q is not sortable", f)
	}
	return Key{field: f, desc: desc}, nil
}

// MustKey is NewKey for compile-time constant keys.
func MustKey(f item.Field, desc bool) Key {
	k, err := NewKey(f, desc)
	if err != nil {
		panic(err)
	}
	return k
}

// Field returns the sort field.
func (k Key) Field() item.Field { return k.field }

// Desc reports descending direction.
func (k Key) Desc() bool { return k.desc }

// String renders the key in sort_by syntax.
func (k Key) String() string {
	if k.desc {
		return "-" + string(k.field)
	}
	return string(k.field)
}

// Default orderings.
var (
	// DefaultList is newest first, then by name.
	DefaultList = []Key{MustKey(item.FieldCreatedAt, true), MustKey(item.FieldName, false)}
	// DefaultRelated is best rated first, then cheapest.
	DefaultRelated = []Key{MustKey(item.FieldRating, true), MustKey(item.FieldPrice, false)}
)

// ParseKeys parses a comma-separated list such as "price,-rating,name".
// Blank tokens are skipped; unknown or unsortable fields are rejected.
func ParseKeys(raw string) ([]Key, error) {
	var keys []Key
	for tok := range strings.SplitSeq(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		desc := false
		if name, ok := strings.CutPrefix(tok, "-"); ok {
			desc = true
			tok = name
		}
		f, ok := item.ParseField(tok)
		if !ok {
			return nil, domain.Invalidf(Param, "unknown sort field %q", tok)
		}
		k, err := NewKey(f, desc)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Sort orders items in place. Items equal on every key keep their relative order.
func Sort(items []item.Item, keys []Key) {
	if len(keys) == 0 {
		return
	}
	slices.SortStableFunc(items, func(a, b item.Item) int {
		return Compare(&a, &b, keys)
	})
}

// Sorted returns a sorted copy and leaves items untouched.
func Sorted(items []item.Item, keys []Key) []item.Item {
	out := slices.Clone(items)
	Sort(out, keys)
	return out
}

// Compare compares two items key by key.
func Compare(a, b *item.Item, keys []Key) int {
	for _, k := range keys {
		if c := compareField(a, b, k); c != 0 {
			return c
		}
	}
	return 0
}

// compareField puts missing values last in both directions.
func compareField(a, b *item.Item, k Key) int {
	aMissing, bMissing := missing(a, k.field), missing(b, k.field)
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return 1
	case bMissing:
		return -1
	}

	var c int
	switch k.field.Kind() {
	case item.KindNumber:
		c = cmp.Compare(number(a, k.field), number(b, k.field))
	case item.KindText:
		c = strings.Compare(text(a, k.field), text(b, k.field))
	case item.KindTime:
		c = a.CreatedAt.Compare(b.CreatedAt)
	}
	if k.desc {
		return -c
	}
	return c
}

func missing(it *item.Item, f item.Field) bool {
	switch f.Kind() {
	case item.KindText:
		return text(it, f) == ""
	case item.KindTime:
		return it.CreatedAt.IsZero()
	default:
		return false
	}
}

func number(it *item.Item, f item.Field) float64 {
	switch f {
	case item.FieldPrice:
		return it.Price
	case item.FieldRating:
		return it.Rating
	case item.FieldStock:
		return float64(it.Stock)
	}
	return 0
}

func text(it *item.Item, f item.Field) string {
	switch f {
	case item.FieldID:
		return it.ID
	case item.FieldName:
		return it.Name
	case item.FieldCategory:
		return it.Category
	case item.FieldVendor:
		return it.Vendor
	}
	return ""
}
