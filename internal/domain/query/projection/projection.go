// Package projection narrows items to a caller-selected set of fields.
package projection

import (
	"slices"
	"strings"

	"github.com/kailas-cloud/catalog/internal/domain/item"
)

// Param is the query parameter carrying the allow-list.
const Param = "fields"

// Record is a projected item keyed by field name.
type Record map[string]any

// Fields is an ordered, de-duplicated allow-list. The zero value selects everything.
type Fields struct {
	list []item.Field
}

// New builds an allow-list, dropping duplicates.
func New(fields ...item.Field) Fields {
	var list []item.Field
	for _, f := range fields {
		if !slices.Contains(list, f) {
			list = append(list, f)
		}
	}
	return Fields{list: list}
}

// Parse reads a comma-separated list. Unknown names are dropped silently.
func Parse(raw string) Fields {
	var fields []item.Field
	for tok := range strings.SplitSeq(raw, ",") {
		if f, ok := item.ParseField(strings.TrimSpace(tok)); ok {
			fields = append(fields, f)
		}
	}
	return New(fields...)
}

// IsEmpty reports whether all fields are selected.
func (f Fields) IsEmpty() bool { return len(f.list) == 0 }

// List returns the selected fields.
func (f Fields) List() []item.Field { return slices.Clone(f.list) }

// Project returns it unchanged for an empty allow-list, otherwise a Record.
func (f Fields) Project(it item.Item) any {
	if f.IsEmpty() {
		return it
	}
	return f.Record(it)
}

// Record returns only the selected fields of it.
func (f Fields) Record(it item.Item) Record {
	rec := make(Record, len(f.list))
	for _, name := range f.list {
		if v, ok := it.Value(name); ok {
			rec[string(name)] = v
		}
	}
	return rec
}

// Apply projects every item, preserving order.
func (f Fields) Apply(items []item.Item) []any {
	out := make([]any, len(items))
	for i := range items {
		out[i] = f.Project(items[i])
	}
	return out
}
