package order

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/catalog/internal/domain"
	"github.com/kailas-cloud/catalog/internal/domain/item"
)

func ids(items []item.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func mustParse(t *testing.T, raw string) []Key {
	t.Helper()
	keys, err := ParseKeys(raw)
	require.NoError(t, err)
	return keys
}

// --- ParseKeys ---

func TestParseKeys(t *testing.T) {
	keys := mustParse(t, "price, -rating,,name")
	require.Len(t, keys, 3)
	assert.Equal(t, "price", keys[0].String())
	assert.Equal(t, "-rating", keys[1].String())
	assert.True(t, keys[1].Desc())
	assert.Equal(t, item.FieldName, keys[2].Field())
}

func TestParseKeys_Empty(t *testing.T) {
	assert.Empty(t, mustParse(t, ""))
	assert.Empty(t, mustParse(t, " , "))
}

func TestParseKeys_Rejects(t *testing.T) {
	for _, raw := range []string{"color", "-tags", "attributes", "Price"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseKeys(raw)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, Param, ve.Param)
		})
	}
}

// --- Sort ---

func TestSort_MultiKey(t *testing.T) {
	items := []item.Item{
		{ID: "a", Category: "books", Price: 20},
		{ID: "b", Category: "toys", Price: 10},
		{ID: "c", Category: "books", Price: 5},
		{ID: "d", Category: "toys", Price: 30},
	}
	Sort(items, mustParse(t, "-category,price"))
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(items))
}

func TestSort_NumericNotLexical(t *testing.T) {
	items := []item.Item{{ID: "a", Stock: 100}, {ID: "b", Stock: 9}, {ID: "c", Stock: 20}}
	Sort(items, mustParse(t, "stock"))
	assert.Equal(t, []string{"b", "c", "a"}, ids(items))
}

func TestSort_TextIsCaseSensitive(t *testing.T) {
	items := []item.Item{{ID: "a", Name: "apple"}, {ID: "b", Name: "Banana"}, {ID: "c", Name: "cherry"}}
	Sort(items, mustParse(t, "name"))
	assert.Equal(t, []string{"b", "a", "c"}, ids(items))
}

func TestSort_StableOnTies(t *testing.T) {
	items := []item.Item{
		{ID: "1", Rating: 4}, {ID: "2", Rating: 5}, {ID: "3", Rating: 4}, {ID: "4", Rating: 5}, {ID: "5", Rating: 4},
	}
	Sort(items, mustParse(t, "-rating"))
	assert.Equal(t, []string{"2", "4", "1", "3", "5"}, ids(items))
}

func TestSort_Idempotent(t *testing.T) {
	items, err := item.Sample(200, 42)
	require.NoError(t, err)
	for _, raw := range []string{"price", "-rating,price", "category,-stock", "vendor,name,-created_at"} {
		t.Run(raw, func(t *testing.T) {
			keys := mustParse(t, raw)
			once := Sorted(items, keys)
			twice := Sorted(once, keys)
			assert.Equal(t, ids(once), ids(twice))
		})
	}
}

func TestSort_MissingLastBothDirections(t *testing.T) {
	items := []item.Item{{ID: "x"}, {ID: "a", Vendor: "Acme"}, {ID: "y"}, {ID: "g", Vendor: "Globex"}}

	asc := Sorted(items, mustParse(t, "vendor"))
	assert.Equal(t, []string{"a", "g", "x", "y"}, ids(asc))

	desc := Sorted(items, mustParse(t, "-vendor"))
	assert.Equal(t, []string{"g", "a", "x", "y"}, ids(desc))
}

func TestSort_CreatedAt(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []item.Item{
		{ID: "old", CreatedAt: base},
		{ID: "none"},
		{ID: "new", CreatedAt: base.Add(time.Hour)},
	}
	assert.Equal(t, []string{"new", "old", "none"}, ids(Sorted(items, DefaultList)))
}

func TestSorted_LeavesInputUntouched(t *testing.T) {
	items := []item.Item{{ID: "b", Price: 2}, {ID: "a", Price: 1}}
	_ = Sorted(items, mustParse(t, "price"))
	assert.Equal(t, []string{"b", "a"}, ids(items))
}

func TestDefaultRelated(t *testing.T) {
	items := []item.Item{
		{ID: "1", Rating: 4, Price: 30},
		{ID: "2", Rating: 4.5, Price: 90},
		{ID: "3", Rating: 4, Price: 10},
	}
	assert.Equal(t, []string{"2", "3", "1"}, ids(Sorted(items, DefaultRelated)))
}

func TestNewKey_Unsortable(t *testing.T) {
	_, err := NewKey(item.FieldTags, false)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Panics(t, func() { MustKey(item.FieldAttributes, true) })
}
