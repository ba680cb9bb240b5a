package item

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/catalog/internal/domain"
)

func TestClone_IsDeep(t *testing.T) {
	orig := Item{ID: "a", Tags: []string{"pro"}, Attributes: Attributes{"color": "red"}}
	cp := orig.Clone()

	cp.Tags[0] = "lite"
	cp.Attributes["color"] = "blue"

	assert.Equal(t, "pro", orig.Tags[0])
	assert.Equal(t, "red", orig.Attributes["color"])
}

func TestClone_NilStaysNil(t *testing.T) {
	cp := Item{ID: "a"}.Clone()
	assert.Nil(t, cp.Tags)
	assert.Nil(t, cp.Attributes)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		it    Item
		param string
	}{
		{"ok", Item{ID: "a", Price: 10, Rating: 5}, ""},
		{"empty id", Item{Price: 1}, "id"},
		{"negative price", Item{ID: "a", Price: -1}, "price"},
		{"rating above scale", Item{ID: "a", Rating: 5.01}, "rating"},
		{"negative rating", Item{ID: "a", Rating: -0.1}, "rating"},
		{"negative stock", Item{ID: "a", Stock: -1}, "stock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.it.Validate()
			if tt.param == "" {
				require.NoError(t, err)
				return
			}
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.param, ve.Param)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestValue_CoversEveryField(t *testing.T) {
	it := Item{ID: "a", Name: "n", Stock: 3}
	for _, f := range Fields() {
		_, ok := it.Value(f)
		assert.True(t, ok, "field %s", f)
	}
	_, ok := it.Value("nope")
	assert.False(t, ok)
}

func TestParseField(t *testing.T) {
	f, ok := ParseField("price")
	require.True(t, ok)
	assert.Equal(t, FieldPrice, f)
	assert.True(t, f.Sortable())

	_, ok = ParseField("Price")
	assert.False(t, ok)

	assert.False(t, FieldTags.Sortable())
	assert.False(t, FieldAttributes.Sortable())
	assert.Equal(t, KindTime, FieldCreatedAt.Kind())
}

func TestSample_Deterministic(t *testing.T) {
	a, err := Sample(50, 42)
	require.NoError(t, err)
	b, err := Sample(50, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Sample(50, 7)
	require.NoError(t, err)
	assert.NotEqual(t, a[0].ID, c[0].ID)
}

func TestSample_Invariants(t *testing.T) {
	items, err := Sample(200, 42)
	require.NoError(t, err)
	require.Len(t, items, 200)

	seen := make(map[string]bool)
	for i, it := range items {
		require.NoError(t, it.Validate())
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true

		assert.GreaterOrEqual(t, it.Price, 5.0)
		assert.LessOrEqual(t, it.Price, 1500.0)
		assert.GreaterOrEqual(t, it.Rating, 1.0)
		assert.NotEmpty(t, it.Tags)
		assert.LessOrEqual(t, len(it.Tags), 4)
		assert.Len(t, it.Attributes["sku"], 8)
		if i > 0 {
			assert.True(t, it.CreatedAt.After(items[i-1].CreatedAt))
		}
	}
}

func TestDefaultVendor_Stable(t *testing.T) {
	v := DefaultVendor("Swift Widget 101")
	assert.Equal(t, v, DefaultVendor("Swift Widget 101"))
	assert.Contains(t, SampleVendors, v)
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 12.35, Round2(12.345), 1e-9)
	assert.InDelta(t, 20.0, Round2(20), 1e-9)
}
