package request

import (
	"github.com/kailas-cloud/catalog/internal/domain"
	"github.com/kailas-cloud/catalog/internal/domain/query/order"
	"github.com/kailas-cloud/catalog/internal/domain/query/projection"
)

// Related is a validated "related items" query.
type Related struct {
	limit  int
	keys   []order.Key
	fields projection.Fields
}

// NewRelated validates related-items parameters.
// limit < 0 is rejected; limit above lim.MaxRelatedLimit is clamped. Empty keys mean order.DefaultRelated.
func NewRelated(limit int, keys []order.Key, fields projection.Fields, lim Limits) (Related, error) {
	if limit < 0 {
		return Related{}, domain.NewValidationError(ParamLimit, "must be >= 0")
	}
	if len(keys) == 0 {
		keys = order.DefaultRelated
	}
	return Related{limit: min(limit, lim.MaxRelatedLimit), keys: keys, fields: fields}, nil
}

// ParseRelated reads limit, sort_by and fields. Any other name is rejected.
func ParseRelated(params map[string][]string, lim Limits) (Related, error) {
	if err := CheckKnown(params, RelatedParams...); err != nil {
		return Related{}, err
	}
	limit, err := parseInt(ParamLimit, first(params, ParamLimit), lim.DefaultRelatedLimit)
	if err != nil {
		return Related{}, err
	}
	keys, err := order.ParseKeys(first(params, ParamSortBy))
	if err != nil {
		return Related{}, err
	}
	return NewRelated(limit, keys, projection.Parse(first(params, ParamFields)), lim)
}

// Limit returns the maximum number of related items.
func (r *Related) Limit() int { return r.limit }

// Keys returns the candidate ordering.
func (r *Related) Keys() []order.Key { return r.keys }

// Fields returns the projection allow-list.
func (r *Related) Fields() projection.Fields { return r.fields }
