package chi

import (
	"time"

	domitem "github.com/kailas-cloud/catalog/internal/domain/item"
	"github.com/kailas-cloud/catalog/internal/domain/query/page"
	"github.com/kailas-cloud/catalog/internal/domain/query/result"
	"github.com/kailas-cloud/catalog/internal/domain/query/stats"
)

// ErrorCode is the machine-readable error code in the error envelope.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeAlreadyExists    ErrorCode = "already_exists"
	ErrorCodePayloadTooLarge  ErrorCode = "payload_too_large"
	ErrorCodeRateLimited      ErrorCode = "rate_limited"
	ErrorCodeInternal         ErrorCode = "internal_error"
)

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes one failed request.
type ErrorBody struct {
	Status    int       `json:"status"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp"`
}

// ListResponse is the body of every list endpoint.
type ListResponse struct {
	Data []any       `json:"data"`
	Meta ListMetaDTO `json:"meta"`
}

// ListMetaDTO carries the fields of the active paging mode only.
type ListMetaDTO struct {
	Mode              page.Mode    `json:"mode"`
	Offset            *int         `json:"offset,omitempty"`
	Limit             *int         `json:"limit,omitempty"`
	Page              *int         `json:"page,omitempty"`
	PageSize          *int         `json:"page_size,omitempty"`
	Pages             *int         `json:"pages,omitempty"`
	Total             int          `json:"total"`
	Returned          int          `json:"returned"`
	HasNext           bool         `json:"has_next"`
	HasPrev           *bool        `json:"has_prev,omitempty"`
	StatsOverPage     *stats.Stats `json:"stats_over_page,omitempty"`
	StatsOverFiltered *stats.Stats `json:"stats_over_filtered,omitempty"`
}

// RelatedResponse is the body of GET /items/{id}/related.
type RelatedResponse struct {
	BaseItem BaseItemDTO `json:"base_item"`
	Related  []any       `json:"related"`
}

// BaseItemDTO identifies the anchor of a related query.
type BaseItemDTO struct {
	ID       string `json:"id"`
	Category string `json:"category"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// CreateItemRequest is the body of POST /items.
type CreateItemRequest struct {
	ID         *string            `json:"id"`
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Price      float64            `json:"price"`
	Rating     *float64           `json:"rating"`
	Tags       []string           `json:"tags"`
	Stock      *int               `json:"stock"`
	Vendor     *string            `json:"vendor"`
	Attributes domitem.Attributes `json:"attributes"`
}

func listToDTO(p *result.Page) ListResponse {
	w := p.Meta.Window
	meta := ListMetaDTO{
		Mode:              w.Mode,
		Total:             w.Total,
		Returned:          w.Returned,
		HasNext:           w.HasNext,
		StatsOverPage:     p.Meta.StatsOverPage,
		StatsOverFiltered: p.Meta.StatsOverFiltered,
	}
	switch w.Mode {
	case page.Numbered:
		meta.Page = &w.Page
		meta.PageSize = &w.PageSize
		meta.Pages = &w.Pages
		meta.HasPrev = &w.HasPrev
	default:
		meta.Offset = &w.Offset
		meta.Limit = &w.Limit
	}

	data := p.Items
	if data == nil {
		data = []any{}
	}
	return ListResponse{Data: data, Meta: meta}
}

func relatedToDTO(r *result.Related) RelatedResponse {
	items := r.Items
	if items == nil {
		items = []any{}
	}
	return RelatedResponse{
		BaseItem: BaseItemDTO{ID: r.Base.ID, Category: r.Base.Category},
		Related:  items,
	}
}

func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
