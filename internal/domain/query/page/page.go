// Package page slices an ordered result into one page and describes it.
package page

import (
	"github.com/kailas-cloud/catalog/internal/domain"
	"github.com/kailas-cloud/catalog/internal/domain/item"
)

// Mode is the pagination style.
type Mode string

// Pagination modes.
const (
	// Offset is 0-based offset/limit paging.
	Offset Mode = "offset"
	// Numbered is 1-based page/page_size paging.
	Numbered Mode = "page"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Offset || m == Numbered
}

// Pagination is exactly one paging mode with its parameters.
type Pagination struct {
	mode   Mode
	offset int
	limit  int
	page   int
	size   int
}

// NewOffset creates offset/limit pagination. offset >= 0, limit >= 1.
func NewOffset(offset, limit int) (Pagination, error) {
	if offset < 0 {
		return Pagination{}, domain.NewValidationError("offset", "must be >= 0")
	}
	if limit < 1 {
		return Pagination{}, domain.NewValidationError("limit", "must be >= 1")
	}
	return Pagination{mode: Offset, offset: offset, limit: limit}, nil
}

// NewNumbered creates page/page_size pagination. page >= 1, size >= 1.
func NewNumbered(page, size int) (Pagination, error) {
	if page < 1 {
		return Pagination{}, domain.NewValidationError("page", "must be >= 1")
	}
	if size < 1 {
		return Pagination{}, domain.NewValidationError("page_size", "must be >= 1")
	}
	return Pagination{mode: Numbered, page: page, size: size}, nil
}

// Mode returns the paging style.
func (p Pagination) Mode() Mode { return p.mode }

// Offset returns the 0-based start (offset mode).
func (p Pagination) Offset() int { return p.offset }

// Limit returns the window length (offset mode).
func (p Pagination) Limit() int { return p.limit }

// Page returns the 1-based page number (page mode).
func (p Pagination) Page() int { return p.page }

// Size returns the page size (page mode).
func (p Pagination) Size() int { return p.size }

// Window describes the slice a Pagination cut out of a result.
type Window struct {
	Mode     Mode
	Offset   int
	Limit    int
	Page     int
	PageSize int
	// Total is the number of items before paging.
	Total    int
	Pages    int
	Returned int
	HasNext  bool
	HasPrev  bool
}

// Apply returns the requested slice of items (sharing the backing array) and its window.
// A start beyond the end yields an empty page, never an error.
func (p Pagination) Apply(items []item.Item) ([]item.Item, Window) {
	total := len(items)
	w := Window{Mode: p.mode, Total: total}

	var start, end int
	switch p.mode {
	case Numbered:
		start, end = total, total
		if p.page-1 <= total/p.size {
			start = (p.page - 1) * p.size
			end = start + p.size
		}
		w.Page = p.page
		w.PageSize = p.size
		w.Pages = (total + p.size - 1) / p.size
		w.HasNext = p.page < w.Pages
		w.HasPrev = p.page > 1
	default:
		start, end = total, total
		if p.offset < total {
			start = p.offset
			end = start + min(p.limit, total)
		}
		w.Offset = p.offset
		w.Limit = p.limit
		w.HasNext = p.offset < total && p.limit < total-p.offset
	}

	start = min(start, total)
	end = min(end, total)
	out := items[start:end]
	w.Returned = len(out)
	return out, w
}
