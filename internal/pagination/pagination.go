// Package pagination slices ordered result sets into numbered pages.
package pagination

import (
	"github.com/gcbaptista/go-concordance/internal/errors"
)

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// TotalPages returns ceil(total / pageSize), or 0 when there is nothing to page.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns items[(page-1)*pageSize : page*pageSize] clipped to the
// bounds of items. A page past the last one fails with errors.ErrInvalidPage.
// An empty set has a single empty page 1.
func Paginate[T any](items []T, page, pageSize int) (Page[T], error) {
	if pageSize < 1 {
		return Page[T]{}, errors.NewValidationError("page_size", "page size must be greater than 0")
	}

	total := len(items)
	totalPages := TotalPages(total, pageSize)

	if page < 1 || page > max(totalPages, 1) {
		return Page[T]{}, errors.NewInvalidPageError(page, totalPages)
	}

	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	return Page[T]{
		Items:      items[start:end:end],
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
