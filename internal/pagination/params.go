package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Validation limits and sort orders.
const (
	MaxLimit      = 1000
	MaxPageSize   = 1000
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Validation errors.
var (
	ErrInvalidLimit         = errors.New("limit must be between 0 and 1000")
	ErrInvalidPageSize      = errors.New("page-size must be between 1 and 1000")
	ErrInvalidOffset        = errors.New("offset must be non-negative")
	ErrInvalidPage          = errors.New("page must be >= 1")
	ErrInvalidSortOrder     = errors.New("sort order must be 'asc' or 'desc'")
	ErrMixedPaginationModes = errors.New("cannot use both offset-based (offset) and page-based (page) pagination")
	ErrPageSizeWithoutPage  = errors.New("page-size requires page to be set")
	ErrInvalidSortFormat    = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'value:desc')")
	ErrEmptySortField       = errors.New("sort field cannot be empty")
	ErrInvalidSortField     = errors.New("invalid sort field")
)

// Params selects a window of a result list and its ordering.
// Two modes are supported and are mutually exclusive:
//   - Offset-based: Limit and Offset
//   - Page-based: Page and PageSize
//
// A zero Limit in offset mode means no limit.
type Params struct {
	Limit    int
	Offset   int
	Page     int
	PageSize int

	// SortField is empty to keep table order.
	SortField string
	SortOrder string
}

// Validate checks bounds and mode consistency.
func (p Params) Validate() error {
	switch {
	case p.Limit < 0 || p.Limit > MaxLimit:
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, p.Limit)
	case p.Offset < 0:
		return fmt.Errorf("%w: got %d", ErrInvalidOffset, p.Offset)
	case p.Page < 0:
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	case p.PageSize < 0 || p.PageSize > MaxPageSize:
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	case p.Page > 0 && p.Offset > 0:
		return ErrMixedPaginationModes
	case p.Page == 0 && p.PageSize > 0:
		return ErrPageSizeWithoutPage
	case p.Page > 0 && p.PageSize == 0:
		return fmt.Errorf("%w when page is set", ErrInvalidPageSize)
	}
	if p.SortOrder != "" && p.SortOrder != SortOrderAsc && p.SortOrder != SortOrderDesc {
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, p.SortOrder)
	}
	return nil
}

// IsPageBased reports whether page-based pagination is active.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// IsEnabled reports whether any window is requested.
func (p Params) IsEnabled() bool {
	return p.Limit > 0 || p.Offset > 0 || p.Page > 0
}

// OffsetLimit returns the effective offset and limit. A zero limit means
// everything after offset.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (p Params) OffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Apply returns the window of items selected by p. It never modifies items.
// Offsets beyond the end yield an empty slice.
func Apply[T any](p Params, items []T) []T {
	offset, limit := p.OffsetLimit()
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses "field" or "field:order". The order defaults to asc.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", SortOrderAsc, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = SortOrderAsc
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}
