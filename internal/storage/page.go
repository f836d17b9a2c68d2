package storage

import (
	"context"
	"errors"

	"gestidoc/internal/search"
)

// PageQuery selects one bounded slice of a filtered collection. Page is
// 1-indexed. An empty Query matches everything.
type PageQuery struct {
	Query    string
	Page     int
	PageSize int
}

// Page is one slice of a filtered collection. TotalCount counts every match
// across the whole collection, not just the returned slice.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
}

// TotalPages returns how many pages of the given size the match set spans.
func (p Page[T]) TotalPages(pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(pageSize) - 1) / int64(pageSize))
}

// GetPage filters and counts in SQL, then returns at most q.PageSize
// records. The filter matches case- and accent-insensitively against the
// collection's normalized search column. Asking for a page past the last
// one is not an error: it yields an empty slice and the true total. Results
// are ordered by id so a fixed query walks every record exactly once across
// pages.
func (c *Collection[T]) GetPage(ctx context.Context, q PageQuery) (Page[T], error) {
	if q.Page < 1 || q.PageSize < 1 {
		return Page[T]{}, ErrBadPage
	}
	if c.searchColumn == "" {
		return Page[T]{}, wrap("page", errors.New("collection has no search column"))
	}

	var zero T
	tx := c.db.WithContext(ctx).Model(&zero)
	if needle := search.Normalize(q.Query); needle != "" {
		tx = tx.Where(c.searchColumn+" LIKE ?", "%"+needle+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return Page[T]{}, wrap("page_count", err)
	}

	items := []T{}
	err := tx.Order("id").
		Limit(q.PageSize).
		Offset((q.Page - 1) * q.PageSize).
		Find(&items).Error
	if err != nil {
		return Page[T]{}, wrap("page_find", err)
	}
	return Page[T]{Items: items, TotalCount: total}, nil
}
