// Package pagination holds the list query contract shared by every
// paginated view: search term, filters, page and page size in, a page of
// rows and the total row count out.
package pagination

import (
	"maps"
	"strings"
)

// AllSentinel as a filter value means "no constraint on this dimension".
const AllSentinel = "all"

// Query is one paginated, filtered list request. Page is 1-based.
type Query struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

// Normalize clamps Page to at least 1 and PageSize into (0, maxSize].
func (q Query) Normalize(defaultSize, maxSize int) Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultSize
	}
	if maxSize > 0 && q.PageSize > maxSize {
		q.PageSize = maxSize
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// Offset is the number of rows skipped before this page.
func (q Query) Offset() int {
	if q.Page < 1 || q.PageSize <= 0 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// Limit is the page size.
func (q Query) Limit() int {
	return q.PageSize
}

// ActiveFilters drops empty values and the "all" sentinel.
func (q Query) ActiveFilters() map[string]string {
	active := make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		v = strings.TrimSpace(v)
		if v == "" || strings.EqualFold(v, AllSentinel) {
			continue
		}
		active[k] = v
	}
	return active
}

// WithFilter sets one filter and goes back to the first page.
func (q Query) WithFilter(key, value string) Query {
	filters := maps.Clone(q.Filters)
	if filters == nil {
		filters = make(map[string]string, 1)
	}
	filters[key] = value
	q.Filters = filters
	q.Page = 1
	return q
}

// WithSearch replaces the search term and goes back to the first page.
func (q Query) WithSearch(search string) Query {
	q.Search = strings.TrimSpace(search)
	q.Page = 1
	return q
}

// TotalPages is ceil(totalCount/pageSize), never less than 1.
func TotalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 1
	}
	pages := (totalCount + int64(pageSize) - 1) / int64(pageSize)
	if pages < 1 {
		return 1
	}
	return int(pages)
}

// Counted is embedded in row types selected together with a
// COUNT(*) OVER() window column.
type Counted struct {
	TotalCount int64 `db:"total_count" json:"-"`
}

// Total returns the window count carried by the row.
func (c Counted) Total() int64 {
	return c.TotalCount
}

// Row is any row type that carries the window total.
type Row interface {
	Total() int64
}

// Page is one page of rows plus the total the rows were drawn from.
type Page[T any] struct {
	Rows       []T
	TotalCount int64
	Page       int
	PageSize   int
}

// NewPage builds a page for q. A nil rows slice becomes empty.
func NewPage[T any](rows []T, totalCount int64, q Query) *Page[T] {
	if rows == nil {
		rows = []T{}
	}
	return &Page[T]{Rows: rows, TotalCount: totalCount, Page: q.Page, PageSize: q.PageSize}
}

// TotalPages of the result set this page belongs to.
func (p *Page[T]) TotalPages() int {
	return TotalPages(p.TotalCount, p.PageSize)
}

// Meta describes where this page sits for navigation controls.
func (p *Page[T]) Meta() Meta {
	nav := Navigator{query: Query{Page: p.Page, PageSize: p.PageSize}, totalPages: p.TotalPages(), totalCount: p.TotalCount}
	return nav.Meta()
}

// Meta is serialized next to list responses.
type Meta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
	PrevPage   int   `json:"prev_page"`
	NextPage   int   `json:"next_page"`
}
