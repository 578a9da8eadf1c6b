package pagination

import "context"

// Navigator tracks the current query and page count of a list view.
// Prev clamps at 1, Next clamps at the last page, and any filter or
// search change returns to page 1.
type Navigator struct {
	query      Query
	totalPages int
	totalCount int64
}

func NewNavigator(q Query) *Navigator {
	if q.Page < 1 {
		q.Page = 1
	}
	return &Navigator{query: q, totalPages: 1}
}

func (n *Navigator) Query() Query    { return n.query }
func (n *Navigator) Page() int       { return n.query.Page }
func (n *Navigator) TotalPages() int { return n.totalPages }

// SetTotal records a fresh total count.
func (n *Navigator) SetTotal(totalCount int64) {
	n.totalCount = totalCount
	n.totalPages = TotalPages(totalCount, n.query.PageSize)
}

// Fail resets the page count after a failed fetch.
func (n *Navigator) Fail() {
	n.totalCount = 0
	n.totalPages = 1
}

func (n *Navigator) HasPrev() bool { return n.query.Page > 1 }
func (n *Navigator) HasNext() bool { return n.query.Page < n.totalPages }

// Prev moves one page back, never below 1.
func (n *Navigator) Prev() int {
	if n.HasPrev() {
		n.query.Page--
	}
	return n.query.Page
}

// Next moves one page forward, never past the last page.
func (n *Navigator) Next() int {
	if n.HasNext() {
		n.query.Page++
	}
	return n.query.Page
}

// CanGoTo reports whether page is reachable with the current total.
func (n *Navigator) CanGoTo(page int) bool {
	return page >= 1 && page <= n.totalPages
}

// GoTo jumps to page if reachable and reports whether it moved.
func (n *Navigator) GoTo(page int) bool {
	if !n.CanGoTo(page) {
		return false
	}
	n.query.Page = page
	return true
}

func (n *Navigator) SetFilter(key, value string) {
	n.query = n.query.WithFilter(key, value)
}

func (n *Navigator) SetSearch(search string) {
	n.query = n.query.WithSearch(search)
}

// Meta snapshots the navigation state.
func (n *Navigator) Meta() Meta {
	m := Meta{
		Page:       n.query.Page,
		PageSize:   n.query.PageSize,
		TotalCount: n.totalCount,
		TotalPages: n.totalPages,
		HasPrev:    n.HasPrev(),
		HasNext:    n.HasNext(),
		PrevPage:   n.query.Page,
		NextPage:   n.query.Page,
	}
	if m.HasPrev {
		m.PrevPage = n.query.Page - 1
	}
	if m.HasNext {
		m.NextPage = n.query.Page + 1
	}
	return m
}

// FetchFunc loads one page for q.
type FetchFunc[T any] func(ctx context.Context, q Query) (*Page[T], error)

// List is the state of one list view: the navigator plus the rows last loaded.
type List[T any] struct {
	nav   *Navigator
	fetch FetchFunc[T]
	rows  []T
}

func NewList[T any](q Query, fetch FetchFunc[T]) *List[T] {
	return &List[T]{nav: NewNavigator(q), fetch: fetch, rows: []T{}}
}

func (l *List[T]) Navigator() *Navigator { return l.nav }
func (l *List[T]) Rows() []T             { return l.rows }

// Load fetches the navigator's current page. On failure the rows are
// emptied and the page count drops to 1 so nothing suggests more data.
func (l *List[T]) Load(ctx context.Context) error {
	page, err := l.fetch(ctx, l.nav.Query())
	if err != nil {
		l.rows = []T{}
		l.nav.Fail()
		return err
	}
	l.rows = page.Rows
	if l.rows == nil {
		l.rows = []T{}
	}
	l.nav.SetTotal(page.TotalCount)
	return nil
}

// Walk loads every page in order, handing each page's rows to fn.
func (l *List[T]) Walk(ctx context.Context, fn func(rows []T) error) error {
	if err := l.Load(ctx); err != nil {
		return err
	}
	for {
		if err := fn(l.rows); err != nil {
			return err
		}
		if !l.nav.HasNext() {
			return nil
		}
		l.nav.Next()
		if err := l.Load(ctx); err != nil {
			return err
		}
	}
}
