// Package pager holds the client-side state for a server-paginated list:
// current page, server-reported total, and the coupling rules between
// filters, page position, and in-flight fetches.
package pager

import "sync"

// Pager tracks one paginated collection. All list-backed pages share
// its invariants:
//
//   - the page is 1-based and clamped to [1, TotalPages]
//   - changing any filter resets the page to 1 (the old page position
//     is meaningless under a new filter)
//   - results are applied atomically, and only when they belong to the
//     newest fetch generation; an older, slower response can never
//     overwrite fresher data
type Pager[T any] struct {
	mu       sync.Mutex
	page     int
	pageSize int
	total    int
	items    []T
	filters  map[string]string
	gen      uint64
}

// New creates a pager on page 1 with the given page size.
func New[T any](pageSize int) *Pager[T] {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Pager[T]{
		page:     1,
		pageSize: pageSize,
		filters:  make(map[string]string),
	}
}

// Page returns the current 1-based page.
func (p *Pager[T]) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// PageSize returns the configured page size.
func (p *Pager[T]) PageSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageSize
}

// Total returns the server-reported item count.
func (p *Pager[T]) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// TotalPages derives the page count: ceil(total/pageSize), minimum 1.
func (p *Pager[T]) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalPagesLocked()
}

func (p *Pager[T]) totalPagesLocked() int {
	pages := (p.total + p.pageSize - 1) / p.pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Items returns the current page's items.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.items
}

// Filter returns the current value for a filter key.
func (p *Pager[T]) Filter(key string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters[key]
}

// SetFilter updates one filter criterion. Any actual change resets the
// page to 1 and invalidates in-flight fetches; setting the same value
// again is a no-op.
func (p *Pager[T]) SetFilter(key, value string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.filters[key] == value {
		return false
	}
	if value == "" {
		delete(p.filters, key)
	} else {
		p.filters[key] = value
	}
	p.page = 1
	p.gen++
	return true
}

// ClearFilters removes every filter and resets the page to 1.
func (p *Pager[T]) ClearFilters() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.filters) == 0 {
		return false
	}
	p.filters = make(map[string]string)
	p.page = 1
	p.gen++
	return true
}

// Next advances one page. Moving past the last known page is a no-op.
func (p *Pager[T]) Next() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.page >= p.totalPagesLocked() {
		return false
	}
	p.page++
	p.gen++
	return true
}

// Prev moves back one page. Moving before page 1 is a no-op.
func (p *Pager[T]) Prev() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.page <= 1 {
		return false
	}
	p.page--
	p.gen++
	return true
}

// Begin marks the start of a fetch for the current page/filter state
// and returns its generation token. Apply rejects results whose token
// is no longer current.
func (p *Pager[T]) Begin() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen
}

// Apply installs a fetch result. Items and total are replaced together,
// and the page is clamped if the new total leaves it out of range.
// Returns false, leaving state untouched, when the token is stale.
func (p *Pager[T]) Apply(token uint64, items []T, total int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if token != p.gen {
		return false
	}

	p.items = items
	p.total = total
	if max := p.totalPagesLocked(); p.page > max {
		p.page = max
	}
	return true
}
