// Package pagination slices ordered result sets into fixed-size pages.
//
// The engine is pure: a Paginator is immutable and a Page is derived entirely
// from (total, perPage, requested page number). Out-of-range requests clamp
// to the nearest valid page, so the only empty page is page 1 of an empty set.
package pagination

// DefaultPerPage is the page size used when the caller does not specify one.
const DefaultPerPage = 10

// Paginator describes an ordered result set of a known total size.
type Paginator struct {
	total   int
	perPage int
}

// Page is a bounded window into the result set plus navigation metadata.
// Offset and Limit feed directly into the query layer.
type Page struct {
	Number      int  `json:"page"`
	Offset      int  `json:"-"`
	Limit       int  `json:"-"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// New creates a Paginator over total items with the given page size.
// Non-positive sizes fall back to DefaultPerPage; a negative total is
// treated as empty.
func New(total, perPage int) Paginator {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if total < 0 {
		total = 0
	}
	return Paginator{total: total, perPage: perPage}
}

// TotalPages is ceil(total/perPage), never less than 1: an empty set still
// has one (empty) page.
func (p Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.perPage - 1) / p.perPage
}

// Page returns the n-th page, 1-based. n below 1 resolves to the first page
// and n past the end resolves to the last page.
func (p Paginator) Page(n int) Page {
	last := p.TotalPages()
	if n < 1 {
		n = 1
	}
	if n > last {
		n = last
	}

	offset := (n - 1) * p.perPage
	limit := p.perPage
	if remaining := p.total - offset; remaining < limit {
		limit = remaining
	}
	if limit < 0 {
		limit = 0
	}

	return Page{
		Number:      n,
		Offset:      offset,
		Limit:       limit,
		TotalItems:  p.total,
		TotalPages:  last,
		HasNext:     n < last,
		HasPrevious: n > 1,
	}
}
