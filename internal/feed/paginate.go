package feed

// Paginator slices a filtered report sequence into fixed-size pages.
// The page size is fixed at construction time; page numbers are 1-based
// and always clamped into the valid range, never rejected.
type Paginator struct {
	pageSize int
}

// NewPaginator returns a paginator with the given page size. Sizes below
// one are treated as one.
func NewPaginator(pageSize int) Paginator {
	if pageSize < 1 {
		pageSize = 1
	}
	return Paginator{pageSize: pageSize}
}

// PageSize returns the fixed page size.
func (p Paginator) PageSize() int {
	return p.pageSize
}

// TotalPages returns ceil(total/pageSize), and at least 1 even for an
// empty sequence so there is always a valid current page.
func (p Paginator) TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + p.pageSize - 1) / p.pageSize
}

// Clamp resolves a requested page number into [1, TotalPages(total)].
func (p Paginator) Clamp(page, total int) int {
	if page < 1 {
		return 1
	}
	if max := p.TotalPages(total); page > max {
		return max
	}
	return page
}

// Bounds returns the half-open slice interval [start, end) covered by the
// given page after clamping.
func (p Paginator) Bounds(page, total int) (start, end int) {
	page = p.Clamp(page, total)
	start = (page - 1) * p.pageSize
	end = start + p.pageSize
	if end > total {
		end = total
	}
	if start > total {
		start = total
	}
	return start, end
}

// Page returns the reports on the given page after clamping. The
// concatenation of pages 1..TotalPages reproduces the input exactly.
func (p Paginator) Page(reports []Report, page int) []Report {
	start, end := p.Bounds(page, len(reports))
	return reports[start:end]
}
