package pagination

import "github.com/matst80/slask-discovery/pkg/types"

// TotalPages is ceil(totalItems / pageSize). Showing all items always gives
// a single page once there is anything to show.
func TotalPages(totalItems int, pageSize types.PageSize) int {
	if totalItems <= 0 {
		return 0
	}
	if pageSize == types.PageSizeAll {
		return 1
	}
	n := int(pageSize)
	if n <= 0 {
		n = int(types.DefaultPageSize)
	}
	return (totalItems + n - 1) / n
}

// Pagination tracks the current page against the latest known total. Until
// a total is known only the lower bound is enforced, so a page restored from
// a url survives the first request.
type Pagination struct {
	currentPage int
	totalItems  int
	totalPages  int
	pageSize    types.PageSize
	known       bool
}

func New(pageSize types.PageSize) *Pagination {
	return &Pagination{currentPage: 1, pageSize: pageSize}
}

func (p *Pagination) CurrentPage() int { return p.currentPage }
func (p *Pagination) TotalItems() int  { return p.totalItems }
func (p *Pagination) TotalPages() int  { return p.totalPages }

func (p *Pagination) clamp(page int) int {
	if p.known && page > p.totalPages {
		page = p.totalPages
	}
	return max(page, 1)
}

// SetCurrentPage clamps page into [1, totalPages] and reports whether the
// current page changed.
func (p *Pagination) SetCurrentPage(page int) bool {
	page = p.clamp(page)
	if page == p.currentPage {
		return false
	}
	p.currentPage = page
	return true
}

// Reset moves back to the first page, used whenever the filtered set changes.
func (p *Pagination) Reset() {
	p.currentPage = 1
}

// SetPageSize recomputes the page count and resets to the first page.
func (p *Pagination) SetPageSize(size types.PageSize) {
	p.pageSize = size
	p.totalPages = TotalPages(p.totalItems, size)
	p.currentPage = 1
}

// SetTotalItems records a new total and reports whether the current page had
// to be clamped to the new last page.
func (p *Pagination) SetTotalItems(total int) bool {
	p.totalItems = max(total, 0)
	p.totalPages = TotalPages(p.totalItems, p.pageSize)
	p.known = true
	page := p.clamp(p.currentPage)
	if page == p.currentPage {
		return false
	}
	p.currentPage = page
	return true
}

func (p *Pagination) Snapshot() types.PageState {
	return types.PageState{
		Page:       p.currentPage,
		TotalItems: p.totalItems,
		TotalPages: p.totalPages,
	}
}
