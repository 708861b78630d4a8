package domain

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is a validated pagination request.
type Page struct {
	Page  int
	Limit int
}

// NewPage validates page and limit; both must be at least 1.
func NewPage(page, limit int) (Page, error) {
	if page < 1 || limit < 1 {
		return Page{}, ErrInvalidPagination
	}
	return Page{Page: page, Limit: limit}, nil
}

// Skip is the number of records before this page.
func (p Page) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// TotalPages for total records at this page size.
func (p Page) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
