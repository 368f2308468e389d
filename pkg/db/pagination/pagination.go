// Package pagination implements offset paging for list reads. Count always
// reflects the total matching rows, whatever page was requested.
package pagination

const (
	DefaultLimit = 10
	MaxLimit     = 250
)

type Pagination struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit,default=10"`
	Page   int `form:"page,default=1"`
}

// Normalize clamps the limit into [1, maxLimit] and defaults the page to 1.
func (p Pagination) Normalize(maxLimit int) Pagination {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Skip returns the row offset: an explicit Offset wins, otherwise it is
// derived from the page number.
func (p Pagination) Skip() int {
	if p.Offset > 0 {
		return p.Offset
	}
	return (p.Page - 1) * p.Limit
}

// Page is one page of results plus the total row count.
type Page[T any] struct {
	Data  []*T  `json:"data"`
	Count int64 `json:"count"`
	Limit int   `json:"limit"`
	Page  int   `json:"page"`
}
