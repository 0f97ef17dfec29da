package ports

const (
	DefaultPage    = 0
	DefaultSize    = 10
	DefaultSortBy  = "id"
	DefaultSortDir = "asc"
	MaxPageSize    = 100
)

// ListQuery carries pagination and sorting for list and search operations.
type ListQuery struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// Normalized returns a copy of q with out-of-range values replaced by defaults.
func (q ListQuery) Normalized() ListQuery {
	if q.Page < 0 {
		q.Page = DefaultPage
	}
	if q.Size <= 0 || q.Size > MaxPageSize {
		q.Size = DefaultSize
	}
	if q.SortBy == "" {
		q.SortBy = DefaultSortBy
	}
	if q.SortDir != "desc" {
		q.SortDir = DefaultSortDir
	}
	return q
}

// Offset returns the number of records to skip for the requested page.
func (q ListQuery) Offset() int64 {
	return int64(q.Page) * int64(q.Size)
}
