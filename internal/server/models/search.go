package models

// SearchFilter selects journal rows across all dates. Empty fields do not
// constrain the result.
type SearchFilter struct {
	Content  string
	Note     string
	Page     int
	PageSize int
}

// SearchPage is one page of search results.
type SearchPage struct {
	Rows    []*Entry
	Page    int
	HasMore bool
	HasPrev bool
}
