package types

// Filter represents query parameters for filtering a projection listing.
// Cursor-based pagination: Cursor is the serial number after which to
// continue; Limit caps the page size.
type Filter struct {
	Search string            `json:"search,omitempty"`
	Filter map[string]string `json:"filter,omitempty"`
	Cursor string            `json:"cursor,omitempty"`
	Limit  uint64            `json:"limit"`
}

// Page is one page of a cursor-paginated listing.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}
