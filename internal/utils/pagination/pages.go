// Package pagination holds the arithmetic for explicit zero-based page
// requests. Listings serve exactly the page asked for; range checks belong to
// the caller.
package pagination

// DefaultPageSize is applied when a request leaves the page size unset.
const DefaultPageSize = 20

// MaxPageSize caps a single page to keep listing queries bounded.
const MaxPageSize = 200

// ClampPageSize normalizes a requested page size into [1, MaxPageSize],
// substituting DefaultPageSize for unset values.
func ClampPageSize(pageSize int) int {
	if pageSize <= 0 {
		return DefaultPageSize
	}
	if pageSize > MaxPageSize {
		return MaxPageSize
	}
	return pageSize
}

// TotalPages returns ceil(totalCount / pageSize). Zero items means zero
// pages.
func TotalPages(totalCount int64, pageSize int) int {
	if totalCount <= 0 || pageSize <= 0 {
		return 0
	}
	return int((totalCount + int64(pageSize) - 1) / int64(pageSize))
}

// Offset converts a zero-based page index to a row offset.
func Offset(page, pageSize int) int {
	if page <= 0 {
		return 0
	}
	return page * pageSize
}
