// Package listview derives the displayed subset of a fetched list from
// search, structured filters, and pagination state. It never mutates the
// source slice.
package listview

import "strings"

const (
	DefaultPageSize = 25
)

var DefaultPageSizeOptions = []int{25, 50, 100}

// Page is one visible slice of a filtered list.
type Page[T any] struct {
	Items      []T
	Total      int // filtered count, across all pages
	Number     int // effective 1-based page, after clamping
	TotalPages int
	PageSize   int
}

// ShowControls reports whether pagination controls should render at all;
// they are hidden when the filtered list fits on a single page.
func (p Page[T]) ShowControls() bool {
	return p.TotalPages > 1 || p.Total > p.PageSize
}

// View holds the query state for one list: search text, current page, and
// page size. Changing the search or the page size resets to page 1 so the
// view never lands silently on an out-of-range page.
type View struct {
	search   string
	page     int
	pageSize int
}

func NewView(pageSize int) *View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &View{page: 1, pageSize: pageSize}
}

func (v *View) Search() string { return v.search }
func (v *View) PageSize() int  { return v.pageSize }
func (v *View) PageNumber() int {
	return v.page
}

func (v *View) SetSearch(query string) {
	if query == v.search {
		return
	}
	v.search = query
	v.page = 1
}

func (v *View) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.page = page
}

func (v *View) SetPageSize(size int) {
	if size < 1 {
		size = DefaultPageSize
	}
	if size == v.pageSize {
		return
	}
	v.pageSize = size
	v.page = 1
}

// Apply runs search then pagination over items. fields extracts the strings
// the search matches against; a nil fields func disables search.
func Apply[T any](v *View, items []T, fields func(T) []string) Page[T] {
	filtered := Search(items, v.search, fields)
	return Paginate(filtered, v.page, v.pageSize)
}

// Search keeps the items whose fields contain query, case-insensitively.
// An empty or whitespace query returns items unchanged.
func Search[T any](items []T, query string, fields func(T) []string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || fields == nil {
		return items
	}
	var result []T
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), query) {
				result = append(result, item)
				break
			}
		}
	}
	return result
}

// Filter keeps the items for which keep returns true.
func Filter[T any](items []T, keep func(T) bool) []T {
	var result []T
	for _, item := range items {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}

// Paginate slices items for a 1-based page, clamping the page into range.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page[T]{
		Items:      items[start:end],
		Total:      total,
		Number:     page,
		TotalPages: totalPages,
		PageSize:   pageSize,
	}
}
