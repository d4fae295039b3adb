package field

import "strings"

// Page names one of the admin view contexts a field renders into.
type Page string

const (
	PageIndex Page = "index"
	PageEdit  Page = "edit"
	PageView  Page = "view"
)

// Pages returns the recognized pages in their canonical order.
func Pages() []Page {
	return []Page{PageIndex, PageEdit, PageView}
}

// Valid reports whether p is one of the recognized pages.
func (p Page) Valid() bool {
	switch p {
	case PageIndex, PageEdit, PageView:
		return true
	default:
		return false
	}
}

// ParsePage normalises raw (trimmed, lower-cased) and reports whether the
// result is a recognized page.
func ParsePage(raw string) (Page, bool) {
	page := Page(strings.ToLower(strings.TrimSpace(raw)))
	return page, page.Valid()
}

func defaultVisibility() map[Page]bool {
	visibility := make(map[Page]bool, 3)
	for _, page := range Pages() {
		visibility[page] = true
	}
	return visibility
}
