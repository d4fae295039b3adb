// Package render defines the renderer contract shared by the page and terminal
// renderers and a registry to select them by name.
package render

import (
	"context"

	"github.com/goliatone/go-fieldkit/pkg/field"
	"github.com/goliatone/go-fieldkit/pkg/sorting"
)

// Renderer turns a field set and its records into bytes (HTML, JSON, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, req Request) ([]byte, error)
}

// Request describes one page render.
type Request struct {
	// Resource names the records, e.g. "blog_post". Index pages caption it.
	Resource string
	Page     field.Page
	Fields   *field.Set
	// Records holds every row on index pages. Edit and view pages render the
	// first record, or an unbound form when empty.
	Records []field.Record
	// Sort marks sortable index columns. With SortBy set, index rows are
	// ordered before rendering.
	Sort      *sorting.Registry
	SortBy    string
	Direction sorting.Direction
	// Action is the edit form target.
	Action string
}

// Record returns the first record, nil when there is none.
func (r Request) Record() field.Record {
	if len(r.Records) == 0 {
		return nil
	}
	return r.Records[0]
}
