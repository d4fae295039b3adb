// Package sorting tracks the sortable columns of a scaffolded listing and
// orders records by them.
package sorting

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-fieldkit/pkg/field"
)

// Direction selects ascending or descending order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection reads "asc"/"desc" (any case). Anything else is ascending.
func ParseDirection(raw string) Direction {
	if strings.EqualFold(strings.TrimSpace(raw), string(Descending)) {
		return Descending
	}
	return Ascending
}

// Registry stores sortable column ids with optional comparators. It satisfies
// field.SortRegistry so fields can toggle themselves.
type Registry struct {
	mu      sync.RWMutex
	columns map[string]field.SortFunc
}

var _ field.SortRegistry = (*Registry)(nil)

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		columns: make(map[string]field.SortFunc),
	}
}

// AddSortable marks id sortable. A nil cmp orders by attribute value with
// Compare. Registering an id again replaces its comparator.
func (r *Registry) AddSortable(id string, cmp field.SortFunc) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.columns[id] = cmp
}

// RemoveSortable unmarks id. Unknown ids are ignored.
func (r *Registry) RemoveSortable(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.columns, strings.TrimSpace(id))
}

// IsSortable reports whether id is registered.
func (r *Registry) IsSortable(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.columns[id]
	return ok
}

// Sortables returns the registered ids, sorted.
func (r *Registry) Sortables() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.columns))
	for id := range r.columns {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Comparator returns the ordering used for id.
func (r *Registry) Comparator(id string) (field.SortFunc, bool) {
	r.mu.RLock()
	custom, ok := r.columns[id]
	r.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if custom != nil {
		return custom, true
	}
	return func(a, b field.Record) int {
		return Compare(attribute(a, id), attribute(b, id))
	}, true
}

// Sort orders records in place by column id. The sort is stable, so equal
// records keep their relative order in both directions.
func (r *Registry) Sort(records []field.Record, id string, direction Direction) error {
	compare, ok := r.Comparator(id)
	if !ok {
		return fmt.Errorf("sorting: column %q is not sortable", id)
	}
	slices.SortStableFunc(records, func(a, b field.Record) int {
		if direction == Descending {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return nil
}

func attribute(record field.Record, id string) any {
	if record == nil {
		return nil
	}
	return record.GetAttribute(id)
}

// Compare orders attribute values: nil first, then numbers, times, booleans
// (false first) and strings. Values of different kinds fall back to comparing
// their printed forms.
func Compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if x, ok := field.Float(a); ok {
		if y, ok := field.Float(b); ok {
			return cmp.Compare(x, y)
		}
	}

	switch x := a.(type) {
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
