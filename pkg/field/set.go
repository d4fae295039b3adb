package field

import "fmt"

// Set is an ordered collection of descriptors with unique ids, typically the
// columns of one scaffolded resource.
type Set struct {
	order []Descriptor
	index map[string]int
}

// NewSet builds a set from fields, failing on a duplicate id.
func NewSet(fields ...Descriptor) (*Set, error) {
	set := &Set{index: make(map[string]int, len(fields))}
	for _, d := range fields {
		if err := set.Add(d); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Add appends d.
func (s *Set) Add(d Descriptor) error {
	if d == nil || d.Base() == nil {
		return fmt.Errorf("field: cannot add a nil descriptor")
	}
	id := d.Base().ID()
	if _, exists := s.index[id]; exists {
		return fmt.Errorf("%w %q", ErrDuplicateID, id)
	}
	s.index[id] = len(s.order)
	s.order = append(s.order, d)
	return nil
}

// Get returns the descriptor with id.
func (s *Set) Get(id string) (Descriptor, bool) {
	idx, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.order[idx], true
}

// Replace swaps the descriptor holding d's id for d, keeping its position.
// It pairs with TypeRegistry.Switch.
func (s *Set) Replace(d Descriptor) error {
	if d == nil || d.Base() == nil {
		return fmt.Errorf("field: cannot replace with a nil descriptor")
	}
	id := d.Base().ID()
	idx, ok := s.index[id]
	if !ok {
		return fmt.Errorf("field: no field with id %q", id)
	}
	s.order[idx] = d
	return nil
}

// Len returns the number of fields.
func (s *Set) Len() int {
	return len(s.order)
}

// All returns the fields in insertion order.
func (s *Set) All() []Descriptor {
	return append([]Descriptor(nil), s.order...)
}

// VisibleOn returns the fields visible on page, in order.
func (s *Set) VisibleOn(page Page) []Descriptor {
	out := make([]Descriptor, 0, len(s.order))
	for _, d := range s.order {
		if d.Base().IsVisibleOnPage(page) {
			out = append(out, d)
		}
	}
	return out
}

// Bind binds record to every field.
func (s *Set) Bind(record Record) *Set {
	for _, d := range s.order {
		d.Base().Bind(record)
	}
	return s
}
