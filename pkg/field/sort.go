package field

// SortFunc orders two records for a sortable column, returning a negative
// number when a sorts first, zero when they tie and a positive number
// otherwise.
type SortFunc func(a, b Record) int

// SortRegistry tracks which columns of a listing can be sorted. It is owned by
// the scaffold module, not by fields.
type SortRegistry interface {
	AddSortable(id string, cmp SortFunc)
	RemoveSortable(id string)
}

// EnableSort registers the field id with registry. cmp may be nil to use the
// registry's default ordering.
func (f *Field) EnableSort(registry SortRegistry, cmp SortFunc) *Field {
	if registry != nil {
		registry.AddSortable(f.id, cmp)
	}
	return f
}

// DisableSort removes the field id from registry.
func (f *Field) DisableSort(registry SortRegistry) *Field {
	if registry != nil {
		registry.RemoveSortable(f.id)
	}
	return f
}
