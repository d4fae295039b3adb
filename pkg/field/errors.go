package field

import "errors"

var (
	// ErrEmptyID is returned when neither a title nor an id is supplied.
	ErrEmptyID = errors.New("field: id is required")
	// ErrUnknownAttribute is returned when setting an attribute the field type
	// never declared.
	ErrUnknownAttribute = errors.New("field: unknown attribute")
	// ErrUnknownType is returned by TypeRegistry lookups for unregistered names.
	ErrUnknownType = errors.New("field: unknown field type")
	// ErrTemplateNotFound is returned when neither the type specific nor the
	// fallback template exists for a page.
	ErrTemplateNotFound = errors.New("field: template not found")
	// ErrDuplicateID is returned when a Set already holds a field with the id.
	ErrDuplicateID = errors.New("field: duplicate field id")
	// ErrDetached is returned when a Field was not built through Make.
	ErrDetached = errors.New("field: descriptor not constructed through a factory")
)
