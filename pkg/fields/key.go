package fields

import "github.com/goliatone/go-fieldkit/pkg/field"

// Key prints the raw value. Its templates are the fallback for every other
// type.
type Key struct {
	*field.Field
}

// NewKey builds a Key field.
func NewKey(title string, opts ...field.Option) (*Key, error) {
	return field.Make(newKey, title, opts...)
}

func newKey(base *field.Field) *Key {
	return &Key{Field: base}
}

// Type implements field.Descriptor.
func (*Key) Type() string { return TypeKey }
