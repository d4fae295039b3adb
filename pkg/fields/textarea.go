package fields

import "github.com/goliatone/go-fieldkit/pkg/field"

// Textarea is a multi-line input.
type Textarea struct {
	*field.Field
}

// NewTextarea builds a Textarea field. Declared attributes: rows, placeholder.
func NewTextarea(title string, opts ...field.Option) (*Textarea, error) {
	return field.Make(newTextarea, title, opts...)
}

func newTextarea(base *field.Field) *Textarea {
	base.Declare("rows", 5)
	base.Declare("placeholder", "")
	return &Textarea{Field: base}
}

// Type implements field.Descriptor.
func (*Textarea) Type() string { return TypeTextarea }
