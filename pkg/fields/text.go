package fields

import "github.com/goliatone/go-fieldkit/pkg/field"

// Text is a single line input.
type Text struct {
	*field.Field
}

// NewText builds a Text field. Declared attributes: placeholder, maxlength.
func NewText(title string, opts ...field.Option) (*Text, error) {
	return field.Make(newText, title, opts...)
}

func newText(base *field.Field) *Text {
	base.Declare("placeholder", "")
	base.Declare("maxlength", 0)
	return &Text{Field: base}
}

// Type implements field.Descriptor.
func (*Text) Type() string { return TypeText }

// OnPage exposes the input type on the edit page.
func (t *Text) OnPage(page field.Page) map[string]any {
	if page != field.PageEdit {
		return nil
	}
	return map[string]any{"input_type": "text"}
}
