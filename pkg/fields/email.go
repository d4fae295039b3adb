package fields

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-fieldkit/pkg/field"
)

// Email is a text input for e-mail addresses, linked on read pages.
type Email struct {
	*field.Field
}

// NewEmail builds an Email field. Declared attributes: placeholder.
func NewEmail(title string, opts ...field.Option) (*Email, error) {
	return field.Make(newEmail, title, opts...)
}

func newEmail(base *field.Field) *Email {
	base.Declare("placeholder", "")
	return &Email{Field: base}
}

// Type implements field.Descriptor.
func (*Email) Type() string { return TypeEmail }

// OnPage adds the input type for edit and a mailto link for index and view.
func (e *Email) OnPage(page field.Page) map[string]any {
	switch page {
	case field.PageEdit:
		return map[string]any{"input_type": "email"}
	case field.PageIndex, field.PageView:
		address := strings.TrimSpace(fmt.Sprint(e.Value()))
		if e.Value() == nil || address == "" {
			return map[string]any{"mailto": ""}
		}
		return map[string]any{"mailto": "mailto:" + address}
	default:
		return nil
	}
}
