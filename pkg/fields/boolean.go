package fields

import (
	"strings"

	"github.com/goliatone/go-fieldkit/pkg/field"
)

// Boolean is a checkbox.
type Boolean struct {
	*field.Field
}

// NewBoolean builds a Boolean field. Declared attributes: true_label,
// false_label.
func NewBoolean(title string, opts ...field.Option) (*Boolean, error) {
	return field.Make(newBoolean, title, opts...)
}

func newBoolean(base *field.Field) *Boolean {
	base.Declare("true_label", "Yes")
	base.Declare("false_label", "No")
	return &Boolean{Field: base}
}

// Type implements field.Descriptor.
func (*Boolean) Type() string { return TypeBoolean }

// Checked reports the truthiness of the current value.
func (b *Boolean) Checked() bool {
	return Truthy(b.Value())
}

// OnPage exposes checked and the matching label on every page.
func (b *Boolean) OnPage(field.Page) map[string]any {
	key := "false_label"
	if b.Checked() {
		key = "true_label"
	}
	label, _ := b.Attribute(key)
	return map[string]any{
		"checked": b.Checked(),
		"label":   label,
	}
}

// FormatInput hands formatters the value as a bool.
func (b *Boolean) FormatInput() (any, any) {
	if record := b.Record(); record != nil {
		return b.Checked(), record
	}
	return b.Checked(), nil
}

// Truthy interprets common boolean encodings: bools, non-zero numbers and the
// strings 1, true, yes, on.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true
		default:
			return false
		}
	default:
		number, ok := toFloat(v)
		return ok && number != 0
	}
}
