package fields

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-fieldkit/pkg/field"
)

// Number is a numeric input.
type Number struct {
	*field.Field
}

// NewNumber builds a Number field. Declared attributes: min, max, step,
// precision. A negative precision prints the shortest representation.
func NewNumber(title string, opts ...field.Option) (*Number, error) {
	return field.Make(newNumber, title, opts...)
}

func newNumber(base *field.Field) *Number {
	base.Declare("min", nil)
	base.Declare("max", nil)
	base.Declare("step", 1)
	base.Declare("precision", -1)
	return &Number{Field: base}
}

// Type implements field.Descriptor.
func (*Number) Type() string { return TypeNumber }

// OnPage adds the formatted value on index and view, and the printed min/max
// bounds that are set on edit.
func (n *Number) OnPage(page field.Page) map[string]any {
	if page == field.PageEdit {
		bounds := map[string]string{}
		for _, key := range []string{"min", "max"} {
			raw, _ := n.Attribute(key)
			if printed := FormatNumber(raw, -1); printed != "" {
				bounds[key] = printed
			}
		}
		return map[string]any{"bounds": bounds}
	}
	precision := -1
	if raw, ok := n.Attribute("precision"); ok {
		if value, ok := toFloat(raw); ok {
			precision = int(value)
		}
	}
	return map[string]any{"formatted": FormatNumber(n.Value(), precision)}
}

// Bounds returns the numeric min and max attributes, nil when unset.
func (n *Number) Bounds() (lower, upper *float64) {
	if raw, ok := n.Attribute("min"); ok {
		if value, ok := toFloat(raw); ok {
			lower = &value
		}
	}
	if raw, ok := n.Attribute("max"); ok {
		if value, ok := toFloat(raw); ok {
			upper = &value
		}
	}
	return lower, upper
}

// Integer reports whether the field prints without decimals.
func (n *Number) Integer() bool {
	raw, _ := n.Attribute("precision")
	value, ok := toFloat(raw)
	return ok && value == 0
}

// FormatNumber prints value with precision decimals, or the shortest form when
// precision is negative. Non numeric values print as empty strings.
func FormatNumber(value any, precision int) string {
	number, ok := toFloat(value)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(number, 'f', precision, 64)
}

func toFloat(value any) (float64, bool) {
	if number, ok := field.Float(value); ok {
		return number, true
	}
	text, ok := value.(string)
	if !ok {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
