package fields

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-fieldkit/pkg/field"
)

// Choice is one selectable option of an Enum.
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// Enum is a select input over a fixed list of choices.
type Enum struct {
	*field.Field
}

// NewEnum builds an Enum field. Declared attributes: options, empty_label.
// options accepts []Choice, []string, map[string]string, map[string]any or
// []any holding strings or {value, label} maps.
func NewEnum(title string, opts ...field.Option) (*Enum, error) {
	return field.Make(newEnum, title, opts...)
}

func newEnum(base *field.Field) *Enum {
	base.Declare("options", nil)
	base.Declare("empty_label", "")
	return &Enum{Field: base}
}

// Type implements field.Descriptor.
func (*Enum) Type() string { return TypeEnum }

// Choices returns the configured options with the current value selected.
func (e *Enum) Choices() []Choice {
	raw, _ := e.Attribute("options")
	choices := Choices(raw)

	current := ""
	if value := e.Value(); value != nil {
		current = fmt.Sprint(value)
	}
	for idx := range choices {
		choices[idx].Selected = choices[idx].Value == current
	}
	return choices
}

// SelectedLabel returns the label of the selected choice, or the raw value
// when it matches none.
func (e *Enum) SelectedLabel() string {
	for _, choice := range e.Choices() {
		if choice.Selected {
			return choice.Label
		}
	}
	if value := e.Value(); value != nil {
		return fmt.Sprint(value)
	}
	return ""
}

// OnPage exposes the choices and the selected label.
func (e *Enum) OnPage(field.Page) map[string]any {
	return map[string]any{
		"options":        e.Choices(),
		"selected_label": e.SelectedLabel(),
	}
}

// Choices normalises the supported option encodings. Map encodings are sorted
// by value.
func Choices(raw any) []Choice {
	switch v := raw.(type) {
	case nil:
		return nil
	case []Choice:
		return append([]Choice(nil), v...)
	case []string:
		out := make([]Choice, 0, len(v))
		for _, value := range v {
			out = append(out, Choice{Value: value, Label: value})
		}
		return out
	case map[string]string:
		out := make([]Choice, 0, len(v))
		for value, label := range v {
			out = append(out, Choice{Value: value, Label: label})
		}
		sortChoices(out)
		return out
	case map[string]any:
		out := make([]Choice, 0, len(v))
		for value, label := range v {
			out = append(out, Choice{Value: value, Label: fmt.Sprint(label)})
		}
		sortChoices(out)
		return out
	case []any:
		out := make([]Choice, 0, len(v))
		for _, item := range v {
			if choice, ok := choiceFromAny(item); ok {
				out = append(out, choice)
			}
		}
		return out
	default:
		return nil
	}
}

func choiceFromAny(item any) (Choice, bool) {
	switch v := item.(type) {
	case nil:
		return Choice{}, false
	case Choice:
		return v, true
	case map[string]any:
		value, ok := v["value"]
		if !ok || value == nil {
			return Choice{}, false
		}
		choice := Choice{Value: fmt.Sprint(value)}
		if label, ok := v["label"]; ok && label != nil {
			choice.Label = fmt.Sprint(label)
		} else {
			choice.Label = choice.Value
		}
		return choice, true
	default:
		text := fmt.Sprint(v)
		return Choice{Value: text, Label: text}, true
	}
}

func sortChoices(choices []Choice) {
	sort.Slice(choices, func(i, j int) bool {
		return choices[i].Value < choices[j].Value
	})
}
