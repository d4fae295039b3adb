package field

import (
	"fmt"
	"path"
)

const (
	// TemplateRoot prefixes every field template name.
	TemplateRoot = "fields"
	// FallbackType names the generic template family used when a type has no
	// partial for a page.
	FallbackType = "Key"
)

// Views locates and renders field templates by logical name, e.g.
// "fields/text/edit".
type Views interface {
	Exists(name string) bool
	Render(name string, data map[string]any) (string, error)
}

// TemplateName returns the logical template for typeName on page.
func TemplateName(typeName string, page Page) string {
	return path.Join(TemplateRoot, NormalizeType(typeName), string(page))
}

// ResolveTemplate returns the type specific template for page when views has
// it, otherwise the fallback template. It fails with ErrTemplateNotFound when
// neither exists.
func ResolveTemplate(views Views, typeName string, page Page) (string, error) {
	specific := TemplateName(typeName, page)
	if views.Exists(specific) {
		return specific, nil
	}
	fallback := TemplateName(FallbackType, page)
	if views.Exists(fallback) {
		return fallback, nil
	}
	return "", fmt.Errorf("%w: %s (fallback %s)", ErrTemplateNotFound, specific, fallback)
}

// Context returns the template context for page: the descriptor under
// "field", the bound record under "record", merged with the OnPage hook
// output.
func (f *Field) Context(page Page) (map[string]any, error) {
	d, err := f.Descriptor()
	if err != nil {
		return nil, err
	}
	data := map[string]any{
		"field":  d,
		"record": f.record,
	}
	for key, value := range d.OnPage(page) {
		data[key] = value
	}
	return data, nil
}

// Render produces the output for page. A custom formatter, when attached, is
// called with the FormatInput hook values and its result returned as is.
// Otherwise the page template is resolved through views and rendered with
// Context(page).
func (f *Field) Render(views Views, page Page) (string, error) {
	d, err := f.Descriptor()
	if err != nil {
		return "", err
	}

	if f.format != nil {
		value, context := d.FormatInput()
		out, err := f.callFormatter(value, context)
		if err != nil {
			return "", fmt.Errorf("field: format %q: %w", f.id, err)
		}
		return out, nil
	}

	if views == nil {
		return "", fmt.Errorf("field: views are required to render %q", f.id)
	}

	data, err := f.Context(page)
	if err != nil {
		return "", err
	}

	name, err := ResolveTemplate(views, d.Type(), page)
	if err != nil {
		return "", err
	}

	out, err := views.Render(name, data)
	if err != nil {
		return "", fmt.Errorf("field: render %q with %s: %w", f.id, name, err)
	}
	return out, nil
}
