package vanilla

import (
	"fmt"
	"maps"

	"github.com/goliatone/go-fieldkit/pkg/field"
)

// RenderField renders the partial of one bound field for page. Formatter
// output is sanitised with the renderer policy since it bypasses template
// escaping.
func (r *Renderer) RenderField(d field.Descriptor, page field.Page) (string, error) {
	base := d.Base()

	if !base.HasFormat() && r.logger != nil {
		specific := field.TemplateName(d.Type(), page)
		if !r.views.Exists(specific) {
			r.logger.Debug("vanilla renderer: using fallback template",
				"field", base.ID(),
				"type", d.Type(),
				"template", field.TemplateName(field.FallbackType, page),
			)
		}
	}

	out, err := base.Render(r.views, page)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: %w", err)
	}
	if base.HasFormat() {
		out = r.policy.Sanitize(out)
	}
	return out, nil
}

func (r *Renderer) renderWithChrome(d field.Descriptor, page field.Page) (string, error) {
	control, err := r.RenderField(d, page)
	if err != nil {
		return "", err
	}

	data := map[string]any{
		"field":   d,
		"html":    control,
		"page":    string(page),
		"classes": chromeClasses(),
	}
	if r.theme != nil {
		data["theme"] = map[string]any{
			"name":    r.theme.Theme,
			"variant": r.theme.Variant,
			"tokens":  maps.Clone(r.theme.Tokens),
		}
	}

	out, err := r.templates.RenderTemplate("chrome/field", data)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render chrome for %q: %w", d.Base().ID(), err)
	}
	return out, nil
}
