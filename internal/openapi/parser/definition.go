package parser

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-fieldkit/pkg/field"
	"github.com/goliatone/go-fieldkit/pkg/fields"
	pkgopenapi "github.com/goliatone/go-fieldkit/pkg/openapi"
	"github.com/goliatone/go-fieldkit/pkg/schema"
)

// definition maps one property. The boolean is false for properties that have
// no field representation.
func (p *Parser) definition(name string, ref *openapi3.SchemaRef) (schema.Definition, bool, error) {
	if ref == nil || ref.Value == nil {
		return schema.Definition{}, false, nil
	}
	src := ref.Value

	typeName, attributes, ok := p.fieldType(src)
	if !ok {
		return schema.Definition{}, false, nil
	}
	if override, ok := src.Extensions[pkgopenapi.ExtensionType].(string); ok && strings.TrimSpace(override) != "" {
		typeName = field.NormalizeType(override)
		attributes = nil
	}

	def := schema.Definition{
		ID:          name,
		Title:       src.Title,
		Type:        typeName,
		Description: src.Description,
		Attributes:  attributes,
	}

	hidden, err := hiddenPages(src.Extensions[pkgopenapi.ExtensionHidden])
	if err != nil {
		return schema.Definition{}, false, err
	}
	if src.ReadOnly {
		hidden = appendPage(hidden, field.PageEdit)
	}
	if src.WriteOnly {
		hidden = appendPage(hidden, field.PageIndex)
		hidden = appendPage(hidden, field.PageView)
	}
	def.HideOn = hidden

	if sortable, ok := src.Extensions[pkgopenapi.ExtensionSortable].(bool); ok {
		def.Sortable = sortable
	}
	return def, true, nil
}

func (p *Parser) fieldType(src *openapi3.Schema) (string, map[string]any, bool) {
	if len(src.Enum) > 0 {
		return normalizedType(fields.TypeEnum), map[string]any{"options": enumOptions(src.Enum)}, true
	}

	switch schemaType(src.Type) {
	case openapi3.TypeString:
		switch {
		case src.Format == "email":
			return normalizedType(fields.TypeEmail), nil, true
		case src.Format == "textarea":
			return normalizedType(fields.TypeTextarea), nil, true
		case src.MaxLength != nil && int(*src.MaxLength) > p.options.TextareaThreshold:
			return normalizedType(fields.TypeTextarea), nil, true
		case src.MaxLength != nil:
			return normalizedType(fields.TypeText), map[string]any{"maxlength": int(*src.MaxLength)}, true
		default:
			return normalizedType(fields.TypeText), nil, true
		}
	case openapi3.TypeInteger, openapi3.TypeNumber:
		attributes := map[string]any{}
		if src.Min != nil {
			attributes["min"] = *src.Min
		}
		if src.Max != nil {
			attributes["max"] = *src.Max
		}
		if schemaType(src.Type) == openapi3.TypeInteger {
			attributes["precision"] = 0
		}
		return normalizedType(fields.TypeNumber), attributes, true
	case openapi3.TypeBoolean:
		return normalizedType(fields.TypeBoolean), nil, true
	default:
		return "", nil, false
	}
}

// enumOptions keeps declaration order, labelling each value with its
// humanized form, or the raw value when nothing survives humanizing.
func enumOptions(values []any) []any {
	out := make([]any, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		text := fmt.Sprint(value)
		label := field.Humanize(text)
		if label == "" {
			label = text
		}
		out = append(out, map[string]any{
			"value": text,
			"label": label,
		})
	}
	return out
}

func hiddenPages(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		if !v {
			return nil, nil
		}
		pages := make([]string, 0, len(field.Pages()))
		for _, page := range field.Pages() {
			pages = append(pages, string(page))
		}
		return pages, nil
	case string:
		return parsePages([]any{v})
	case []any:
		return parsePages(v)
	default:
		return nil, fmt.Errorf("%s must be a page name, a list of pages or a boolean", pkgopenapi.ExtensionHidden)
	}
}

func parsePages(values []any) ([]string, error) {
	var pages []string
	for _, value := range values {
		name, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%s entries must be strings", pkgopenapi.ExtensionHidden)
		}
		page, ok := field.ParsePage(name)
		if !ok {
			return nil, fmt.Errorf("%s references unknown page %q", pkgopenapi.ExtensionHidden, name)
		}
		pages = appendPage(pages, page)
	}
	return pages, nil
}

func appendPage(pages []string, page field.Page) []string {
	for _, existing := range pages {
		if existing == string(page) {
			return pages
		}
	}
	return append(pages, string(page))
}

func normalizedType(name string) string {
	return field.NormalizeType(name)
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != openapi3.TypeNull {
			return value
		}
	}
	return ""
}
