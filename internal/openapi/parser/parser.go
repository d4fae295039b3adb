package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-fieldkit/pkg/field"
	pkgopenapi "github.com/goliatone/go-fieldkit/pkg/openapi"
	"github.com/goliatone/go-fieldkit/pkg/schema"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	if options.TextareaThreshold <= 0 {
		options.TextareaThreshold = pkgopenapi.DefaultTextareaThreshold
	}
	return &Parser{options: options}
}

// Components lists the component schema names of doc.
func (p *Parser) Components(ctx context.Context, doc pkgopenapi.Document) ([]string, error) {
	schemas, err := p.schemas(ctx, doc)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Definitions maps the properties of component to a schema resource named
// after the component.
func (p *Parser) Definitions(ctx context.Context, doc pkgopenapi.Document, component string) (schema.Resource, error) {
	component = strings.TrimSpace(component)
	if component == "" {
		return schema.Resource{}, errors.New("openapi parser: component name is required")
	}

	schemas, err := p.schemas(ctx, doc)
	if err != nil {
		return schema.Resource{}, err
	}
	ref, ok := schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return schema.Resource{}, fmt.Errorf("openapi parser: component %q not found", component)
	}

	src := ref.Value
	resource := schema.Resource{
		Name:   field.NormalizeID(component),
		Source: doc.Location(),
	}
	for _, name := range propertyOrder(src) {
		if err := ctx.Err(); err != nil {
			return schema.Resource{}, err
		}
		def, ok, err := p.definition(name, src.Properties[name])
		if err != nil {
			return schema.Resource{}, fmt.Errorf("openapi parser: component %q property %q: %w", component, name, err)
		}
		if ok {
			resource.Fields = append(resource.Fields, def)
		}
	}
	return resource, nil
}

func (p *Parser) schemas(ctx context.Context, doc pkgopenapi.Document) (openapi3.Schemas, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}

	parsed, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.ResolveReferences {
		if err := parsed.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if parsed.Components == nil || len(parsed.Components.Schemas) == 0 {
		return nil, errors.New("openapi parser: document does not define component schemas")
	}
	return parsed.Components.Schemas, nil
}

// propertyOrder lists required properties in declaration order, then the
// remaining ones sorted by name.
func propertyOrder(src *openapi3.Schema) []string {
	seen := make(map[string]bool, len(src.Properties))
	order := make([]string, 0, len(src.Properties))
	for _, name := range src.Required {
		if _, ok := src.Properties[name]; ok && !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}

	rest := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}
