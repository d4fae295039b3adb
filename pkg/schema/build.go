package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-fieldkit/pkg/field"
	"github.com/goliatone/go-fieldkit/pkg/fields"
)

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	types *field.TypeRegistry
	sorts field.SortRegistry
}

// WithTypes resolves definition types through types instead of the built-in
// fields registry.
func WithTypes(types *field.TypeRegistry) BuildOption {
	return func(cfg *buildConfig) {
		if types != nil {
			cfg.types = types
		}
	}
}

// WithSortRegistry registers sortable definitions with sorts.
func WithSortRegistry(sorts field.SortRegistry) BuildOption {
	return func(cfg *buildConfig) {
		cfg.sorts = sorts
	}
}

// Build turns resource into a field set in definition order.
func Build(resource Resource, options ...BuildOption) (*field.Set, error) {
	cfg := buildConfig{types: fields.Registry()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	set, err := field.NewSet()
	if err != nil {
		return nil, err
	}
	for idx, def := range resource.Fields {
		d, err := def.build(cfg)
		if err != nil {
			return nil, fmt.Errorf("schema: resource %q field %d: %w", resource.Name, idx, err)
		}
		if err := set.Add(d); err != nil {
			return nil, fmt.Errorf("schema: resource %q: %w", resource.Name, err)
		}
	}
	return set, nil
}

// Build constructs the descriptor for def using the built-in fields registry.
func (def Definition) Build(options ...BuildOption) (field.Descriptor, error) {
	cfg := buildConfig{types: fields.Registry()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return def.build(cfg)
}

func (def Definition) build(cfg buildConfig) (field.Descriptor, error) {
	typeName := strings.TrimSpace(def.Type)
	if typeName == "" {
		typeName = DefaultType
	}

	var opts []field.Option
	if id := strings.TrimSpace(def.ID); id != "" {
		opts = append(opts, field.WithID(id))
	}
	if def.Description != "" {
		opts = append(opts, field.WithDescription(def.Description))
	}

	d, err := cfg.types.Make(typeName, def.Title, opts...)
	if err != nil {
		return nil, err
	}
	base := d.Base()

	if def.HideLabel {
		base.HideLabel(true)
	}
	if len(def.ShowOn) > 0 {
		base.HideOnPages(field.Pages()...)
		base.ShowOnPages(parsePages(def.ShowOn)...)
	}
	base.HideOnPages(parsePages(def.HideOn)...)

	if err := base.SetAttributes(def.Attributes); err != nil {
		return nil, fmt.Errorf("field %q: %w", base.ID(), err)
	}
	if def.Sortable {
		base.EnableSort(cfg.sorts, nil)
	}
	return d, nil
}

func parsePages(raw []string) []field.Page {
	pages := make([]field.Page, 0, len(raw))
	for _, value := range raw {
		if page, ok := field.ParsePage(value); ok {
			pages = append(pages, page)
		}
	}
	return pages
}
