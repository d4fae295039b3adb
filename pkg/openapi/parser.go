package openapi

import (
	"context"

	"github.com/goliatone/go-fieldkit/pkg/schema"
)

// Vendor extensions read from component properties.
const (
	// ExtensionHidden lists the pages a property is hidden on. A single page
	// name or true (every page) are accepted too.
	ExtensionHidden = "x-admin-hidden"
	// ExtensionSortable marks the property as a sortable index column.
	ExtensionSortable = "x-admin-sortable"
	// ExtensionType overrides the field type derived from the schema.
	ExtensionType = "x-admin-type"
)

// DefaultTextareaThreshold is the maxLength above which strings render as
// textareas.
const DefaultTextareaThreshold = 255

// Parser maps component schemas of an OpenAPI document to resource
// definitions.
type Parser interface {
	// Components lists the component schema names, sorted.
	Components(ctx context.Context, doc Document) ([]string, error)
	// Definitions maps the properties of component to field definitions.
	// Required properties come first in declaration order, the rest sorted by
	// name. Object and array properties are skipped.
	Definitions(ctx context.Context, doc Document, component string) (schema.Resource, error)
}

// ParserOptions exposes parser toggles.
type ParserOptions struct {
	// ResolveReferences allows external $ref pointers and validates the
	// document after loading. Defaults to true.
	ResolveReferences bool

	// TextareaThreshold is the maxLength above which string properties map to
	// textarea fields.
	TextareaThreshold int
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles reference resolution and validation.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithTextareaThreshold sets the maxLength above which strings become
// textareas. Non positive values keep the default.
func WithTextareaThreshold(length int) ParserOption {
	return func(opts *ParserOptions) {
		if length > 0 {
			opts.TextareaThreshold = length
		}
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ResolveReferences: true,
		TextareaThreshold: DefaultTextareaThreshold,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
