package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	internalLoader "github.com/goliatone/go-fieldkit/internal/openapi/loader"
	internalParser "github.com/goliatone/go-fieldkit/internal/openapi/parser"
	"github.com/goliatone/go-fieldkit/pkg/field"
	"github.com/goliatone/go-fieldkit/pkg/fields"
	pkgopenapi "github.com/goliatone/go-fieldkit/pkg/openapi"
	"github.com/goliatone/go-fieldkit/pkg/render"
	"github.com/goliatone/go-fieldkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-fieldkit/pkg/schema"
	"github.com/goliatone/go-fieldkit/pkg/sorting"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithSchemaStore supplies definition files resolved by Request.Resource.
func WithSchemaStore(store *schema.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithTypes resolves definition types through a custom registry.
func WithTypes(types *field.TypeRegistry) Option {
	return func(o *Orchestrator) {
		o.types = types
	}
}

// WithRenderer registers a renderer and makes it the default for requests
// that do not name one.
func WithRenderer(renderer render.Renderer) Option {
	return func(o *Orchestrator) {
		if renderer != nil {
			o.renderers = append(o.renderers, renderer)
			o.defaultRenderer = renderer.Name()
		}
	}
}

// WithRegistry resolves Request.Renderer through a caller owned registry.
// Renderers passed with WithRenderer are added to it.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithTransformer registers a Transformer that mutates the field set after it
// is built and before it is rendered. Transformers run in registration order.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// Orchestrator coordinates the pipeline from a definition source to rendered
// output. Missing dependencies fall back to the built-in implementations.
type Orchestrator struct {
	loader        pkgopenapi.Loader
	parser        pkgopenapi.Parser
	store         *schema.Store
	types         *field.TypeRegistry
	registry      *render.Registry
	transformers  []Transformer
	initialiseErr error

	renderers       []render.Renderer
	defaultRenderer string
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one resolution and render.
type Request struct {
	// Resource names a resource of the schema store. When Component is set it
	// only overrides the caption.
	Resource string

	// Source and Document locate an OpenAPI document; Document bypasses the
	// loader.
	Source   pkgopenapi.Source
	Document *pkgopenapi.Document

	// Component selects the OpenAPI component schema.
	Component string

	Page      field.Page
	Records   []field.Record
	SortBy    string
	Direction sorting.Direction
	Action    string

	// Renderer names a registered renderer. Empty selects the default.
	Renderer string
}

// Result is the resolved field set with the registry its sortable columns
// were registered on.
type Result struct {
	Resource schema.Resource
	Fields   *field.Set
	Sort     *sorting.Registry
}

// Resolve builds the field set for req without rendering it.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if o.initialiseErr != nil {
		return Result{}, o.initialiseErr
	}

	resource, err := o.resolveResource(ctx, req)
	if err != nil {
		return Result{}, err
	}

	sorts := sorting.New()
	set, err := schema.Build(resource, schema.WithTypes(o.types), schema.WithSortRegistry(sorts))
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: build fields: %w", err)
	}
	for _, transformer := range o.transformers {
		if err := transformer.Transform(ctx, set); err != nil {
			return Result{}, fmt.Errorf("orchestrator: transform fields: %w", err)
		}
	}
	return Result{Resource: resource, Fields: set, Sort: sorts}, nil
}

// Generate resolves the field set and renders req.Page with the records.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	result, err := o.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	name := result.Resource.Name
	if req.Resource != "" {
		name = req.Resource
	}
	renderer, err := o.registry.Get(req.Renderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	output, err := renderer.Render(ctx, render.Request{
		Resource:  name,
		Page:      req.Page,
		Fields:    result.Fields,
		Records:   req.Records,
		Sort:      result.Sort,
		SortBy:    req.SortBy,
		Direction: req.Direction,
		Action:    req.Action,
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveResource(ctx context.Context, req Request) (schema.Resource, error) {
	if strings.TrimSpace(req.Component) != "" {
		doc, err := o.resolveDocument(ctx, req)
		if err != nil {
			return schema.Resource{}, err
		}
		resource, err := o.parser.Definitions(ctx, doc, req.Component)
		if err != nil {
			return schema.Resource{}, fmt.Errorf("orchestrator: parse definitions: %w", err)
		}
		return resource, nil
	}

	if req.Resource == "" {
		return schema.Resource{}, errors.New("orchestrator: resource or component is required")
	}
	resource, ok := o.store.Resource(req.Resource)
	if !ok {
		return schema.Resource{}, fmt.Errorf("orchestrator: resource %q not found", req.Resource)
	}
	return resource, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.types == nil {
		o.types = fields.Registry()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
	}
	for _, renderer := range o.renderers {
		if err := o.registry.Register(renderer); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: %w", err)
			return
		}
	}
	if !o.registry.Has("vanilla") {
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		if err := o.registry.Register(renderer); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: %w", err)
			return
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = "vanilla"
	}
	if err := o.registry.SetDefault(o.defaultRenderer); err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: %w", err)
	}
}
