package fieldkit

import (
	"context"

	"github.com/goliatone/go-fieldkit/pkg/field"
	pkgopenapi "github.com/goliatone/go-fieldkit/pkg/openapi"
	"github.com/goliatone/go-fieldkit/pkg/orchestrator"
	"github.com/goliatone/go-fieldkit/pkg/schema"
)

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GeneratePage renders page for a resource of store using the default
// renderer.
func GeneratePage(ctx context.Context, store *schema.Store, resource string, page field.Page, records []field.Record, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithSchemaStore(store)}, options...)...)
	return gen.Generate(ctx, orchestrator.Request{
		Resource: resource,
		Page:     page,
		Records:  records,
	})
}

// GenerateFromComponent loads the OpenAPI source and renders page for the
// named component schema.
func GenerateFromComponent(ctx context.Context, source pkgopenapi.Source, component string, page field.Page, records []field.Record, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:    source,
		Component: component,
		Page:      page,
		Records:   records,
	})
}
