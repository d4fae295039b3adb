// Package fieldkit describes admin resource fields once and renders them on
// the index, edit and view pages.
//
// Fields are built in code through the pkg/fields constructors, from JSON/YAML
// definition files (pkg/schema) or from OpenAPI component schemas
// (pkg/openapi). The root package exposes the default OpenAPI loader and
// parser plus the embedded page templates; pkg/orchestrator wires a source to
// the vanilla HTML renderer.
package fieldkit
