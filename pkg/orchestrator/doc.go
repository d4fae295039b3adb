// Package orchestrator wires the definition source (a schema store or an
// OpenAPI component) to a field set and a named renderer behind a single
// entry point. The vanilla HTML renderer is registered by default.
package orchestrator
