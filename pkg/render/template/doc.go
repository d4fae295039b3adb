// Package template defines the engine contract field renderers depend on.
// Concrete engines live in subpackages; gotemplate provides a pongo2 backed
// implementation.
package template
