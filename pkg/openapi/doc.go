// Package openapi describes how OpenAPI documents become field definitions.
// Loaders fetch raw documents from files, an fs.FS or HTTP; parsers map the
// properties of one component schema to schema.Definition values. The
// kin-openapi backed implementations live under internal/openapi and are
// constructed through the root fieldkit package.
package openapi
