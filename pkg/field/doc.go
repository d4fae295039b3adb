// Package field defines the base descriptor shared by every admin scaffolding
// field type. A descriptor carries the identity of one record attribute (id,
// humanized title, description), its per-page visibility, a declared attribute
// schema and an optional custom formatter, and knows how to render itself for
// the index, edit and view pages through an injected Views service.
//
// Concrete types embed *Field and implement Descriptor. They are built through
// Make (or a TypeRegistry) so the base keeps a reference to the outer type and
// can dispatch the OnPage and FormatInput hooks:
//
//	type Text struct{ *field.Field }
//
//	func (*Text) Type() string { return "Text" }
//
//	text, err := field.Make(func(base *field.Field) *Text {
//		base.Declare("placeholder", "")
//		return &Text{Field: base}
//	}, "first_name")
//
// Rendering resolves fields/<type>/<page> and falls back to fields/key/<page>
// when the type has no partial for that page.
package field
