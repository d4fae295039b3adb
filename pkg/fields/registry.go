package fields

import "github.com/goliatone/go-fieldkit/pkg/field"

// Built-in type names.
const (
	TypeKey      = "Key"
	TypeText     = "Text"
	TypeTextarea = "Textarea"
	TypeNumber   = "Number"
	TypeBoolean  = "Boolean"
	TypeEmail    = "Email"
	TypeEnum     = "Enum"
)

// Registry returns a type registry with every built-in type registered.
// Callers may register additional types on the returned value.
func Registry() *field.TypeRegistry {
	registry := field.NewTypeRegistry()
	registry.MustRegister(TypeKey, field.FactoryFor(newKey))
	registry.MustRegister(TypeText, field.FactoryFor(newText))
	registry.MustRegister(TypeTextarea, field.FactoryFor(newTextarea))
	registry.MustRegister(TypeNumber, field.FactoryFor(newNumber))
	registry.MustRegister(TypeBoolean, field.FactoryFor(newBoolean))
	registry.MustRegister(TypeEmail, field.FactoryFor(newEmail))
	registry.MustRegister(TypeEnum, field.FactoryFor(newEnum))
	return registry
}
