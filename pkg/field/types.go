package field

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-openapi/inflect"
)

// Factory builds a descriptor of one concrete type.
type Factory func(title string, opts ...Option) (Descriptor, error)

// FactoryFor adapts a typed constructor to a Factory.
func FactoryFor[T Descriptor](ctor func(base *Field) T) Factory {
	return func(title string, opts ...Option) (Descriptor, error) {
		d, err := Make(ctor, title, opts...)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

// NormalizeType returns the snake-cased type name used for registry keys and
// template directories: "Textarea" becomes "textarea", "RichText" becomes
// "rich_text".
func NormalizeType(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return inflect.Underscore(name)
}

// TypeRegistry maps type names to factories so a field can be switched to
// another type by name.
type TypeRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under name. Duplicate names return an error.
func (r *TypeRegistry) Register(name string, factory Factory) error {
	key := NormalizeType(name)
	if key == "" {
		return fmt.Errorf("field: type name is required")
	}
	if factory == nil {
		return fmt.Errorf("field: factory for %q is nil", key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("field: type %q already registered", key)
	}
	r.factories[key] = factory
	return nil
}

// MustRegister panics on registration failure.
func (r *TypeRegistry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Has reports whether name is registered.
func (r *TypeRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[NormalizeType(name)]
	return ok
}

// Names returns the registered type names, sorted.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Make builds a descriptor of the named type.
func (r *TypeRegistry) Make(typeName, title string, opts ...Option) (Descriptor, error) {
	factory, err := r.lookup(typeName)
	if err != nil {
		return nil, err
	}
	return factory(title, opts...)
}

// Switch builds a descriptor of the named type carrying over the title and id
// of d.
func (r *TypeRegistry) Switch(d Descriptor, typeName string, opts ...Option) (Descriptor, error) {
	if d == nil || d.Base() == nil {
		return nil, fmt.Errorf("field: source descriptor is required")
	}
	factory, err := r.lookup(typeName)
	if err != nil {
		return nil, err
	}
	src := d.Base()
	opts = append([]Option{withIdentity(src.title, src.id)}, opts...)
	return factory(src.title, opts...)
}

func (r *TypeRegistry) lookup(typeName string) (Factory, error) {
	key := NormalizeType(typeName)

	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, typeName)
	}
	return factory, nil
}
