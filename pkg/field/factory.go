package field

import (
	"fmt"
	"strings"
)

// Option configures a field while Make builds it.
type Option func(*options)

type options struct {
	id          string
	description string
	identity    *identity
	configure   []func(Descriptor) error
}

type identity struct {
	title string
	id    string
}

// WithID sets an explicit id. It is normalised the same way a derived id is.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

// WithDescription sets the help text.
func WithDescription(description string) Option {
	return func(o *options) {
		o.description = description
	}
}

// Configure registers a builder callback invoked with the new instance after
// construction and before Make returns. The callback is typed against the
// concrete descriptor; Make fails when the built type does not match T.
func Configure[T Descriptor](fn func(T)) Option {
	return func(o *options) {
		if fn == nil {
			return
		}
		o.configure = append(o.configure, func(d Descriptor) error {
			typed, ok := d.(T)
			if !ok {
				return fmt.Errorf("field: configure callback expects %T, got %T", *new(T), d)
			}
			fn(typed)
			return nil
		})
	}
}

// withIdentity copies title and id verbatim.
func withIdentity(title, id string) Option {
	return func(o *options) {
		o.identity = &identity{title: title, id: id}
	}
}

// Make builds a concrete descriptor. The title is humanized and the id
// defaults to its normalised form. ctor receives the prepared base and must
// return a descriptor embedding it.
func Make[T Descriptor](ctor func(base *Field) T, title string, opts ...Option) (T, error) {
	var zero T
	if ctor == nil {
		return zero, fmt.Errorf("field: constructor is required")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	var (
		base *Field
		err  error
	)
	if cfg.identity != nil {
		base, err = restoreField(cfg.identity.title, cfg.identity.id)
	} else {
		base, err = newField(title, cfg.id)
	}
	if err != nil {
		return zero, err
	}
	base.description = cfg.description

	d := ctor(base)
	if d.Base() != base {
		return zero, fmt.Errorf("field: constructor for %q must embed the supplied base", base.id)
	}
	base.self = d

	for _, configure := range cfg.configure {
		if err := configure(d); err != nil {
			return zero, err
		}
	}
	return d, nil
}

// MakeFrom builds a descriptor of the ctor type carrying over the title and id
// of other.
func MakeFrom[T Descriptor](ctor func(base *Field) T, other Descriptor, opts ...Option) (T, error) {
	if other == nil || other.Base() == nil {
		var zero T
		return zero, fmt.Errorf("field: source descriptor is required")
	}
	src := other.Base()
	opts = append([]Option{withIdentity(src.title, src.id)}, opts...)
	return Make(ctor, src.title, opts...)
}

// Must panics when err is non-nil. Useful for package level field sets.
func Must[T Descriptor](d T, err error) T {
	if err != nil {
		panic(err)
	}
	return d
}

func restoreField(title, id string) (*Field, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	return &Field{
		id:         id,
		title:      title,
		showLabel:  true,
		visibility: defaultVisibility(),
		attributes: make(map[string]any),
	}, nil
}
