package field

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

// Descriptor is implemented by every concrete field type. Concrete types embed
// *Field, which provides Base and no-op defaults for the hooks; they only need
// to supply Type and override the hooks they care about.
type Descriptor interface {
	// Base returns the shared field state.
	Base() *Field
	// Type names the concrete field type, e.g. "Text". The snake-cased form
	// selects the template directory.
	Type() string
	// OnPage returns extra template context for page. Keys override the
	// default "field" and "record" entries.
	OnPage(page Page) map[string]any
	// FormatInput returns the value and context handed to a custom formatter.
	FormatInput() (value any, context any)
}

// Field holds the state shared by every field type. Its zero value is not
// usable; build fields through Make, MakeFrom or a TypeRegistry.
type Field struct {
	self Descriptor

	id          string
	title       string
	description string
	showLabel   bool
	visibility  map[Page]bool

	attributes map[string]any

	record   Record
	value    any
	hasValue bool

	format *format
}

func newField(title, id string) (*Field, error) {
	title = strings.TrimSpace(title)
	id = strings.TrimSpace(id)
	if title == "" && id == "" {
		return nil, ErrEmptyID
	}
	if title == "" {
		title = id
	}

	f := &Field{
		title:      Humanize(title),
		showLabel:  true,
		visibility: defaultVisibility(),
		attributes: make(map[string]any),
	}
	if id == "" {
		id = f.title
	}
	f.id = NormalizeID(id)
	if f.id == "" {
		return nil, fmt.Errorf("%w: %q normalises to an empty id", ErrEmptyID, id)
	}
	return f, nil
}

// Humanize turns an identifier-like string into a label: "first_name" becomes
// "First name". Input made only of separators yields "".
func Humanize(raw string) string {
	words := strings.FieldsFunc(inflect.Underscore(strings.TrimSpace(raw)), isWordSeparator)
	if len(words) == 0 {
		return ""
	}
	sentence := strings.Join(words, " ")
	first, size := utf8.DecodeRuneInString(sentence)
	return string(unicode.ToUpper(first)) + sentence[size:]
}

func isWordSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ':
		return true
	default:
		return unicode.IsSpace(r)
	}
}

// NormalizeID snake-cases every dot separated segment of raw so nested ids such
// as "Address.zipCode" become "address.zip_code".
func NormalizeID(raw string) string {
	segments := strings.Split(strings.TrimSpace(raw), ".")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if normalized := inflect.Underscore(segment); normalized != "" {
			out = append(out, normalized)
		}
	}
	return strings.Join(out, ".")
}

// Base returns f.
func (f *Field) Base() *Field {
	return f
}

// OnPage is the default page hook; it contributes nothing.
func (f *Field) OnPage(Page) map[string]any {
	return nil
}

// FormatInput is the default formatter input: the current value and the bound
// record.
func (f *Field) FormatInput() (any, any) {
	if f.record == nil {
		return f.Value(), nil
	}
	return f.Value(), f.record
}

// Descriptor returns the concrete descriptor wrapping f.
func (f *Field) Descriptor() (Descriptor, error) {
	if f == nil || f.self == nil {
		return nil, ErrDetached
	}
	return f.self, nil
}

// ID returns the field identifier.
func (f *Field) ID() string {
	return f.id
}

// SetID replaces the identifier verbatim.
func (f *Field) SetID(id string) *Field {
	f.id = id
	return f
}

// Name returns the form submission name. Dotted ids use bracket notation:
// "address.city" becomes "address[city]".
func (f *Field) Name() string {
	parts := strings.Split(f.id, ".")
	if len(parts) == 1 {
		return f.id
	}

	var builder strings.Builder
	builder.Grow(len(f.id) + len(parts))
	builder.WriteString(parts[0])
	for _, part := range parts[1:] {
		builder.WriteByte('[')
		builder.WriteString(part)
		builder.WriteByte(']')
	}
	return builder.String()
}

// Title returns the human readable label.
func (f *Field) Title() string {
	return f.title
}

// SetTitle replaces the label verbatim.
func (f *Field) SetTitle(title string) *Field {
	f.title = title
	return f
}

// Description returns the help text, empty when unset.
func (f *Field) Description() string {
	return f.description
}

// SetDescription sets the help text.
func (f *Field) SetDescription(description string) *Field {
	f.description = description
	return f
}

// HideLabel controls whether the label renders next to the value.
func (f *Field) HideLabel(hide bool) *Field {
	f.showLabel = !hide
	return f
}

// IsHiddenLabel reports whether the label is hidden.
func (f *Field) IsHiddenLabel() bool {
	return !f.showLabel
}

// IsVisibleOnPage reports the visibility for page. Unrecognized pages are never
// visible.
func (f *Field) IsVisibleOnPage(page Page) bool {
	return f.visibility[page]
}

// HideOnPages hides the field on the recognized pages among pages. Other names
// are ignored.
func (f *Field) HideOnPages(pages ...Page) *Field {
	return f.setPagesVisibility(pages, false)
}

// ShowOnPages shows the field on the recognized pages among pages. Other names
// are ignored.
func (f *Field) ShowOnPages(pages ...Page) *Field {
	return f.setPagesVisibility(pages, true)
}

func (f *Field) setPagesVisibility(pages []Page, visible bool) *Field {
	for _, page := range pages {
		if _, ok := f.visibility[page]; !ok {
			continue
		}
		f.visibility[page] = visible
	}
	return f
}

// Bind associates the record the field reads its value from.
func (f *Field) Bind(record Record) *Field {
	f.record = record
	return f
}

// Record returns the bound record, nil before Bind.
func (f *Field) Record() Record {
	return f.record
}

// SetValue stores a value that takes precedence over the record attribute.
// Computed fields with no backing attribute use it.
func (f *Field) SetValue(value any) *Field {
	f.value = value
	f.hasValue = true
	return f
}

// Value returns the override set through SetValue, otherwise the bound record's
// attribute named by the id. It is nil for unbound fields.
func (f *Field) Value() any {
	if f.hasValue {
		return f.value
	}
	if f.record == nil {
		return nil
	}
	return f.record.GetAttribute(f.id)
}

// Declare adds key to the attribute schema with its default value. Concrete
// types call it from their constructors.
func (f *Field) Declare(key string, defaultValue any) *Field {
	f.attributes[key] = defaultValue
	return f
}

// HasAttribute reports whether key is part of the attribute schema.
func (f *Field) HasAttribute(key string) bool {
	_, ok := f.attributes[key]
	return ok
}

// Attribute returns the value of a declared attribute.
func (f *Field) Attribute(key string) (any, bool) {
	value, ok := f.attributes[key]
	return value, ok
}

// Attributes returns a copy of the attribute map.
func (f *Field) Attributes() map[string]any {
	out := make(map[string]any, len(f.attributes))
	for key, value := range f.attributes {
		out[key] = value
	}
	return out
}

// SetAttribute sets a declared attribute. Undeclared keys fail with
// ErrUnknownAttribute.
func (f *Field) SetAttribute(key string, value any) error {
	if _, ok := f.attributes[key]; !ok {
		return fmt.Errorf("%w %q on field %q", ErrUnknownAttribute, key, f.id)
	}
	f.attributes[key] = value
	return nil
}

// SetAttributes applies every entry of values in key order, stopping at the
// first undeclared key.
func (f *Field) SetAttributes(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := f.SetAttribute(key, values[key]); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot is the template facing view of a field.
type Snapshot struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	ShowLabel   bool           `json:"showLabel"`
	Value       any            `json:"value"`
	Attributes  map[string]any `json:"attributes,omitempty"`
	Visibility  map[Page]bool  `json:"visibility"`
}

// Snapshot captures the current state of the field, including its value.
func (f *Field) Snapshot() Snapshot {
	snap := Snapshot{
		ID:          f.id,
		Name:        f.Name(),
		Title:       f.title,
		Description: f.description,
		ShowLabel:   f.showLabel,
		Value:       f.Value(),
		Visibility:  make(map[Page]bool, len(f.visibility)),
	}
	if f.self != nil {
		snap.Type = NormalizeType(f.self.Type())
	}
	if len(f.attributes) > 0 {
		snap.Attributes = f.Attributes()
	}
	for page, visible := range f.visibility {
		snap.Visibility[page] = visible
	}
	return snap
}

// MarshalJSON encodes the field snapshot so template engines that convert
// context values through JSON see id, name, title and value.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Snapshot())
}
