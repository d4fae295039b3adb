package field

import "strings"

// Record supplies attribute values to bound fields.
type Record interface {
	// GetAttribute returns the named attribute, or nil when absent.
	GetAttribute(name string) any
}

// RecordFunc adapts a plain function to Record.
type RecordFunc func(name string) any

// GetAttribute calls fn(name).
func (fn RecordFunc) GetAttribute(name string) any {
	return fn(name)
}

// MapRecord is a Record backed by a map. Dotted names that are not stored
// verbatim are resolved through nested maps, so "address.city" reads
// record["address"]["city"].
type MapRecord map[string]any

// GetAttribute returns the value stored under name.
func (m MapRecord) GetAttribute(name string) any {
	if m == nil {
		return nil
	}
	if value, ok := m[name]; ok {
		return value
	}
	if !strings.Contains(name, ".") {
		return nil
	}

	var current any = map[string]any(m)
	for _, segment := range strings.Split(name, ".") {
		switch node := current.(type) {
		case map[string]any:
			current = node[segment]
		case MapRecord:
			current = node[segment]
		default:
			return nil
		}
		if current == nil {
			return nil
		}
	}
	return current
}
