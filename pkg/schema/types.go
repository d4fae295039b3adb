package schema

// Definition describes one field of a resource.
type Definition struct {
	ID          string         `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string         `json:"title,omitempty" yaml:"title,omitempty"`
	Type        string         `json:"type,omitempty" yaml:"type,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	HideLabel   bool           `json:"hideLabel,omitempty" yaml:"hideLabel,omitempty"`
	HideOn      []string       `json:"hideOn,omitempty" yaml:"hideOn,omitempty"`
	ShowOn      []string       `json:"showOn,omitempty" yaml:"showOn,omitempty"`
	Attributes  map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Sortable    bool           `json:"sortable,omitempty" yaml:"sortable,omitempty"`
}

// Resource is the ordered field list of one resource.
type Resource struct {
	Name   string       `json:"-" yaml:"-"`
	Source string       `json:"-" yaml:"-"`
	Fields []Definition `json:"fields" yaml:"fields"`
}

// DefaultType is used for definitions that leave type empty.
const DefaultType = "text"

func cloneDefinition(def Definition) Definition {
	out := def
	if len(def.HideOn) > 0 {
		out.HideOn = append([]string(nil), def.HideOn...)
	}
	if len(def.ShowOn) > 0 {
		out.ShowOn = append([]string(nil), def.ShowOn...)
	}
	if len(def.Attributes) > 0 {
		out.Attributes = make(map[string]any, len(def.Attributes))
		for key, value := range def.Attributes {
			out.Attributes[key] = value
		}
	}
	return out
}
