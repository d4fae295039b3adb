package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// EncodeYAML writes resources in the definition file format LoadFS reads.
func EncodeYAML(resources ...Resource) ([]byte, error) {
	doc := documentFile{Resources: make(map[string]Resource, len(resources))}
	for _, resource := range resources {
		if resource.Name == "" {
			return nil, fmt.Errorf("schema: resource name is required")
		}
		doc.Resources[resource.Name] = resource
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("schema: encode yaml: %w", err)
	}
	return out, nil
}
