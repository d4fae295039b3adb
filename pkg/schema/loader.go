package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fieldkit/pkg/field"
)

// Store keeps the parsed resources. It is safe for concurrent readers when
// treated as immutable after loading.
type Store struct {
	resources map[string]Resource
}

// NewStore builds a store from resources, rejecting duplicates.
func NewStore(resources ...Resource) (*Store, error) {
	store := &Store{resources: make(map[string]Resource, len(resources))}
	for _, resource := range resources {
		if err := store.add(resource); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// LoadFS walks fsys and parses every JSON/YAML definition file. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{resources: make(map[string]Resource)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}

		resources, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, resource := range resources {
			if err := store.add(resource); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single definition file from disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	resources, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	return NewStore(resources...)
}

// Resource returns the named resource.
func (s *Store) Resource(name string) (Resource, bool) {
	if s == nil {
		return Resource{}, false
	}
	resource, ok := s.resources[strings.TrimSpace(name)]
	return resource, ok
}

// Names lists resource names, sorted.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.resources))
	for name := range s.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any resources.
func (s *Store) Empty() bool {
	return s == nil || len(s.resources) == 0
}

func (s *Store) add(resource Resource) error {
	name := strings.TrimSpace(resource.Name)
	if name == "" {
		return fmt.Errorf("schema: resource name is required (file %s)", resource.Source)
	}
	if _, exists := s.resources[name]; exists {
		return fmt.Errorf("schema: duplicate resource %q (file %s)", name, resource.Source)
	}
	resource.Name = name
	s.resources[name] = resource
	return nil
}

type documentFile struct {
	Resources map[string]Resource `json:"resources" yaml:"resources"`
}

// Parse decodes a definition document, trying JSON first and YAML second.
// Resources are returned sorted by name.
func Parse(data []byte, source string) ([]Resource, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("schema: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("schema: parse %s: invalid JSON or YAML", source)
		}
	}

	names := make([]string, 0, len(doc.Resources))
	for name := range doc.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Resource, 0, len(names))
	for _, name := range names {
		resource, err := normaliseResource(doc.Resources[name], name, source)
		if err != nil {
			return nil, err
		}
		out = append(out, resource)
	}
	return out, nil
}

func normaliseResource(raw Resource, name, source string) (Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Resource{}, fmt.Errorf("schema: file %s defines an empty resource name", source)
	}

	resource := Resource{
		Name:   name,
		Source: source,
		Fields: make([]Definition, 0, len(raw.Fields)),
	}
	for idx, def := range raw.Fields {
		if strings.TrimSpace(def.Title) == "" && strings.TrimSpace(def.ID) == "" {
			return Resource{}, fmt.Errorf("schema: resource %q (file %s) field %d needs a title or id", name, source, idx)
		}
		for _, page := range append(append([]string(nil), def.HideOn...), def.ShowOn...) {
			if _, ok := field.ParsePage(page); !ok {
				return Resource{}, fmt.Errorf("schema: resource %q (file %s) field %d references unknown page %q", name, source, idx, page)
			}
		}
		cloned := cloneDefinition(def)
		if strings.TrimSpace(cloned.Type) == "" {
			cloned.Type = DefaultType
		}
		resource.Fields = append(resource.Fields, cloned)
	}
	return resource, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
