package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fieldkit/pkg/field"
	"github.com/goliatone/go-fieldkit/pkg/fields"
)

// Transformer mutates a field set after it is built. Implementations can
// retitle fields, switch types or change visibility.
type Transformer interface {
	Transform(ctx context.Context, set *field.Set) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, set *field.Set) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, set *field.Set) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, set)
}

// PresetTransformer applies declarative per-field patches loaded from a JSON or
// YAML document:
//
//	{
//	  "fields": {
//	    "body": {"type": "textarea", "title": "Content", "attributes": {"rows": 10}},
//	    "secret": {"hideOn": ["index", "view"]}
//	  }
//	}
//
// Patches naming unknown fields fail the transform.
type PresetTransformer struct {
	document presetDocument
	types    *field.TypeRegistry
}

type presetDocument struct {
	Fields map[string]fieldPatch `json:"fields" yaml:"fields"`
}

type fieldPatch struct {
	Type        string         `json:"type" yaml:"type"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	HideLabel   *bool          `json:"hideLabel" yaml:"hideLabel"`
	HideOn      []string       `json:"hideOn" yaml:"hideOn"`
	ShowOn      []string       `json:"showOn" yaml:"showOn"`
	Attributes  map[string]any `json:"attributes" yaml:"attributes"`
}

// NewPresetTransformer parses data, trying JSON first and YAML second. Type
// switches resolve through types, or the built-in registry when nil.
func NewPresetTransformer(data []byte, types *field.TypeRegistry) (*PresetTransformer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("orchestrator: preset document is empty")
	}

	var doc presetDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		doc = presetDocument{}
		if yamlErr := yaml.Unmarshal(trimmed, &doc); yamlErr != nil {
			return nil, fmt.Errorf("orchestrator: decode preset: %w", err)
		}
	}
	for id, patch := range doc.Fields {
		for _, page := range append(append([]string(nil), patch.HideOn...), patch.ShowOn...) {
			if _, ok := field.ParsePage(page); !ok {
				return nil, fmt.Errorf("orchestrator: preset field %q references unknown page %q", id, page)
			}
		}
	}
	if types == nil {
		types = fields.Registry()
	}
	return &PresetTransformer{document: doc, types: types}, nil
}

// LoadPresetTransformer reads a preset document from fsys.
func LoadPresetTransformer(fsys fs.FS, name string, types *field.TypeRegistry) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("orchestrator: preset filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read preset %s: %w", name, err)
	}
	return NewPresetTransformer(data, types)
}

// Transform applies the patches in id order.
func (t *PresetTransformer) Transform(ctx context.Context, set *field.Set) error {
	if t == nil || set == nil {
		return nil
	}
	ids := make([]string, 0, len(t.document.Fields))
	for id := range t.document.Fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		d, ok := set.Get(id)
		if !ok {
			return fmt.Errorf("orchestrator: preset references unknown field %q", id)
		}
		patched, err := t.apply(d, t.document.Fields[id])
		if err != nil {
			return fmt.Errorf("orchestrator: preset field %q: %w", id, err)
		}
		if patched != d {
			if err := set.Replace(patched); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *PresetTransformer) apply(d field.Descriptor, patch fieldPatch) (field.Descriptor, error) {
	if typeName := strings.TrimSpace(patch.Type); typeName != "" && field.NormalizeType(typeName) != field.NormalizeType(d.Type()) {
		switched, err := t.types.Switch(d, typeName)
		if err != nil {
			return nil, err
		}
		carryOver(d.Base(), switched.Base())
		d = switched
	}

	base := d.Base()
	if patch.Title != "" {
		base.SetTitle(patch.Title)
	}
	if patch.Description != "" {
		base.SetDescription(patch.Description)
	}
	if patch.HideLabel != nil {
		base.HideLabel(*patch.HideLabel)
	}
	if len(patch.ShowOn) > 0 {
		base.HideOnPages(field.Pages()...)
		base.ShowOnPages(pages(patch.ShowOn)...)
	}
	base.HideOnPages(pages(patch.HideOn)...)
	if err := base.SetAttributes(patch.Attributes); err != nil {
		return nil, err
	}
	return d, nil
}

// carryOver copies the presentation state a type switch resets.
func carryOver(from, to *field.Field) {
	to.SetDescription(from.Description())
	to.HideLabel(from.IsHiddenLabel())
	for _, page := range field.Pages() {
		if from.IsVisibleOnPage(page) {
			to.ShowOnPages(page)
		} else {
			to.HideOnPages(page)
		}
	}
}

func pages(raw []string) []field.Page {
	out := make([]field.Page, 0, len(raw))
	for _, value := range raw {
		if page, ok := field.ParsePage(value); ok {
			out = append(out, page)
		}
	}
	return out
}
