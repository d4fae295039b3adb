package vanilla

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fieldkit/pkg/field"
)

// PartialKey converts a logical template name into the manifest template key
// used for overrides: "fields/text/edit" -> "fields.text.edit".
func PartialKey(name string) string {
	return strings.ReplaceAll(strings.Trim(name, "/"), "/", ".")
}

// ThemeConfig flattens a selection into renderer configuration. Variant
// templates, tokens and asset files override the base manifest entries.
func ThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	prefix := manifest.Assets.Prefix
	files := cloneStringMap(manifest.Assets.Files)
	cfg.Partials = cloneStringMap(manifest.Templates)
	cfg.Tokens = cloneStringMap(manifest.Tokens)

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		cfg.Partials = mergeStringMap(cfg.Partials, variant.Templates)
		cfg.Tokens = mergeStringMap(cfg.Tokens, variant.Tokens)
		files = mergeStringMap(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	if len(cfg.Tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(cfg.Tokens))
		for key, value := range cfg.Tokens {
			cfg.CSSVars["--"+strings.TrimPrefix(key, "--")] = value
		}
	}

	cfg.AssetURL = func(key string) string {
		file := files[key]
		if file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
	return cfg
}

// themedViews resolves field templates through theme partial overrides before
// falling back to the engine's own templates.
type themedViews struct {
	base     field.Views
	partials map[string]string
}

func newThemedViews(base field.Views, cfg *theme.RendererConfig) field.Views {
	if cfg == nil || len(cfg.Partials) == 0 {
		return base
	}
	return themedViews{base: base, partials: cloneStringMap(cfg.Partials)}
}

func (v themedViews) override(name string) (string, bool) {
	target, ok := v.partials[PartialKey(name)]
	if !ok || strings.TrimSpace(target) == "" {
		return "", false
	}
	target = strings.TrimSuffix(strings.TrimSpace(target), ".tpl")
	if !v.base.Exists(target) {
		return "", false
	}
	return target, true
}

func (v themedViews) Exists(name string) bool {
	if _, ok := v.override(name); ok {
		return true
	}
	return v.base.Exists(name)
}

func (v themedViews) Render(name string, data map[string]any) (string, error) {
	if target, ok := v.override(name); ok {
		return v.base.Render(target, data)
	}
	return v.base.Render(name, data)
}

// ManifestSelector is an in-memory theme.ThemeSelector over a fixed set of
// manifests, for callers that load themes from files.
type ManifestSelector struct {
	mu           sync.RWMutex
	manifests    map[string]*theme.Manifest
	defaultTheme string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector registers manifests by name. The first manifest is the
// default when Select is called without a theme name.
func NewManifestSelector(manifests ...*theme.Manifest) *ManifestSelector {
	selector := &ManifestSelector{manifests: make(map[string]*theme.Manifest)}
	for _, manifest := range manifests {
		selector.Add(manifest)
	}
	return selector
}

// Add registers or replaces a manifest.
func (s *ManifestSelector) Add(manifest *theme.Manifest) {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(manifest.Name)
	if s.defaultTheme == "" {
		s.defaultTheme = name
	}
	s.manifests[name] = manifest
}

// Names lists registered theme names, sorted.
func (s *ManifestSelector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select implements theme.ThemeSelector. Unknown variants fail.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("vanilla: theme %q not registered", name)
	}
	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("vanilla: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

type manifestFile struct {
	Name      string                 `yaml:"name"`
	Version   string                 `yaml:"version"`
	Tokens    map[string]string      `yaml:"tokens"`
	Templates map[string]string      `yaml:"templates"`
	Assets    assetsFile             `yaml:"assets"`
	Variants  map[string]variantFile `yaml:"variants"`
}

type variantFile struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    assetsFile        `yaml:"assets"`
}

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

// LoadManifest decodes a YAML or JSON theme manifest.
func LoadManifest(data []byte) (*theme.Manifest, error) {
	var raw manifestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("vanilla: decode theme manifest: %w", err)
	}
	if strings.TrimSpace(raw.Name) == "" {
		return nil, fmt.Errorf("vanilla: theme manifest name is required")
	}

	manifest := &theme.Manifest{
		Name:      strings.TrimSpace(raw.Name),
		Version:   raw.Version,
		Tokens:    raw.Tokens,
		Templates: raw.Templates,
		Assets: theme.Assets{
			Prefix: raw.Assets.Prefix,
			Files:  raw.Assets.Files,
		},
	}
	if len(raw.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(raw.Variants))
		for name, variant := range raw.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
				Assets: theme.Assets{
					Prefix: variant.Assets.Prefix,
					Files:  variant.Assets.Files,
				},
			}
		}
	}
	return manifest, nil
}
