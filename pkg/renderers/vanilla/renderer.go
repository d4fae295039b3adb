// Package vanilla renders whole field sets into server side HTML pages using
// the embedded pongo2 partials.
package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-fieldkit/pkg/field"
	"github.com/goliatone/go-fieldkit/pkg/render"
	rendertemplate "github.com/goliatone/go-fieldkit/pkg/render/template"
	gotemplate "github.com/goliatone/go-fieldkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-fieldkit/pkg/sorting"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       []fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	selector         theme.ThemeSelector
	themeName        string
	themeVariant     string
	logger           *slog.Logger
	policy           *bluemonday.Policy
	submitLabel      string
	emptyText        string
}

// WithTemplatesFS layers a template bundle over the embedded partials. Files
// in files take precedence.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = append(cfg.templateFS, files)
		}
	}
}

// WithTemplatesDir layers templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = append(cfg.templateFS, os.DirFS(path))
	}
}

// WithTemplateRenderer injects a custom engine. Field partials are resolved
// through its Exists/RenderTemplate methods.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithThemeSelector selects a go-theme manifest whose templates override field
// partials and whose tokens become CSS variables on the page element.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// WithLogger reports template fallbacks at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithSanitizer replaces the bluemonday UGC policy applied to formatter output.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithSubmitLabel sets the edit form button label.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if label = strings.TrimSpace(label); label != "" {
			cfg.submitLabel = label
		}
	}
}

// WithEmptyText sets the index placeholder shown when there are no records.
func WithEmptyText(text string) Option {
	return func(cfg *config) {
		if text = strings.TrimSpace(text); text != "" {
			cfg.emptyText = text
		}
	}
}

// Renderer renders field sets for the index, edit and view pages.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	views     field.Views
	theme     *theme.RendererConfig
	logger    *slog.Logger
	policy    *bluemonday.Policy

	submitLabel string
	emptyText   string
}

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		submitLabel: "Save",
		emptyText:   "No records",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engineOpts := make([]gotemplate.Option, 0, len(cfg.templateFS)+1)
		for idx := len(cfg.templateFS) - 1; idx >= 0; idx-- {
			engineOpts = append(engineOpts, gotemplate.WithFS(cfg.templateFS[idx]))
		}
		engineOpts = append(engineOpts, gotemplate.WithFS(TemplatesFS()))

		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	var themeCfg *theme.RendererConfig
	if cfg.selector != nil {
		selection, err := cfg.selector.Select(cfg.themeName, cfg.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: select theme: %w", err)
		}
		themeCfg = ThemeConfig(selection)
	}

	policy := cfg.policy
	if policy == nil {
		policy = bluemonday.UGCPolicy()
	}

	return &Renderer{
		templates:   renderer,
		views:       newThemedViews(engineViews{renderer}, themeCfg),
		theme:       themeCfg,
		logger:      cfg.logger,
		policy:      policy,
		submitLabel: cfg.submitLabel,
		emptyText:   cfg.emptyText,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Theme returns the resolved theme configuration, nil when no theme is set.
func (r *Renderer) Theme() *theme.RendererConfig {
	return r.theme
}

// Views exposes the theme aware template lookup used for field partials.
func (r *Renderer) Views() field.Views {
	return r.views
}

// Request describes one page render.
type Request = render.Request

var _ render.Renderer = (*Renderer)(nil)

// Render produces the HTML page for req.
func (r *Renderer) Render(ctx context.Context, req Request) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("vanilla renderer: template renderer is nil")
	}
	if req.Fields == nil {
		return nil, errors.New("vanilla renderer: field set is required")
	}
	if !req.Page.Valid() {
		return nil, fmt.Errorf("vanilla renderer: unknown page %q", req.Page)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data map[string]any
		err  error
	)
	switch req.Page {
	case field.PageIndex:
		data, err = r.indexData(ctx, req)
	default:
		data, err = r.detailData(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	data["page"] = string(req.Page)
	data["classes"] = chromeClasses()
	if r.theme != nil {
		data["css_vars"] = cssVarsStyle(r.theme.CSSVars)
	}

	result, err := r.templates.RenderTemplate("pages/"+string(req.Page), data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render %s page: %w", req.Page, err)
	}
	return []byte(result), nil
}

func (r *Renderer) indexData(ctx context.Context, req Request) (map[string]any, error) {
	records := append([]field.Record(nil), req.Records...)
	if req.Sort != nil && req.SortBy != "" {
		if err := req.Sort.Sort(records, req.SortBy, req.Direction); err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
	}

	visible := req.Fields.VisibleOn(field.PageIndex)
	columns := make([]map[string]any, 0, len(visible))
	for _, d := range visible {
		base := d.Base()
		column := map[string]any{
			"id":         base.ID(),
			"title":      base.Title(),
			"show_label": !base.IsHiddenLabel(),
			"sortable":   req.Sort != nil && req.Sort.IsSortable(base.ID()),
		}
		if req.SortBy != "" && req.SortBy == base.ID() {
			column["sort"] = ariaSort(req.Direction)
		}
		columns = append(columns, column)
	}

	rows := make([][]map[string]any, 0, len(records))
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		req.Fields.Bind(record)
		cells := make([]map[string]any, 0, len(visible))
		for _, d := range visible {
			html, err := r.RenderField(d, field.PageIndex)
			if err != nil {
				return nil, err
			}
			cells = append(cells, map[string]any{"id": d.Base().ID(), "html": html})
		}
		rows = append(rows, cells)
	}

	return map[string]any{
		"caption":    Caption(req.Resource),
		"columns":    columns,
		"rows":       rows,
		"empty_text": r.emptyText,
	}, nil
}

func (r *Renderer) detailData(ctx context.Context, req Request) (map[string]any, error) {
	req.Fields.Bind(req.Record())

	visible := req.Fields.VisibleOn(req.Page)
	items := make([]string, 0, len(visible))
	for _, d := range visible {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item, err := r.renderWithChrome(d, req.Page)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return map[string]any{
		"fields":       items,
		"action":       req.Action,
		"submit_label": r.submitLabel,
	}, nil
}

func ariaSort(direction sorting.Direction) string {
	if direction == sorting.Descending {
		return "descending"
	}
	return "ascending"
}

// engineViews adapts any TemplateRenderer to field.Views.
type engineViews struct {
	engine rendertemplate.TemplateRenderer
}

func (v engineViews) Exists(name string) bool {
	return v.engine.Exists(name)
}

func (v engineViews) Render(name string, data map[string]any) (string, error) {
	return v.engine.RenderTemplate(name, data)
}
