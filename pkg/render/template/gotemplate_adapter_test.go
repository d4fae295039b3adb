package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-fieldkit/pkg/field"
	"github.com/goliatone/go-fieldkit/pkg/fields"
	"github.com/goliatone/go-fieldkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-fieldkit/pkg/testsupport"
)

//go:embed testdata/templates
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_InflectionFilters(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("inflect", map[string]any{"title": "first_name", "noun": "person"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "First name / people\n" {
		t.Fatalf("unexpected inflection output %q", result)
	}
}

func TestGoTemplateEngine_HumanizeSeparatorsAndNumbers(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("[{{ sep|humanize }}] {{ title|humanize }} {{ price }} {{ big }}", map[string]any{
		"sep":   "_",
		"title": "öffnungs_zeit",
		"price": 19.99,
		"big":   int64(9007199254740993),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "[] Öffnungs zeit 19.99 9007199254740993" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ greeting }}, {{ name }}", map[string]any{"greeting": "Hi", "name": "Ada"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "Hi, Ada" {
		t.Fatalf("unexpected inline output %q", result)
	}
}

func TestGoTemplateEngine_Exists(t *testing.T) {
	engine := newEngine(t)

	for _, name := range []string{"hello", "hello.tpl", "fields/key/view"} {
		if !engine.Exists(name) {
			t.Fatalf("expected %q to exist", name)
		}
	}
	for _, name := range []string{"missing", "fields/key/index", "fields"} {
		if engine.Exists(name) {
			t.Fatalf("expected %q to be missing", name)
		}
	}
}

func TestGoTemplateEngine_ViewsRenderFields(t *testing.T) {
	engine := newEngine(t)
	views := engine.Views()
	record := field.MapRecord{"title": "Hello", "author": map[string]any{"name": "Ada"}}

	title := field.Must(fields.NewText("Title"))
	out, err := title.Bind(record).Render(views, field.PageEdit)
	if err != nil {
		t.Fatalf("render edit: %v", err)
	}
	if out != "<input name=\"title\" value=\"Hello\">\n" {
		t.Fatalf("unexpected edit output %q", out)
	}

	author := field.Must(fields.NewText("Author", field.WithID("author.name")))
	out, err = author.Bind(record).Render(views, field.PageView)
	if err != nil {
		t.Fatalf("render view: %v", err)
	}
	if out != "Author: Ada\n" {
		t.Fatalf("expected key fallback output, got %q", out)
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
