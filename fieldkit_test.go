package fieldkit_test

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldkit"
	"github.com/goliatone/go-fieldkit/pkg/field"
	pkgopenapi "github.com/goliatone/go-fieldkit/pkg/openapi"
	"github.com/goliatone/go-fieldkit/pkg/schema"
	"github.com/goliatone/go-fieldkit/pkg/sorting"
	"github.com/goliatone/go-fieldkit/pkg/testsupport"
)

func TestEmbeddedTemplatesIncludeFallbackPartials(t *testing.T) {
	for _, page := range field.Pages() {
		name := "fields/key/" + string(page) + ".tpl"
		if _, err := fs.Stat(fieldkit.EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected embedded %s: %v", name, err)
		}
	}
}

func TestParserReadsFixtureComponents(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("internal", "openapi", "testdata", "blog.yaml"))
	parser := fieldkit.NewParser()

	names, err := parser.Components(testsupport.Context(), doc)
	if err != nil {
		t.Fatalf("components: %v", err)
	}
	if diff := cmp.Diff([]string{"BlogPost"}, names); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}

	resource, err := parser.Definitions(testsupport.Context(), doc, "BlogPost")
	if err != nil {
		t.Fatalf("definitions: %v", err)
	}
	if resource.Name != "blog_post" || len(resource.Fields) == 0 || resource.Fields[0].ID != "title" {
		t.Fatalf("unexpected resource %+v", resource)
	}
}

func TestExampleDefinitionsBuild(t *testing.T) {
	resource := testsupport.MustLoadResource(t, filepath.Join("examples", "basic", "definitions", "posts.yaml"), "blog_post")

	sorts := sorting.New()
	set, err := schema.Build(resource, schema.WithSortRegistry(sorts))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	ids := make([]string, 0, set.Len())
	for _, d := range set.VisibleOn(field.PageIndex) {
		ids = append(ids, d.Base().ID())
	}
	if diff := cmp.Diff([]string{"id", "title", "status", "views"}, ids); diff != "" {
		t.Fatalf("index columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"status", "title", "views"}, sorts.Sortables()); diff != "" {
		t.Fatalf("sortables mismatch (-want +got):\n%s", diff)
	}
}

func TestGeneratePage(t *testing.T) {
	store, err := schema.LoadFile(filepath.Join("examples", "basic", "definitions", "posts.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	html, err := fieldkit.GeneratePage(testsupport.Context(), store, "blog_post", field.PageView, []field.Record{
		field.MapRecord{"id": 7, "title": "Hello", "status": "live"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(html), "Hello") || !strings.Contains(string(html), "Live") {
		t.Fatalf("expected bound values in view page, got:\n%s", html)
	}
}

func TestGenerateFromComponent(t *testing.T) {
	source := pkgopenapi.SourceFromFile(filepath.Join("internal", "openapi", "testdata", "blog.yaml"))

	html, err := fieldkit.GenerateFromComponent(testsupport.Context(), source, "BlogPost", field.PageEdit, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(html), `name="title"`) {
		t.Fatalf("expected title input, got:\n%s", html)
	}
}
