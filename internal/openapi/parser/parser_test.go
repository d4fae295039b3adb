package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-fieldkit/pkg/openapi"
	"github.com/goliatone/go-fieldkit/pkg/schema"
)

const document = `openapi: 3.0.3
info:
  title: Blog
  version: 1.0.0
paths: {}
components:
  schemas:
    BlogPost:
      type: object
      required: [title, body]
      properties:
        title:
          type: string
          maxLength: 120
          x-admin-sortable: true
        body:
          type: string
          maxLength: 5000
        author_email:
          type: string
          format: email
        views:
          type: integer
          minimum: 0
          readOnly: true
        rating:
          type: number
          maximum: 5
        published:
          type: boolean
          x-admin-hidden: [index]
        status:
          type: string
          enum: [draft, in_review]
        secret:
          type: string
          writeOnly: true
        tags:
          type: array
          items:
            type: string
        summary:
          type: string
          title: Teaser
          description: Shown on cards
          x-admin-type: textarea
    Tag:
      type: object
      properties:
        label:
          type: string
`

func newDocument(t *testing.T, raw string) pkgopenapi.Document {
	t.Helper()
	return pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("blog.yaml"), []byte(raw))
}

func TestDefinitionsMapsComponentProperties(t *testing.T) {
	parser := New(pkgopenapi.NewParserOptions())

	resource, err := parser.Definitions(context.Background(), newDocument(t, document), "BlogPost")
	if err != nil {
		t.Fatalf("definitions: %v", err)
	}

	want := schema.Resource{
		Name:   "blog_post",
		Source: "blog.yaml",
		Fields: []schema.Definition{
			{ID: "title", Type: "text", Attributes: map[string]any{"maxlength": 120}, Sortable: true},
			{ID: "body", Type: "textarea"},
			{ID: "author_email", Type: "email"},
			{ID: "published", Type: "boolean", HideOn: []string{"index"}},
			{ID: "rating", Type: "number", Attributes: map[string]any{"max": 5.0}},
			{ID: "secret", Type: "text", HideOn: []string{"index", "view"}},
			{ID: "status", Type: "enum", Attributes: map[string]any{"options": []any{
				map[string]any{"value": "draft", "label": "Draft"},
				map[string]any{"value": "in_review", "label": "In review"},
			}}},
			{ID: "summary", Title: "Teaser", Type: "textarea", Description: "Shown on cards"},
			{ID: "views", Type: "number", HideOn: []string{"edit"}, Attributes: map[string]any{"min": 0.0, "precision": 0}},
		},
	}
	if diff := cmp.Diff(want, resource); diff != "" {
		t.Fatalf("resource mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinitionsLabelsSeparatorEnumValues(t *testing.T) {
	raw := `openapi: 3.0.3
info:
  title: Grades
  version: 1.0.0
paths: {}
components:
  schemas:
    Item:
      type: object
      properties:
        grade:
          type: string
          enum: [A, "-", "_"]
`
	resource, err := New(pkgopenapi.NewParserOptions()).Definitions(context.Background(), newDocument(t, raw), "Item")
	if err != nil {
		t.Fatalf("definitions: %v", err)
	}

	want := []schema.Definition{
		{ID: "grade", Type: "enum", Attributes: map[string]any{"options": []any{
			map[string]any{"value": "A", "label": "A"},
			map[string]any{"value": "-", "label": "-"},
			map[string]any{"value": "_", "label": "_"},
		}}},
	}
	if diff := cmp.Diff(want, resource.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinitionsBuildIntoFieldSet(t *testing.T) {
	parser := New(pkgopenapi.NewParserOptions())
	resource, err := parser.Definitions(context.Background(), newDocument(t, document), "BlogPost")
	if err != nil {
		t.Fatalf("definitions: %v", err)
	}

	set, err := schema.Build(resource)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if set.Len() != len(resource.Fields) {
		t.Fatalf("expected %d fields, got %d", len(resource.Fields), set.Len())
	}
	summary, _ := set.Get("summary")
	if summary.Base().Title() != "Teaser" {
		t.Fatalf("expected schema title to win, got %q", summary.Base().Title())
	}
}

func TestTextareaThresholdOption(t *testing.T) {
	parser := New(pkgopenapi.NewParserOptions(pkgopenapi.WithTextareaThreshold(100)))
	resource, err := parser.Definitions(context.Background(), newDocument(t, document), "BlogPost")
	if err != nil {
		t.Fatalf("definitions: %v", err)
	}
	if resource.Fields[0].Type != "textarea" {
		t.Fatalf("expected title to become a textarea, got %q", resource.Fields[0].Type)
	}
}

func TestComponentsListsSchemas(t *testing.T) {
	names, err := New(pkgopenapi.NewParserOptions()).Components(context.Background(), newDocument(t, document))
	if err != nil {
		t.Fatalf("components: %v", err)
	}
	if diff := cmp.Diff([]string{"BlogPost", "Tag"}, names); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinitionsErrors(t *testing.T) {
	parser := New(pkgopenapi.NewParserOptions())
	ctx := context.Background()

	if _, err := parser.Definitions(ctx, newDocument(t, document), "Missing"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected missing component error, got %v", err)
	}
	if _, err := parser.Definitions(ctx, newDocument(t, document), " "); err == nil {
		t.Fatalf("expected component name error")
	}

	badHidden := strings.Replace(document, "x-admin-hidden: [index]", "x-admin-hidden: [list]", 1)
	if _, err := parser.Definitions(ctx, newDocument(t, badHidden), "BlogPost"); err == nil || !strings.Contains(err.Error(), "unknown page") {
		t.Fatalf("expected unknown page error, got %v", err)
	}

	noComponents := "openapi: 3.0.3\ninfo:\n  title: Empty\n  version: 1.0.0\npaths: {}\n"
	if _, err := parser.Components(ctx, newDocument(t, noComponents)); err == nil {
		t.Fatalf("expected missing components error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := parser.Components(cancelled, newDocument(t, document)); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestHiddenPagesAcceptsBooleanAndString(t *testing.T) {
	all, err := hiddenPages(true)
	if err != nil {
		t.Fatalf("hidden pages: %v", err)
	}
	if diff := cmp.Diff([]string{"index", "edit", "view"}, all); diff != "" {
		t.Fatalf("pages mismatch (-want +got):\n%s", diff)
	}
	single, err := hiddenPages("View")
	if err != nil || len(single) != 1 || single[0] != "view" {
		t.Fatalf("unexpected single page result %v (%v)", single, err)
	}
	if _, err := hiddenPages(3); err == nil {
		t.Fatalf("expected type error")
	}
}
