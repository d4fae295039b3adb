package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldkit/pkg/field"
	"github.com/goliatone/go-fieldkit/pkg/fields"
	"github.com/goliatone/go-fieldkit/pkg/sorting"
)

func TestBuildAppliesDefinitions(t *testing.T) {
	resources, err := Parse([]byte(postsYAML), "posts.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sorts := sorting.New()

	set, err := Build(resources[0], WithSortRegistry(sorts))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var ids []string
	for _, d := range set.All() {
		ids = append(ids, d.Base().ID())
	}
	if diff := cmp.Diff([]string{"title", "body", "status", "summary"}, ids); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	body, _ := set.Get("body")
	if _, ok := body.(*fields.Textarea); !ok {
		t.Fatalf("expected textarea, got %T", body)
	}
	if rows, _ := body.Base().Attribute("rows"); rows != 8 {
		t.Fatalf("expected rows attribute 8, got %v", rows)
	}
	if body.Base().IsVisibleOnPage(field.PageIndex) || !body.Base().IsVisibleOnPage(field.PageEdit) {
		t.Fatalf("unexpected body visibility")
	}

	status, _ := set.Get("status")
	if status.Base().IsVisibleOnPage(field.PageEdit) || !status.Base().IsVisibleOnPage(field.PageView) {
		t.Fatalf("expected showOn to restrict status to index and view")
	}

	if diff := cmp.Diff([]string{"title"}, sorts.Sortables()); diff != "" {
		t.Fatalf("sortables mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFailsOnUnknownAttribute(t *testing.T) {
	resource := Resource{
		Name:   "post",
		Fields: []Definition{{Title: "Title", Type: "text", Attributes: map[string]any{"rows": 3}}},
	}
	if _, err := Build(resource); !errors.Is(err, field.ErrUnknownAttribute) {
		t.Fatalf("expected ErrUnknownAttribute, got %v", err)
	}
}

func TestBuildFailsOnUnknownType(t *testing.T) {
	resource := Resource{Name: "post", Fields: []Definition{{Title: "Where", Type: "geo"}}}
	if _, err := Build(resource); !errors.Is(err, field.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestBuildFailsOnDuplicateIDs(t *testing.T) {
	resource := Resource{Name: "post", Fields: []Definition{{Title: "Title"}, {ID: "title"}}}
	if _, err := Build(resource); !errors.Is(err, field.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestDefinitionBuildUsesCustomTypes(t *testing.T) {
	types := field.NewTypeRegistry()
	types.MustRegister(fields.TypeKey, field.FactoryFor(func(base *field.Field) *fields.Key {
		return &fields.Key{Field: base}
	}))

	d, err := Definition{Title: "Reference", Type: "key", HideLabel: true}.Build(WithTypes(types))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, ok := d.(*fields.Key); !ok || !d.Base().IsHiddenLabel() {
		t.Fatalf("unexpected descriptor %T hidden=%v", d, d.Base().IsHiddenLabel())
	}
	if _, err := (Definition{Title: "Body", Type: "textarea"}).Build(WithTypes(types)); !errors.Is(err, field.ErrUnknownType) {
		t.Fatalf("expected custom registry to reject textarea, got %v", err)
	}
}
