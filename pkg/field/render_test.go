package field_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-fieldkit/pkg/field"
)

type stubViews struct {
	templates map[string]bool
	rendered  []string
	data      map[string]any
}

func newStubViews(names ...string) *stubViews {
	templates := make(map[string]bool, len(names))
	for _, name := range names {
		templates[name] = true
	}
	return &stubViews{templates: templates}
}

func (s *stubViews) Exists(name string) bool {
	return s.templates[name]
}

func (s *stubViews) Render(name string, data map[string]any) (string, error) {
	if !s.templates[name] {
		return "", fmt.Errorf("missing %s", name)
	}
	s.rendered = append(s.rendered, name)
	s.data = data
	return "rendered:" + name, nil
}

func TestRenderFallsBackToKeyTemplate(t *testing.T) {
	views := newStubViews("fields/key/index")
	record := field.MapRecord{"first_name": "Ada"}

	text := field.Must(field.Make(newText, "first_name"))
	if text.ID() != "first_name" || text.Title() != "First name" {
		t.Fatalf("unexpected identity %q/%q", text.ID(), text.Title())
	}

	out, err := text.Bind(record).Render(views, field.PageIndex)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "rendered:fields/key/index" {
		t.Fatalf("expected fallback template, got %q", out)
	}

	got, ok := views.data["field"].(field.Descriptor)
	if !ok {
		t.Fatalf("expected descriptor in context, got %T", views.data["field"])
	}
	if got.Base().Value() != "Ada" {
		t.Fatalf("expected value Ada reachable from context, got %v", got.Base().Value())
	}
	if views.data["record"] == nil {
		t.Fatalf("expected record in context")
	}
}

func TestRenderPrefersTypeTemplate(t *testing.T) {
	views := newStubViews("fields/key/edit", "fields/text/edit")
	text := field.Must(field.Make(newText, "Title"))

	out, err := text.Render(views, field.PageEdit)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "rendered:fields/text/edit" {
		t.Fatalf("expected type specific template, got %q", out)
	}
}

func TestRenderMergesPageHook(t *testing.T) {
	views := newStubViews("fields/number/edit", "fields/key/index")
	number := field.Must(field.Make(newNumber, "Age"))

	if _, err := number.Render(views, field.PageEdit); err != nil {
		t.Fatalf("render edit: %v", err)
	}
	if views.data["step"] != 1 {
		t.Fatalf("expected hook data merged, got %v", views.data["step"])
	}
	if views.data["field"] != "overridden" {
		t.Fatalf("expected hook output to win on collision, got %v", views.data["field"])
	}

	if _, err := number.Render(views, field.PageIndex); err != nil {
		t.Fatalf("render index: %v", err)
	}
	if _, ok := views.data["step"]; ok {
		t.Fatalf("index hook should not contribute step")
	}
}

func TestRenderFailsWithoutAnyTemplate(t *testing.T) {
	views := newStubViews()
	text := field.Must(field.Make(newText, "Title"))

	_, err := text.Render(views, field.PageView)
	if !errors.Is(err, field.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestRenderUsesFormatterWithoutTemplates(t *testing.T) {
	views := newStubViews()
	record := field.MapRecord{"title": "Hello"}

	var gotContext any
	text := field.Must(field.Make(newText, "Title"))
	text.Bind(record).SetFormat(func(value any, context any, args ...any) (string, error) {
		gotContext = context
		return fmt.Sprintf("%v%v", value, args[0]), nil
	}, "!")

	out, err := text.Render(views, field.PageIndex)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Hello!" {
		t.Fatalf("expected formatter output, got %q", out)
	}
	if len(views.rendered) != 0 {
		t.Fatalf("formatter must bypass templates, rendered %v", views.rendered)
	}
	if _, ok := gotContext.(field.MapRecord); !ok {
		t.Fatalf("expected record as default formatter context, got %T", gotContext)
	}
}

func TestRenderUsesFormatInputHook(t *testing.T) {
	money := field.Must(field.Make(newMoney, "Price"))
	money.SetValue(12).SetFormat(func(value any, context any, _ ...any) (string, error) {
		return fmt.Sprintf("%v %v", value, context), nil
	})

	out, err := money.Render(nil, field.PageView)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "12 EUR" {
		t.Fatalf("expected hook supplied formatter input, got %q", out)
	}
}

func TestRenderWrapsFormatterErrors(t *testing.T) {
	boom := errors.New("boom")
	text := field.Must(field.Make(newText, "Title"))
	text.SetFormat(func(any, any, ...any) (string, error) { return "", boom })

	if _, err := text.Render(nil, field.PageIndex); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped formatter error, got %v", err)
	}
}

func TestRenderRejectsDetachedField(t *testing.T) {
	var detached field.Field
	if _, err := detached.Render(newStubViews(), field.PageIndex); !errors.Is(err, field.ErrDetached) {
		t.Fatalf("expected ErrDetached, got %v", err)
	}
}

func TestTemplateName(t *testing.T) {
	cases := map[string]string{
		"Text":     "fields/text/edit",
		"Textarea": "fields/textarea/edit",
		"RichText": "fields/rich_text/edit",
	}
	for typeName, want := range cases {
		if got := field.TemplateName(typeName, field.PageEdit); got != want {
			t.Fatalf("template name for %s: want %s, got %s", typeName, want, got)
		}
	}
}
