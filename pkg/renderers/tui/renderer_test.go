package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldkit/pkg/field"
	"github.com/goliatone/go-fieldkit/pkg/fields"
	"github.com/goliatone/go-fieldkit/pkg/render"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	inputConfigs []InputConfig
	selectConfig []SelectConfig
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfig = append(s.selectConfig, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func postSet(t *testing.T) *field.Set {
	t.Helper()

	title := field.Must(fields.NewText("Title"))
	if err := title.SetAttribute("maxlength", 5); err != nil {
		t.Fatalf("set maxlength: %v", err)
	}
	body := field.Must(fields.NewTextarea("Body"))
	email := field.Must(fields.NewEmail("Email"))
	views := field.Must(fields.NewNumber("Views"))
	if err := views.SetAttributes(map[string]any{"min": 0, "precision": 0}); err != nil {
		t.Fatalf("set views attributes: %v", err)
	}
	active := field.Must(fields.NewBoolean("Active"))
	status := field.Must(fields.NewEnum("Status"))
	if err := status.SetAttribute("options", []string{"draft", "live"}); err != nil {
		t.Fatalf("set options: %v", err)
	}
	token := field.Must(fields.NewText("Token"))
	token.HideOnPages(field.PageIndex, field.PageView)
	id := field.Must(fields.NewKey("Id"))
	id.HideOnPages(field.PageEdit)

	set, err := field.NewSet(id, title, body, email, views, active, status, token)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	return set
}

func TestCollectPromptsVisibleEditFields(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Too long", "Hello", "not-an-email", "ada@example.com", "-1", "12"},
		textAreas: []string{"Body text"},
		confirm:   []bool{true},
		selectIdx: []int{1},
		passwords: []string{"s3cret"},
	}
	renderer, err := New(WithPromptDriver(driver), WithTheme(Theme{InfoPrefix: "! "}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	got, err := renderer.Collect(context.Background(), postSet(t), field.MapRecord{"status": "draft", "title": "Old"})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := field.MapRecord{
		"title":  "Hello",
		"body":   "Body text",
		"email":  "ada@example.com",
		"views":  int64(12),
		"active": true,
		"status": "live",
		"token":  "s3cret",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	if len(driver.infoMessages) != 3 || !strings.HasPrefix(driver.infoMessages[0], "! Invalid title") {
		t.Fatalf("expected three prefixed validation messages, got %v", driver.infoMessages)
	}
	if driver.inputConfigs[0].Default != "Old" {
		t.Fatalf("expected bound value as default, got %q", driver.inputConfigs[0].Default)
	}
	if cfg := driver.selectConfig[0]; cfg.DefaultIndex != 0 || cfg.Options[1] != "live" {
		t.Fatalf("unexpected select config %+v", cfg)
	}
}

func TestCollectStoresNestedIDs(t *testing.T) {
	city := field.Must(fields.NewText("City", field.WithID("address.city")))
	set, err := field.NewSet(city)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	renderer, err := New(WithPromptDriver(&stubDriver{inputs: []string{"Lyon"}}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	got, err := renderer.Collect(context.Background(), set, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if value := got.GetAttribute("address.city"); value != "Lyon" {
		t.Fatalf("expected nested value, got %v", value)
	}
}

func TestRenderSerializesFormats(t *testing.T) {
	title := field.Must(fields.NewText("Title"))
	active := field.Must(fields.NewBoolean("Active"))
	set, err := field.NewSet(title, active)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}

	cases := map[OutputFormat]string{
		OutputFormatJSON:           `{"active":false,"title":"Hi"}`,
		OutputFormatFormURLEncoded: "active=false&title=Hi",
		OutputFormatPrettyText:     "active=false\ntitle=Hi\n",
	}
	for format, want := range cases {
		renderer, err := New(
			WithPromptDriver(&stubDriver{inputs: []string{"Hi"}, confirm: []bool{false}}),
			WithOutputFormat(format),
		)
		if err != nil {
			t.Fatalf("new renderer: %v", err)
		}
		out, err := renderer.Render(context.Background(), render.Request{Page: field.PageEdit, Fields: set})
		if err != nil {
			t.Fatalf("render %s: %v", format, err)
		}
		if string(out) != want {
			t.Fatalf("format %s: want %q, got %q", format, want, out)
		}
	}
}

func TestRenderAppliesSubmitTransformer(t *testing.T) {
	title := field.Must(fields.NewText("Title"))
	set, err := field.NewSet(title)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	renderer, err := New(
		WithPromptDriver(&stubDriver{inputs: []string{"hi"}}),
		WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
			values["title"] = strings.ToUpper(values["title"].(string))
			return values, nil
		}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), render.Request{Page: field.PageEdit, Fields: set})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != `{"title":"HI"}` {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestCollectErrors(t *testing.T) {
	renderer, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx := context.Background()

	if _, err := renderer.Collect(ctx, nil, nil); err == nil {
		t.Fatalf("expected nil set error")
	}

	hidden := field.Must(fields.NewText("Title"))
	hidden.HideOnPages(field.PageEdit)
	set, err := field.NewSet(hidden)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	if _, err := renderer.Collect(ctx, set, nil); !errors.Is(err, ErrNoEditableFields) {
		t.Fatalf("expected ErrNoEditableFields, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := renderer.Collect(cancelled, postSet(t), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}

	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestStateSetValueRejectsScalarParent(t *testing.T) {
	state := NewState(map[string]any{"address": "Main st"})
	if err := state.SetValue("address.city", "Lyon"); err == nil {
		t.Fatalf("expected error when parent is not an object")
	}
	if err := state.SetValue("tags.first", "go"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if value, ok := state.GetValue("tags.first"); !ok || value != "go" {
		t.Fatalf("unexpected value %v (%v)", value, ok)
	}
}
