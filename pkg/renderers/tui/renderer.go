// Package tui collects edit page values for a field set from a terminal
// session.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-fieldkit/pkg/field"
	"github.com/goliatone/go-fieldkit/pkg/fields"
	"github.com/goliatone/go-fieldkit/pkg/render"
)

var _ render.Renderer = (*Renderer)(nil)

// Renderer prompts for every field visible on the edit page and serializes
// the answers.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{outputFormat: OutputFormatJSON}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Collect binds record (which may be nil) to set, prompts for each field
// visible on the edit page in set order and returns the answers keyed by
// field id. Current values become prompt defaults.
func (r *Renderer) Collect(ctx context.Context, set *field.Set, record field.Record) (field.MapRecord, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if set == nil {
		return nil, errors.New("tui: field set is required")
	}

	visible := set.VisibleOn(field.PageEdit)
	if len(visible) == 0 {
		return nil, ErrNoEditableFields
	}
	set.Bind(record)

	state := NewState(nil)
	for _, d := range visible {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value, err := r.promptField(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("tui: field %q: %w", d.Base().ID(), err)
		}
		if err := state.SetValue(d.Base().ID(), value); err != nil {
			return nil, err
		}
	}
	return state.Record(), nil
}

// Render collects the values for req.Fields, prefilled from the first record,
// and serializes them in the configured format. The edit page is always
// prompted regardless of req.Page.
func (r *Renderer) Render(ctx context.Context, req render.Request) ([]byte, error) {
	collected, err := r.Collect(ctx, req.Fields, req.Record())
	if err != nil {
		return nil, err
	}

	values := map[string]any(collected)
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

func (r *Renderer) promptField(ctx context.Context, d field.Descriptor) (any, error) {
	switch typed := d.(type) {
	case *fields.Boolean:
		return r.promptBoolean(ctx, typed)
	case *fields.Number:
		return r.promptNumber(ctx, typed)
	case *fields.Enum:
		return r.promptEnum(ctx, typed)
	case *fields.Textarea:
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: r.label(d),
			Default: currentString(d),
			Help:    d.Base().Description(),
		})
	case *fields.Email:
		return r.promptString(ctx, d, validateEmail)
	default:
		return r.promptString(ctx, d, maxLengthRule(d))
	}
}

func (r *Renderer) promptString(ctx context.Context, d field.Descriptor, validate func(string) error) (string, error) {
	base := d.Base()
	cfg := InputConfig{
		Message:   r.label(d),
		Default:   currentString(d),
		Help:      base.Description(),
		Validator: validate,
	}
	secret := !base.IsVisibleOnPage(field.PageIndex) && !base.IsVisibleOnPage(field.PageView)

	for {
		var (
			response string
			err      error
		)
		if secret {
			response, err = r.driver.Password(ctx, cfg)
		} else {
			response, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return "", err
		}
		if validate != nil {
			if err := validate(response); err != nil {
				if err := r.info(ctx, fmt.Sprintf("Invalid %s: %v", base.ID(), err)); err != nil {
					return "", err
				}
				continue
			}
		}
		return response, nil
	}
}

func (r *Renderer) promptBoolean(ctx context.Context, b *fields.Boolean) (bool, error) {
	return r.driver.Confirm(ctx, ConfirmConfig{
		Message: r.label(b),
		Default: b.Checked(),
		Help:    b.Description(),
	})
}

func (r *Renderer) promptNumber(ctx context.Context, n *fields.Number) (any, error) {
	validate := numberRule(n)
	cfg := InputConfig{
		Message:   r.label(n),
		Default:   fields.FormatNumber(n.Value(), -1),
		Help:      n.Description(),
		Validator: validate,
	}

	for {
		input, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return nil, err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return nil, nil
		}
		if err := validate(input); err != nil {
			if err := r.info(ctx, fmt.Sprintf("Invalid %s: %v", n.ID(), err)); err != nil {
				return nil, err
			}
			continue
		}
		if n.Integer() {
			parsed, _ := strconv.ParseInt(input, 10, 64)
			return parsed, nil
		}
		parsed, _ := strconv.ParseFloat(input, 64)
		return parsed, nil
	}
}

func (r *Renderer) promptEnum(ctx context.Context, e *fields.Enum) (string, error) {
	choices := e.Choices()
	if len(choices) == 0 {
		return "", errors.New("enum has no options")
	}

	labels := make([]string, len(choices))
	defaultIdx := -1
	for idx, choice := range choices {
		labels[idx] = choice.Label
		if choice.Selected {
			defaultIdx = idx
		}
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      r.label(e),
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         e.Description(),
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(choices) {
			if err := r.info(ctx, fmt.Sprintf("Invalid %s selection", e.ID())); err != nil {
				return "", err
			}
			continue
		}
		return choices[idx].Value, nil
	}
}

func (r *Renderer) label(d field.Descriptor) string {
	return r.theme.PromptPrefix + d.Base().Title()
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func currentString(d field.Descriptor) string {
	value := d.Base().Value()
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func validateEmail(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != strings.TrimSpace(value) {
		return errors.New("not an email address")
	}
	return nil
}

func maxLengthRule(d field.Descriptor) func(string) error {
	raw, ok := d.Base().Attribute("maxlength")
	if !ok {
		return nil
	}
	limit, ok := raw.(int)
	if !ok || limit <= 0 {
		return nil
	}
	return func(value string) error {
		if len([]rune(value)) > limit {
			return fmt.Errorf("max length %d", limit)
		}
		return nil
	}
}

func numberRule(n *fields.Number) func(string) error {
	lower, upper := n.Bounds()
	integer := n.Integer()
	return func(raw string) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		var value float64
		if integer {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return errors.New("expected a whole number")
			}
			value = float64(parsed)
		} else {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return errors.New("expected a number")
			}
			value = parsed
		}
		if lower != nil && value < *lower {
			return fmt.Errorf("min %v", *lower)
		}
		if upper != nil && value > *upper {
			return fmt.Errorf("max %v", *upper)
		}
		return nil
	}
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, val, out)
		}
	case nil:
		out.Set(prefix, "")
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			writePretty(b, next, v[key])
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, v)
		}
	}
}
