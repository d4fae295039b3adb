package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/goliatone/go-fieldkit"
	"github.com/goliatone/go-fieldkit/pkg/field"
	"github.com/goliatone/go-fieldkit/pkg/fields"
	pkgopenapi "github.com/goliatone/go-fieldkit/pkg/openapi"
	"github.com/goliatone/go-fieldkit/pkg/orchestrator"
	"github.com/goliatone/go-fieldkit/pkg/renderers/tui"
	"github.com/goliatone/go-fieldkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-fieldkit/pkg/schema"
	"github.com/goliatone/go-fieldkit/pkg/sorting"
)

func main() {
	schemaPath := flag.String("schema", "", "definition file or directory (JSON/YAML)")
	resource := flag.String("resource", "", "resource name from -schema, or caption override with -component")
	openapiSource := flag.String("openapi", "", "OpenAPI document path or URL")
	component := flag.String("component", "", "OpenAPI component schema to render")
	recordPath := flag.String("record", "", "JSON file with one record object or an array of records")
	page := flag.String("page", "edit", "page to render: index, edit or view")
	output := flag.String("output", "", "output file (stdout if empty)")
	interactive := flag.Bool("interactive", false, "collect edit values in the terminal and print them")
	format := flag.String("format", "json", "interactive output format: json, form or pretty")
	sortBy := flag.String("sort", "", "index column to sort by")
	direction := flag.String("direction", "asc", "index sort direction: asc or desc")
	action := flag.String("action", "", "edit form action")
	presetPath := flag.String("preset", "", "JSON/YAML field patches applied after building")
	themePath := flag.String("theme", "", "go-theme manifest (YAML) overriding partials")
	variant := flag.String("variant", "", "theme variant")
	templatesDir := flag.String("templates", "", "directory of templates layered over the embedded partials")
	emitSchema := flag.Bool("emit-schema", false, "print the resolved definitions as YAML and exit")
	timeout := flag.Duration("http-timeout", 10*time.Second, "timeout for remote OpenAPI documents")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	targetPage, ok := field.ParsePage(*page)
	if !ok {
		log.Fatalf("unknown page %q", *page)
	}

	options := []orchestrator.Option{
		orchestrator.WithLoader(fieldkit.NewLoader(pkgopenapi.WithHTTPFallback(*timeout))),
	}
	if *schemaPath != "" {
		store, err := loadStore(*schemaPath)
		if err != nil {
			log.Fatalf("Failed to load definitions: %v", err)
		}
		options = append(options, orchestrator.WithSchemaStore(store))
	}
	if *presetPath != "" {
		data, err := os.ReadFile(*presetPath)
		if err != nil {
			log.Fatalf("Failed to read preset: %v", err)
		}
		preset, err := orchestrator.NewPresetTransformer(data, fields.Registry())
		if err != nil {
			log.Fatalf("Failed to parse preset: %v", err)
		}
		options = append(options, orchestrator.WithTransformer(preset))
	}
	renderer, err := newPageRenderer(*themePath, *variant, *templatesDir)
	if err != nil {
		log.Fatalf("Failed to configure renderer: %v", err)
	}
	options = append(options, orchestrator.WithRenderer(renderer))
	if *interactive {
		collector, err := tui.New(tui.WithOutputFormat(tui.OutputFormat(*format)))
		if err != nil {
			log.Fatalf("Failed to configure prompts: %v", err)
		}
		options = append(options, orchestrator.WithRenderer(collector))
	}

	req := orchestrator.Request{
		Resource:  *resource,
		Component: *component,
		Page:      targetPage,
		SortBy:    *sortBy,
		Direction: sorting.ParseDirection(*direction),
		Action:    *action,
	}
	if *openapiSource != "" {
		src, err := pkgopenapi.ParseSource(*openapiSource)
		if err != nil {
			log.Fatalf("invalid source: %v", err)
		}
		req.Source = src
	}
	if *recordPath != "" {
		records, err := loadRecords(*recordPath)
		if err != nil {
			log.Fatalf("Failed to load records: %v", err)
		}
		req.Records = records
	}

	gen := orchestrator.New(options...)

	var out []byte
	switch {
	case *emitSchema:
		result, err := gen.Resolve(ctx, req)
		if err != nil {
			log.Fatalf("Failed to resolve fields: %v", err)
		}
		out, err = schema.EncodeYAML(result.Resource)
		if err != nil {
			log.Fatalf("Failed to encode definitions: %v", err)
		}
	default:
		out, err = gen.Generate(ctx, req)
		if err != nil {
			log.Fatalf("Failed to render page: %v", err)
		}
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
		return
	}
	fmt.Println(string(out))
}

func loadStore(path string) (*schema.Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return schema.LoadFS(os.DirFS(path))
	}
	return schema.LoadFile(path)
}

func newPageRenderer(themePath, variant, templatesDir string) (*vanilla.Renderer, error) {
	options := []vanilla.Option{vanilla.WithTemplatesDir(templatesDir)}
	if themePath != "" {
		data, err := os.ReadFile(themePath)
		if err != nil {
			return nil, fmt.Errorf("read theme: %w", err)
		}
		manifest, err := vanilla.LoadManifest(data)
		if err != nil {
			return nil, err
		}
		options = append(options, vanilla.WithThemeSelector(vanilla.NewManifestSelector(manifest), manifest.Name, variant))
	}
	return vanilla.New(options...)
}

// loadRecords accepts a JSON object or an array of objects.
func loadRecords(path string) ([]field.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)

	if strings.HasPrefix(string(data), "[") {
		var rows []map[string]any
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		records := make([]field.Record, 0, len(rows))
		for _, row := range rows {
			records = append(records, field.MapRecord(row))
		}
		return records, nil
	}

	var row map[string]any
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return []field.Record{field.MapRecord(row)}, nil
}
