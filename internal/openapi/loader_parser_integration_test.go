package openapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fieldkit"
	pkgopenapi "github.com/goliatone/go-fieldkit/pkg/openapi"
	"github.com/goliatone/go-fieldkit/pkg/schema"
)

func TestLoaderParserIntegration(t *testing.T) {
	ctx := context.Background()

	fixture := filepath.Join("testdata", "blog.yaml")
	data, err := os.ReadFile(fixture)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}))
	defer server.Close()

	loader := fieldkit.NewLoader(
		pkgopenapi.WithFileSystem(os.DirFS("testdata")),
		pkgopenapi.WithHTTPClient(server.Client()),
	)
	parser := fieldkit.NewParser()

	sources := map[string]pkgopenapi.Source{
		"file": pkgopenapi.SourceFromFile(fixture),
		"fs":   pkgopenapi.SourceFromFS("blog.yaml"),
		"url":  pkgopenapi.SourceFromURL(server.URL + "/blog.yaml"),
	}

	var want []string
	for name, src := range sources {
		doc, err := loader.Load(ctx, src)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		resource, err := parser.Definitions(ctx, doc, "BlogPost")
		if err != nil {
			t.Fatalf("definitions %s: %v", name, err)
		}
		if resource.Source != src.Location() {
			t.Fatalf("%s: expected source %q, got %q", name, src.Location(), resource.Source)
		}

		set, err := schema.Build(resource)
		if err != nil {
			t.Fatalf("build %s: %v", name, err)
		}
		var got []string
		for _, d := range set.All() {
			got = append(got, d.Base().ID()+":"+d.Type())
		}
		if want == nil {
			want = got
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s: fields mismatch (-want +got):\n%s", name, diff)
		}
	}

	if diff := cmp.Diff([]string{"title:Text", "body:Textarea", "published_at:Text", "status:Enum"}, want); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}
