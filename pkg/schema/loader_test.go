package schema

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

const postsYAML = `
resources:
  post:
    fields:
      - title: Title
        type: text
        sortable: true
      - id: body
        type: textarea
        hideOn: [index]
        attributes:
          rows: 8
      - title: Status
        type: enum
        showOn: [index, view]
        attributes:
          options:
            draft: Draft
            live: Live
      - title: Summary
`

const usersJSON = `{
  "resources": {
    "user": {
      "fields": [
        {"title": "Name", "hideLabel": true},
        {"title": "Active", "type": "boolean", "description": "Can sign in"}
      ]
    }
  }
}`

func TestLoadFSParsesJSONAndYAML(t *testing.T) {
	store, err := LoadFS(fstest.MapFS{
		"schemas/posts.yaml": {Data: []byte(postsYAML)},
		"schemas/users.json": {Data: []byte(usersJSON)},
		"schemas/README.md":  {Data: []byte("ignored")},
	})
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}

	if diff := cmp.Diff([]string{"post", "user"}, store.Names()); diff != "" {
		t.Fatalf("resource names mismatch (-want +got):\n%s", diff)
	}

	post, ok := store.Resource("post")
	if !ok {
		t.Fatalf("expected post resource")
	}
	if post.Source != "schemas/posts.yaml" || len(post.Fields) != 4 {
		t.Fatalf("unexpected post resource %+v", post)
	}
	if post.Fields[3].Type != DefaultType {
		t.Fatalf("expected default type for untyped field, got %q", post.Fields[3].Type)
	}
	if diff := cmp.Diff([]string{"index"}, post.Fields[1].HideOn); diff != "" {
		t.Fatalf("hideOn mismatch (-want +got):\n%s", diff)
	}

	user, _ := store.Resource("user")
	want := Definition{Title: "Active", Type: "boolean", Description: "Can sign in"}
	if diff := cmp.Diff(want, user.Fields[1]); diff != "" {
		t.Fatalf("json definition mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFSRejectsDuplicateResources(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{
		"a.yaml": {Data: []byte(postsYAML)},
		"b.yaml": {Data: []byte(postsYAML)},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate resource") {
		t.Fatalf("expected duplicate resource error, got %v", err)
	}
}

func TestParseValidatesDefinitions(t *testing.T) {
	cases := map[string]string{
		"empty":        "   ",
		"invalid":      "resources: [",
		"missing name": "resources:\n  post:\n    fields:\n      - type: text\n",
		"unknown page": "resources:\n  post:\n    fields:\n      - title: Title\n        hideOn: [list]\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data), name+".yaml"); err == nil {
				t.Fatalf("expected parse error")
			}
		})
	}
}

func TestLoadFSWithNilFS(t *testing.T) {
	store, err := LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil fs: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func TestEncodeYAMLRoundTripsThroughParse(t *testing.T) {
	resource := Resource{
		Name: "tag",
		Fields: []Definition{
			{Title: "Label", Type: "text", Sortable: true},
			{ID: "color", Type: "enum", HideOn: []string{"edit"}},
		},
	}
	data, err := EncodeYAML(resource)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	parsed, err := Parse(data, "tag.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(parsed) != 1 || parsed[0].Name != "tag" {
		t.Fatalf("unexpected parsed resources %+v", parsed)
	}
	if diff := cmp.Diff(resource.Fields, parsed[0].Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}
