package spec

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSpec(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRoutePaths_YAMLOrderPreserved(t *testing.T) {
	path := writeSpec(t, "openapi.yaml", `openapi: "3.0.0"
info:
  title: Shop API
  version: "1.0"
paths:
  /products/{id}:
    get: {}
  /users/login:
    post: {}
  /orders:
    get: {}
`)

	paths, err := LoadRoutePaths(path)
	if err != nil {
		t.Fatalf("LoadRoutePaths failed: %v", err)
	}

	want := []string{"/products/{id}", "/users/login", "/orders"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q (declaration order)", i, paths[i], want[i])
		}
	}
}

func TestLoadRoutePaths_JSONSpec(t *testing.T) {
	path := writeSpec(t, "openapi.json", `{
  "openapi": "3.0.0",
  "paths": {
    "/users/login": {},
    "/products/{id}": {}
  }
}`)

	paths, err := LoadRoutePaths(path)
	if err != nil {
		t.Fatalf("LoadRoutePaths failed: %v", err)
	}
	if len(paths) != 2 || paths[0] != "/users/login" {
		t.Errorf("paths = %v", paths)
	}
}

func TestLoadRoutePaths_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no paths object", "openapi: \"3.0.0\"\ninfo:\n  title: x\n"},
		{"paths not a mapping", "paths: [a, b]\n"},
		{"not a mapping document", "- just\n- a\n- list\n"},
		{"invalid yaml", "paths:\n  bad: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSpec(t, "openapi.yaml", tt.content)
			if _, err := LoadRoutePaths(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadRoutePaths_MissingFile(t *testing.T) {
	if _, err := LoadRoutePaths(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}
