package walker

import (
	"os"
	"path/filepath"
	"testing"
)

func mustWrite(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("content\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCollect_FiltersByExtension(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, root, "main.go")
	mustWrite(t, root, "app.js")
	mustWrite(t, root, "readme.md")
	mustWrite(t, root, "notes.txt")

	files, err := Collect(root, []string{".go", ".js"}, nil)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("files = %v, want main.go and app.js only", files)
	}
}

func TestCollect_SkipsIgnoredDirectories(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, root, "src/app.js")
	mustWrite(t, root, "node_modules/lib/index.js")
	mustWrite(t, root, "sub/node_modules/other.js")
	mustWrite(t, root, ".git/hooks/pre-commit.py")

	files, err := Collect(root, DefaultExtensions, DefaultSkipDirs)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("files = %v, want only src/app.js", files)
	}
	if filepath.Base(files[0]) != "app.js" {
		t.Errorf("files[0] = %q", files[0])
	}
}

func TestCollect_CaseInsensitiveExtensions(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, root, "Legacy.JAVA")

	files, err := Collect(root, []string{".java"}, nil)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("files = %v, want the .JAVA file matched", files)
	}
}

func TestCollect_EmptyTree(t *testing.T) {
	files, err := Collect(t.TempDir(), DefaultExtensions, DefaultSkipDirs)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files = %v, want none", files)
	}
}
