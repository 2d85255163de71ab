// Package walker enumerates candidate source files for a scan.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions lists the file types scanned when no configuration
// overrides them.
var DefaultExtensions = []string{".js", ".ts", ".py", ".go", ".java", ".php"}

// DefaultSkipDirs lists directory names never descended into: VCS
// metadata, dependency trees, and build output.
var DefaultSkipDirs = []string{
	"node_modules", ".git", "venv", ".venv", "env",
	"dist", "build", "__pycache__", ".idea", ".vscode",
	"target", "bin", "obj", "vendor", "third_party",
}

// Collect walks root and returns every file whose extension is in the
// allow-list, skipping ignored directories by name. Paths come back in
// walk order (lexical within each directory).
func Collect(root string, extensions, skipDirs []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot scan %s: not a directory", root)
	}

	allow := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allow[strings.ToLower(ext)] = true
	}
	skip := make(map[string]bool, len(skipDirs))
	for _, dir := range skipDirs {
		skip[dir] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are a per-file concern, not a walk failure
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && skip[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if allow[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}
