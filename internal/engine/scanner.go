package engine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MatchRecord is one concrete occurrence of a route reference in
// source text. Read-only once created.
type MatchRecord struct {
	RoutePath   string
	FilePath    string
	LineNumber  int // 1-based
	LinePreview string
}

const maxPreviewLen = 200

// FileScanner evaluates single files against a compiled pattern set.
type FileScanner struct {
	matcher *Matcher
}

// NewFileScanner creates a scanner over the given matcher.
func NewFileScanner(matcher *Matcher) *FileScanner {
	return &FileScanner{matcher: matcher}
}

// Scan reads one file and returns its matches in ascending line order.
// Per-file failures are reported as warnings, never as errors: a bad
// file contributes zero matches and must not take down the run.
func (s *FileScanner) Scan(path string) ([]MatchRecord, []Warning) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []Warning{{
			Severity: SeverityWarn,
			Code:     CodeFileUnreadable,
			Text:     fmt.Sprintf("skipping %s: %v", path, err),
		}}
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, []Warning{{
			Severity: SeverityWarn,
			Code:     CodeFileBinary,
			Text:     fmt.Sprintf("skipping %s: binary content", path),
		}}
	}

	stripped, warnings := StripComments(string(data), filepath.Ext(path))
	for i := range warnings {
		warnings[i].Text = path + ": " + warnings[i].Text
	}

	// Matching runs over stripped text; previews come from the
	// original lines so the report shows real code.
	origLines := strings.Split(string(data), "\n")
	codeLines := strings.Split(stripped, "\n")

	var records []MatchRecord
	for i, line := range codeLines {
		matches := s.matcher.MatchLine(line)
		if len(matches) == 0 {
			continue
		}
		preview := previewOf(origLines[i])
		for _, m := range matches {
			records = append(records, MatchRecord{
				RoutePath:   m.Route.Path,
				FilePath:    path,
				LineNumber:  i + 1,
				LinePreview: preview,
			})
		}
	}
	return records, warnings
}

func previewOf(line string) string {
	p := strings.TrimSpace(line)
	if len(p) > maxPreviewLen {
		p = p[:maxPreviewLen]
	}
	return p
}
