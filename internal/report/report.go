// Package report builds the final, JSON-serializable scan report
// consumed by the CLI and the history store.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"ripple/internal/engine"
)

// Location is one reference to a route in source text.
type Location struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Preview string `json:"preview"`
}

// RouteReport is the per-route result: reference count and locations.
type RouteReport struct {
	Path      string     `json:"path"`
	Templated bool       `json:"templated,omitempty"`
	Count     int        `json:"count"`
	Locations []Location `json:"locations"`
}

// Summary aggregates per-run statistics and accumulated warnings.
type Summary struct {
	TotalRoutes  int              `json:"totalRoutes"`
	Referenced   int              `json:"referenced"`
	Unreferenced int              `json:"unreferenced"`
	FilesScanned int              `json:"filesScanned"`
	DurationMs   int64            `json:"durationMs"`
	Warnings     []engine.Warning `json:"warnings,omitempty"`
}

// Report is the complete result of one scan run.
type Report struct {
	RunID     string        `json:"runId"`
	SpecPath  string        `json:"specPath"`
	ScanDir   string        `json:"scanDir"`
	CreatedAt time.Time     `json:"createdAt"`
	Routes    []RouteReport `json:"routes"`
	Summary   Summary       `json:"summary"`
}

// Build converts the aggregate mapping into a report, preserving
// route-declaration order.
func Build(runID, specPath, scanDir string, entries []*engine.AggregateEntry, filesScanned int, warnings []engine.Warning, duration time.Duration) *Report {
	r := &Report{
		RunID:     runID,
		SpecPath:  specPath,
		ScanDir:   scanDir,
		CreatedAt: time.Now().UTC(),
		Routes:    make([]RouteReport, 0, len(entries)),
		Summary: Summary{
			TotalRoutes:  len(entries),
			FilesScanned: filesScanned,
			DurationMs:   duration.Milliseconds(),
			Warnings:     warnings,
		},
	}

	for _, entry := range entries {
		route := RouteReport{
			Path:      entry.Route.Path,
			Templated: entry.Route.IsTemplated,
			Count:     entry.TotalCount,
			Locations: make([]Location, 0, len(entry.Locations)),
		}
		for _, loc := range entry.Locations {
			route.Locations = append(route.Locations, Location{
				File:    loc.FilePath,
				Line:    loc.LineNumber,
				Preview: loc.LinePreview,
			})
		}
		if entry.TotalCount > 0 {
			r.Summary.Referenced++
		} else {
			r.Summary.Unreferenced++
		}
		r.Routes = append(r.Routes, route)
	}
	return r
}

// HasUnused reports whether any route has zero references. Used for
// CI gating.
func (r *Report) HasUnused() bool {
	return r.Summary.Unreferenced > 0
}

// Encode writes the report as indented JSON.
func (r *Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteFile writes the report to path, gzip-compressed when the path
// ends in .gz.
func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var w io.Writer = f
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(f)
		defer func() { _ = gz.Close() }()
		w = gz
	}
	if err := r.Encode(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
