package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"ripple/internal/report"
	"ripple/internal/version"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// maxLocationsShown caps per-route location listings in human output.
const maxLocationsShown = 5

// FormatReport formats a scan report according to the specified format.
func FormatReport(r *report.Report, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(r)
	case FormatHuman:
		return formatReportHuman(r), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatReportHuman(r *report.Report) string {
	var b strings.Builder

	used := color.New(color.FgGreen).SprintFunc()
	unused := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	b.WriteString(fmt.Sprintf("Ripple v%s\n", version.Version))
	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString(fmt.Sprintf("Spec: %s\nDir:  %s\n\n", r.SpecPath, r.ScanDir))

	for _, route := range r.Routes {
		if route.Count > 0 {
			b.WriteString(fmt.Sprintf("%s %s (%d reference%s)\n",
				used("[used]  "), route.Path, route.Count, plural(route.Count)))
			for i, loc := range route.Locations {
				if i == maxLocationsShown {
					b.WriteString(fmt.Sprintf("         %s\n",
						dim(fmt.Sprintf("... and %d more", len(route.Locations)-maxLocationsShown))))
					break
				}
				b.WriteString(fmt.Sprintf("         %s:%d  %s\n", loc.File, loc.Line, dim(loc.Preview)))
			}
		} else {
			b.WriteString(fmt.Sprintf("%s %s\n", unused("[unused]"), route.Path))
		}
	}

	b.WriteString("\n" + strings.Repeat("-", 60) + "\n")
	b.WriteString(fmt.Sprintf("Routes:  %d total, %d referenced, %d unreferenced\n",
		r.Summary.TotalRoutes, r.Summary.Referenced, r.Summary.Unreferenced))
	b.WriteString(fmt.Sprintf("Scanned: %d files in %dms\n",
		r.Summary.FilesScanned, r.Summary.DurationMs))

	if len(r.Summary.Warnings) > 0 {
		b.WriteString(fmt.Sprintf("\n%s\n", unused(fmt.Sprintf("Warnings (%d):", len(r.Summary.Warnings)))))
		for _, w := range r.Summary.Warnings {
			if w.Code != "" {
				b.WriteString(fmt.Sprintf("  - [%s] %s\n", w.Code, w.Text))
			} else {
				b.WriteString(fmt.Sprintf("  - %s\n", w.Text))
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
