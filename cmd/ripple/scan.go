package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ripple/internal/config"
	"ripple/internal/engine"
	"ripple/internal/history"
	"ripple/internal/logging"
	"ripple/internal/report"
	"ripple/internal/spec"
	"ripple/internal/walker"
)

var (
	scanSpecPath     string
	scanDir          string
	scanFormat       string
	scanOutput       string
	scanWorkers      int
	scanFailOnUnused bool
	scanNoHistory    bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a source tree for API route references",
	Long: `Scan a source tree for references to the routes declared in an OpenAPI
specification. Comments are excluded from matching; templated routes such as
/products/{id} match any concrete path segment.

Examples:
  ripple scan --spec openapi.yaml --dir ./src
  ripple scan --spec api.yaml --dir . --workers 8 --format human
  ripple scan --spec api.yaml --dir . --output report.json.gz
  ripple scan --spec api.yaml --dir . --fail-on-unused`,
	Run: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanSpecPath, "spec", "", "Path to the OpenAPI specification (required)")
	scanCmd.Flags().StringVar(&scanDir, "dir", ".", "Source tree root to scan")
	scanCmd.Flags().StringVar(&scanFormat, "format", "human", "Output format (json, human)")
	scanCmd.Flags().StringVar(&scanOutput, "output", "", "Write the JSON report to a file (.gz compresses)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Worker count (0 = available parallelism)")
	scanCmd.Flags().BoolVar(&scanFailOnUnused, "fail-on-unused", false, "Exit with code 2 when unreferenced routes exist")
	scanCmd.Flags().BoolVar(&scanNoHistory, "no-history", false, "Do not record this run in the history store")
	_ = scanCmd.MarkFlagRequired("spec")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) {
	start := time.Now()

	dir, err := filepath.Abs(scanDir)
	if err != nil {
		fatalf("Error resolving scan directory: %v", err)
	}

	cfg, unknownKeys, err := config.LoadConfig(dir)
	if err != nil {
		fatalf("Error loading configuration: %v", err)
	}
	logger := newLogger(cfg.Logging)

	routePaths, err := spec.LoadRoutePaths(scanSpecPath)
	if err != nil {
		fatalf("Error loading API spec: %v", err)
	}
	logger.Info("Loaded API spec", map[string]interface{}{
		"spec":   scanSpecPath,
		"routes": len(routePaths),
	})

	matcher, compileWarnings := engine.Compile(routePaths)

	files, err := walker.Collect(dir, cfg.Extensions, cfg.SkipDirs)
	if err != nil {
		fatalf("Error collecting files: %v", err)
	}
	logger.Info("Collected candidate files", map[string]interface{}{
		"dir":   dir,
		"files": len(files),
	})

	agg := engine.NewAggregator(matcher.Routes())
	agg.AddWarnings(compileWarnings...)
	for _, key := range unknownKeys {
		agg.AddWarnings(engine.Warning{
			Severity: engine.SeverityWarn,
			Code:     engine.CodeConfigUnknownKey,
			Text:     fmt.Sprintf("unrecognized configuration key %q ignored", key),
		})
	}

	workers := scanWorkers
	if workers == 0 {
		workers = cfg.MaxWorkers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coordinator := engine.NewCoordinator(matcher, workers, logger)
	if err := coordinator.Run(ctx, files, agg); err != nil {
		fatalf("Scan failed: %v", err)
	}

	rep := report.Build(uuid.NewString(), scanSpecPath, dir,
		agg.Entries(), agg.FilesScanned(), agg.Warnings(), time.Since(start))

	if cfg.History.Enabled && !scanNoHistory {
		saveRun(rep, filepath.Join(dir, cfg.History.Dir), logger)
	}

	if scanOutput != "" {
		if err := rep.WriteFile(scanOutput); err != nil {
			fatalf("Error writing report: %v", err)
		}
		logger.Info("Report written", map[string]interface{}{"path": scanOutput})
	}

	output, err := FormatReport(rep, OutputFormat(scanFormat))
	if err != nil {
		fatalf("Error formatting output: %v", err)
	}
	fmt.Println(output)

	if (scanFailOnUnused || cfg.FailOnUnused) && rep.HasUnused() {
		os.Exit(2)
	}
}

// saveRun records the run in the history store. History failures are a
// warning, not a scan failure.
func saveRun(rep *report.Report, dir string, logger *logging.Logger) {
	store, err := history.OpenStore(dir, logger)
	if err != nil {
		logger.Warn("Failed to open history store", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveRun(rep); err != nil {
		logger.Warn("Failed to record scan run", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
