package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ripple/internal/config"
	"ripple/internal/history"
)

var (
	historyDir    string
	historyFormat string
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded scan runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent scan runs",
	Run:   runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the full report of a recorded run",
	Args:  cobra.ExactArgs(1),
	Run:   runHistoryShow,
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDir, "dir", ".", "Source tree root the runs were recorded in")
	historyCmd.PersistentFlags().StringVar(&historyFormat, "format", "json", "Output format (json, human)")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum runs to list")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistoryStore() *history.Store {
	dir, err := filepath.Abs(historyDir)
	if err != nil {
		fatalf("Error resolving directory: %v", err)
	}

	cfg, _, err := config.LoadConfig(dir)
	if err != nil {
		fatalf("Error loading configuration: %v", err)
	}

	store, err := history.OpenStore(filepath.Join(dir, cfg.History.Dir), newLogger(cfg.Logging))
	if err != nil {
		fatalf("Error opening history store: %v", err)
	}
	return store
}

func runHistoryList(cmd *cobra.Command, args []string) {
	store := openHistoryStore()
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(historyLimit)
	if err != nil {
		fatalf("Error listing runs: %v", err)
	}

	if historyFormat == "human" {
		if len(runs) == 0 {
			fmt.Println("No recorded runs.")
			return
		}
		for _, run := range runs {
			fmt.Printf("%s  %s  routes=%d referenced=%d unreferenced=%d files=%d\n",
				run.RunID, run.CreatedAt.Format("2006-01-02 15:04:05"),
				run.TotalRoutes, run.Referenced, run.Unreferenced, run.FilesScanned)
		}
		return
	}

	output, err := formatJSON(runs)
	if err != nil {
		fatalf("Error formatting output: %v", err)
	}
	fmt.Println(output)
}

func runHistoryShow(cmd *cobra.Command, args []string) {
	store := openHistoryStore()
	defer func() { _ = store.Close() }()

	rep, err := store.GetRun(args[0])
	if err != nil {
		fatalf("Error loading run: %v", err)
	}
	if rep == nil {
		fatalf("Run not found: %s", args[0])
	}

	output, err := FormatReport(rep, OutputFormat(historyFormat))
	if err != nil {
		fatalf("Error formatting output: %v", err)
	}
	fmt.Println(output)
}
