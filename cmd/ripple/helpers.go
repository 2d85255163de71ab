package main

import (
	"fmt"
	"os"

	"ripple/internal/config"
	"ripple/internal/logging"
)

// newLogger creates a logger from the logging configuration. Logs go
// to stderr so JSON report output on stdout stays machine-readable.
func newLogger(cfg config.LoggingConfig) *logging.Logger {
	format := logging.HumanFormat
	if cfg.Format == "json" {
		format = logging.JSONFormat
	}
	level := logging.LogLevel(cfg.Level)
	if level == "" {
		level = logging.InfoLevel
	}
	return logging.NewLogger(logging.Config{
		Format: format,
		Level:  level,
	})
}

// fatalf reports a fatal error and aborts before any partial results
// can be mistaken for a successful run.
func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
