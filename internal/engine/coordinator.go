package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"ripple/internal/logging"
)

// Coordinator fans file scans out over a bounded worker pool and
// merges the results. No ordering is guaranteed between files; within
// one file records ascend by line number.
type Coordinator struct {
	matcher *Matcher
	workers int
	logger  *logging.Logger
}

// NewCoordinator creates a coordinator with the given worker count.
// A non-positive count falls back to the available parallelism.
func NewCoordinator(matcher *Matcher, workers int, logger *logging.Logger) *Coordinator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Coordinator{matcher: matcher, workers: workers, logger: logger}
}

// Workers returns the effective pool size.
func (c *Coordinator) Workers() int {
	return c.workers
}

// Run scans every file exactly once and merges results into agg.
// Cancellation is cooperative: in-flight scans finish, nothing new is
// dispatched, and the run reports failure rather than partial results.
func (c *Coordinator) Run(ctx context.Context, files []string, agg *Aggregator) error {
	scanner := NewFileScanner(c.matcher)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

dispatch:
	for _, path := range files {
		select {
		case <-gctx.Done():
			break dispatch
		default:
		}
		path := path
		g.Go(func() error {
			records, warnings := scanner.Scan(path)
			if err := agg.Merge(records, warnings); err != nil {
				c.logger.Error("Result merge failed", map[string]interface{}{
					"file":  path,
					"error": err.Error(),
				})
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scan cancelled: %w", err)
	}

	c.logger.Debug("Scan completed", map[string]interface{}{
		"files":   agg.FilesScanned(),
		"workers": c.workers,
	})
	return nil
}
