package engine

import (
	"fmt"
	"sync"
)

// AggregateEntry is the per-route running total of matches and their
// locations. One entry exists per route even at zero matches, so
// unreferenced routes are explicit in output rather than absent.
type AggregateEntry struct {
	Route      *Route
	TotalCount int
	Locations  []MatchRecord
}

// InvariantError reports a count/location mismatch in the aggregator.
// Correct counts are the system's core promise, so this fails the run
// instead of shipping wrong numbers.
type InvariantError struct {
	RoutePath string
	Count     int
	Locations int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("aggregation invariant violated for route %s: count=%d locations=%d",
		e.RoutePath, e.Count, e.Locations)
}

// Aggregator merges match records from concurrent producers. It is the
// only shared mutable state of a run.
type Aggregator struct {
	mu           sync.Mutex
	entries      map[string]*AggregateEntry
	order        []string
	filesScanned int
	warnings     []Warning
}

// NewAggregator creates one entry per route, in declaration order.
func NewAggregator(routes []*Route) *Aggregator {
	a := &Aggregator{
		entries: make(map[string]*AggregateEntry, len(routes)),
		order:   make([]string, 0, len(routes)),
	}
	for _, r := range routes {
		a.entries[r.Path] = &AggregateEntry{Route: r, Locations: []MatchRecord{}}
		a.order = append(a.order, r.Path)
	}
	return a
}

// Merge folds one file's results in. The count increment and location
// append happen under the same critical section so they can never
// disagree.
func (a *Aggregator) Merge(records []MatchRecord, warnings []Warning) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.filesScanned++
	a.warnings = append(a.warnings, warnings...)

	for _, rec := range records {
		entry, ok := a.entries[rec.RoutePath]
		if !ok {
			return fmt.Errorf("match record for unknown route %q in %s", rec.RoutePath, rec.FilePath)
		}
		entry.TotalCount++
		entry.Locations = append(entry.Locations, rec)
		if entry.TotalCount != len(entry.Locations) {
			return &InvariantError{
				RoutePath: rec.RoutePath,
				Count:     entry.TotalCount,
				Locations: len(entry.Locations),
			}
		}
	}
	return nil
}

// AddWarnings records warnings that did not come from a file scan,
// such as route compilation or configuration anomalies.
func (a *Aggregator) AddWarnings(warnings ...Warning) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.warnings = append(a.warnings, warnings...)
}

// Entries returns the aggregate mapping in route-declaration order.
// Call only after the coordinator has completed.
func (a *Aggregator) Entries() []*AggregateEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]*AggregateEntry, 0, len(a.order))
	for _, path := range a.order {
		out = append(out, a.entries[path])
	}
	return out
}

// FilesScanned returns how many files have been merged so far.
func (a *Aggregator) FilesScanned() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filesScanned
}

// Warnings returns all accumulated warnings.
func (a *Aggregator) Warnings() []Warning {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Warning(nil), a.warnings...)
}
