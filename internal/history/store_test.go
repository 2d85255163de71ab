package history

import (
	"io"
	"testing"
	"time"

	"ripple/internal/engine"
	"ripple/internal/logging"
	"ripple/internal/report"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})
}

func sampleReport(runID string) *report.Report {
	entries := []*engine.AggregateEntry{
		{
			Route:      &engine.Route{Path: "/users/login"},
			TotalCount: 1,
			Locations: []engine.MatchRecord{
				{RoutePath: "/users/login", FilePath: "a.js", LineNumber: 4, LinePreview: "x"},
			},
		},
		{Route: &engine.Route{Path: "/orders"}, TotalCount: 0},
	}
	return report.Build(runID, "api.yaml", "/src", entries, 3, nil, 50*time.Millisecond)
}

func TestStore_SaveAndGetRun(t *testing.T) {
	store, err := OpenStore(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	want := sampleReport("run-abc")
	if err := store.SaveRun(want); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := store.GetRun("run-abc")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetRun returned nil for saved run")
	}
	if got.RunID != "run-abc" || got.Summary.TotalRoutes != 2 {
		t.Errorf("got = %+v", got)
	}
	if len(got.Routes) != 2 || got.Routes[0].Count != 1 {
		t.Errorf("routes = %+v", got.Routes)
	}
}

func TestStore_GetRunMissing(t *testing.T) {
	store, err := OpenStore(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	got, err := store.GetRun("nope")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got != nil {
		t.Errorf("GetRun = %+v, want nil", got)
	}
}

func TestStore_ListRuns(t *testing.T) {
	store, err := OpenStore(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	for _, id := range []string{"run-1", "run-2", "run-3"} {
		if err := store.SaveRun(sampleReport(id)); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", id, err)
		}
	}

	runs, err := store.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("ListRuns(2) = %d runs, want 2", len(runs))
	}
	for _, run := range runs {
		if run.TotalRoutes != 2 || run.Referenced != 1 || run.Unreferenced != 1 {
			t.Errorf("run summary = %+v", run)
		}
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenStore(dir, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveRun(sampleReport("run-persist")); err != nil {
		t.Fatal(err)
	}
	_ = store.Close()

	reopened, err := OpenStore(dir, testLogger())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.GetRun("run-persist")
	if err != nil || got == nil {
		t.Fatalf("GetRun after reopen = %v, %v", got, err)
	}
}
