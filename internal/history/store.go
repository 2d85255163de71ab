// Package history persists scan runs for run-over-run comparison.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"ripple/internal/logging"
	"ripple/internal/report"
)

// Store provides persistence for scan runs in a SQLite database.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// RunSummary is one row of the run history listing.
type RunSummary struct {
	RunID        string    `json:"runId"`
	CreatedAt    time.Time `json:"createdAt"`
	SpecPath     string    `json:"specPath"`
	ScanDir      string    `json:"scanDir"`
	TotalRoutes  int       `json:"totalRoutes"`
	Referenced   int       `json:"referenced"`
	Unreferenced int       `json:"unreferenced"`
	FilesScanned int       `json:"filesScanned"`
}

// OpenStore opens or creates the history database at dir/history.db.
func OpenStore(dir string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dbPath := filepath.Join(dir, "history.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &Store{conn: conn, logger: logger, dbPath: dbPath}
	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return store, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			spec_path TEXT NOT NULL,
			scan_dir TEXT NOT NULL,
			total_routes INTEGER NOT NULL,
			referenced INTEGER NOT NULL,
			unreferenced INTEGER NOT NULL,
			files_scanned INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			report TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SaveRun persists a completed scan run.
func (s *Store) SaveRun(r *report.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	_, err = s.conn.Exec(`
		INSERT INTO runs (id, created_at, spec_path, scan_dir, total_routes,
			referenced, unreferenced, files_scanned, duration_ms, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.CreatedAt.Format(time.RFC3339),
		r.SpecPath,
		r.ScanDir,
		r.Summary.TotalRoutes,
		r.Summary.Referenced,
		r.Summary.Unreferenced,
		r.Summary.FilesScanned,
		r.Summary.DurationMs,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	s.logger.Debug("Saved scan run", map[string]interface{}{
		"runId": r.RunID,
		"path":  s.dbPath,
	})
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.conn.Query(`
		SELECT id, created_at, spec_path, scan_dir, total_routes,
			referenced, unreferenced, files_scanned
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var createdAt string
		if err := rows.Scan(&run.RunID, &createdAt, &run.SpecPath, &run.ScanDir,
			&run.TotalRoutes, &run.Referenced, &run.Unreferenced, &run.FilesScanned); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun loads a full report by run ID. Returns nil when not found.
func (s *Store) GetRun(runID string) (*report.Report, error) {
	var data string
	err := s.conn.QueryRow(`SELECT report FROM runs WHERE id = ?`, runID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}

	var r report.Report
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, fmt.Errorf("failed to decode stored report: %w", err)
	}
	return &r, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}
