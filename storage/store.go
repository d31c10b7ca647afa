// Package storage provides the SQLite-backed history of validation runs.
// Every completed run can be recorded with its violations, so calibration
// drift over time is inspectable after the fact.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/c360studio/spectral/report"
)

// Store wraps a SQLite connection for run history.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the history database at the given path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		passed INTEGER NOT NULL,
		origin_checked INTEGER NOT NULL,
		poles_checked INTEGER NOT NULL,
		pairs_checked INTEGER NOT NULL,
		geodesics_checked INTEGER NOT NULL,
		violation_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS violations (
		run_id TEXT NOT NULL REFERENCES runs(id),
		position INTEGER NOT NULL,
		entity TEXT NOT NULL,
		check_name TEXT NOT NULL,
		axis TEXT NOT NULL,
		expected REAL NOT NULL,
		actual REAL NOT NULL,
		detail TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_violations_run ON violations(run_id);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Run is one recorded validation run.
type Run struct {
	ID               string `db:"id"`
	CreatedAt        string `db:"created_at"`
	Passed           bool   `db:"passed"`
	OriginChecked    int    `db:"origin_checked"`
	PolesChecked     int    `db:"poles_checked"`
	PairsChecked     int    `db:"pairs_checked"`
	GeodesicsChecked int    `db:"geodesics_checked"`
	ViolationCount   int    `db:"violation_count"`
}

// StoredViolation is one violation row of a recorded run.
type StoredViolation struct {
	RunID    string  `db:"run_id"`
	Position int     `db:"position"`
	Entity   string  `db:"entity"`
	Check    string  `db:"check_name"`
	Axis     string  `db:"axis"`
	Expected float64 `db:"expected"`
	Actual   float64 `db:"actual"`
	Detail   string  `db:"detail"`
}

// SaveRun records a completed validation run and returns its ID.
func (s *Store) SaveRun(ctx context.Context, summary report.Summary) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, passed, origin_checked, poles_checked,
			pairs_checked, geodesics_checked, violation_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, now, summary.Passed, summary.OriginChecked, summary.PolesChecked,
		summary.PairsChecked, summary.GeodesicsChecked, len(summary.Violations))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, v := range summary.Violations {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO violations (run_id, position, entity, check_name, axis, expected, actual, detail)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, v.Entity, string(v.Check), string(v.Axis), v.Expected, v.Actual, v.Detail)
		if err != nil {
			return "", fmt.Errorf("insert violation %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []Run
	err := s.conn.SelectContext(ctx, &runs,
		`SELECT * FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// RunViolations returns the violations of one run in report order.
func (s *Store) RunViolations(ctx context.Context, runID string) ([]StoredViolation, error) {
	var out []StoredViolation
	err := s.conn.SelectContext(ctx, &out,
		`SELECT * FROM violations WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("load violations: %w", err)
	}
	return out, nil
}
