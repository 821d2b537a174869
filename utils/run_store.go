package utils

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// RunRecord is one engine run in the shared run history.
type RunRecord struct {
	ID         string
	Database   string
	InputPath  string
	RowsIn     int
	RowsOut    int
	DurationMS int64
	Status     string // completed, failed, pass-through
	Error      string
	StartedAt  time.Time
}

// RunStore is an append-only run history backed by SQLite. WAL mode keeps
// appends from independent runs safe to interleave.
type RunStore struct {
	db   *sql.DB
	path string
}

// OpenRunStore opens (creating if necessary) the run history database.
func OpenRunStore(dbPath string) (*RunStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run store directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open run store: %w", err)
	}

	s := &RunStore{db: db, path: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize run store schema: %w", err)
	}
	return s, nil
}

func (s *RunStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		database_name TEXT NOT NULL,
		input_path TEXT NOT NULL,
		rows_in INTEGER NOT NULL,
		rows_out INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		status TEXT NOT NULL,
		error TEXT,
		started_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_database ON runs(database_name);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one run record. A missing ID is filled with a fresh UUID.
func (s *RunStore) Record(rec RunRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO runs (id, database_name, input_path, rows_in, rows_out, duration_ms, status, error, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Database, rec.InputPath, rec.RowsIn, rec.RowsOut,
		rec.DurationMS, rec.Status, rec.Error, rec.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Recent returns the latest run records, newest first.
func (s *RunStore) Recent(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, database_name, input_path, rows_in, rows_out, duration_ms, status, error, started_at
		FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var errText sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Database, &rec.InputPath, &rec.RowsIn,
			&rec.RowsOut, &rec.DurationMS, &rec.Status, &errText, &rec.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		rec.Error = errText.String
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}
