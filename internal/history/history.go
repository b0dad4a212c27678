// Package history records completed evaluation runs in a local SQLite
// database so past readiness can be inspected and compared.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const defaultRecentLimit = 20

// Run is one recorded evaluation sweep.
type Run struct {
	ID          string
	Preset      string
	Surface     string
	Total       int
	Completed   int
	Failed      int
	Pending     int
	Score       float64
	AllComplete bool
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Store is the SQLite-backed run log.
type Store struct {
	sql *sql.DB
}

// Open opens (and bootstraps) the run log at path.
func Open(path string) (*Store, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id           TEXT PRIMARY KEY,
  preset       TEXT NOT NULL,
  surface      TEXT NOT NULL,
  total        INTEGER NOT NULL,
  completed    INTEGER NOT NULL,
  failed       INTEGER NOT NULL,
  pending      INTEGER NOT NULL,
  score        REAL NOT NULL,
  all_complete INTEGER NOT NULL CHECK (all_complete IN (0,1)),
  started_at   INTEGER NOT NULL,
  finished_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_preset ON runs(preset, finished_at);
	`); err != nil {
		return nil, err
	}
	return &Store{sql: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}
	return s.sql.Close()
}

// Record inserts a run. A missing ID gets a fresh UUID; a zero FinishedAt is
// stamped with the current time. The stored ID is returned.
func (s *Store) Record(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.FinishedAt
	}

	_, err := s.sql.ExecContext(ctx, `
INSERT INTO runs(id, preset, surface, total, completed, failed, pending, score, all_complete, started_at, finished_at)
VALUES(?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.Preset, run.Surface,
		run.Total, run.Completed, run.Failed, run.Pending,
		run.Score, boolToInt(run.AllComplete),
		run.StartedAt.Unix(), run.FinishedAt.Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return run.ID, nil
}

// Recent returns the most recent runs, newest first. An empty preset matches
// every preset; limit <= 0 falls back to a default.
func (s *Store) Recent(ctx context.Context, preset string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	query := `
SELECT id, preset, surface, total, completed, failed, pending, score, all_complete, started_at, finished_at
FROM runs`
	args := []any{}
	if preset != "" {
		query += " WHERE preset = ?"
		args = append(args, preset)
	}
	query += " ORDER BY finished_at DESC, id LIMIT ?"
	args = append(args, limit)

	rows, err := s.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                   Run
			allComplete         int
			startedAt, finished int64
		)
		if err := rows.Scan(
			&r.ID, &r.Preset, &r.Surface,
			&r.Total, &r.Completed, &r.Failed, &r.Pending,
			&r.Score, &allComplete, &startedAt, &finished,
		); err != nil {
			return nil, err
		}
		r.AllComplete = allComplete == 1
		r.StartedAt = time.Unix(startedAt, 0)
		r.FinishedAt = time.Unix(finished, 0)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Prune deletes all but the newest keep runs per preset. keep <= 0 clears
// the log entirely.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		_, err := s.sql.ExecContext(ctx, "DELETE FROM runs")
		return err
	}
	_, err := s.sql.ExecContext(ctx, `
DELETE FROM runs WHERE id IN (
  SELECT id FROM (
    SELECT id, ROW_NUMBER() OVER (PARTITION BY preset ORDER BY finished_at DESC, id) AS rn
    FROM runs
  ) WHERE rn > ?
)`, keep)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
