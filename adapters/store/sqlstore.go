package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Viraj281105/ClimateX/internal/impact"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	created_at  TEXT NOT NULL,
	panel_file  TEXT NOT NULL,
	policy_file TEXT NOT NULL,
	seed        INTEGER NOT NULL,
	trials      INTEGER NOT NULL,
	pairs       INTEGER NOT NULL,
	failed      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS impacts (
	run_id          TEXT NOT NULL REFERENCES runs(id),
	policy          TEXT NOT NULL,
	year            INTEGER NOT NULL,
	pollutant       TEXT NOT NULL,
	ate             REAL,
	p_value_ate     REAL,
	p_value_placebo REAL
);
CREATE INDEX IF NOT EXISTS idx_impacts_run ON impacts(run_id);
`

// SqlStore implements Store with SQLite via the pure-Go modernc driver.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path, creating the parent
// directory and the schema as needed.
func Open(path string) (*SqlStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	return open(path)
}

// OpenMemory opens an in-memory SQLite DB for testing.
func OpenMemory() (*SqlStore, error) {
	return open(":memory:")
}

func open(dsn string) (*SqlStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc sqlite serializes writes; a single connection avoids
	// table-lock errors from concurrent transactions.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SqlStore{db: db}, nil
}

// SaveRun implements Store. The run and all its records are written in
// one transaction; a failed batch leaves no partial run behind.
func (s *SqlStore) SaveRun(run *Run, table *impact.Table) error {
	if run == nil || table == nil {
		return fmt.Errorf("run and table must be non-nil")
	}
	stampRun(run, table)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, created_at, panel_file, policy_file, seed, trials, pairs, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(time.RFC3339), run.PanelFile, run.PolicyFile,
		int64(run.Seed), run.Trials, run.Pairs, run.Failed)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO impacts (run_id, policy, year, pollutant, ate, p_value_ate, p_value_placebo)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare impacts: %w", err)
	}
	defer stmt.Close()

	for i := range table.Records {
		rec := &table.Records[i]
		_, err := stmt.Exec(run.ID, rec.Policy, rec.Year, rec.Pollutant,
			nullable(rec.ATE), nullable(rec.PValueATE), nullable(rec.PValuePlacebo))
		if err != nil {
			return fmt.Errorf("insert impact %s/%s: %w", rec.Policy, rec.Pollutant, err)
		}
	}

	return tx.Commit()
}

// GetRun implements Store.
func (s *SqlStore) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, created_at, panel_file, policy_file, seed, trials, pairs, failed
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return run, err
}

// ListRuns implements Store. Newest first.
func (s *SqlStore) ListRuns() ([]*Run, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at, panel_file, policy_file, seed, trials, pairs, failed
		 FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// GetRecords implements Store.
func (s *SqlStore) GetRecords(runID string) ([]impact.Record, error) {
	if _, err := s.GetRun(runID); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		`SELECT policy, year, pollutant, ate, p_value_ate, p_value_placebo
		 FROM impacts WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("query impacts: %w", err)
	}
	defer rows.Close()

	var out []impact.Record
	for rows.Next() {
		var rec impact.Record
		var ate, pAte, pPlacebo sql.NullFloat64
		if err := rows.Scan(&rec.Policy, &rec.Year, &rec.Pollutant, &ate, &pAte, &pPlacebo); err != nil {
			return nil, fmt.Errorf("scan impact: %w", err)
		}
		rec.ATE = floatPtr(ate)
		rec.PValueATE = floatPtr(pAte)
		rec.PValuePlacebo = floatPtr(pPlacebo)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close implements Store.
func (s *SqlStore) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var created string
	var seed int64
	if err := row.Scan(&run.ID, &created, &run.PanelFile, &run.PolicyFile,
		&seed, &run.Trials, &run.Pairs, &run.Failed); err != nil {
		return nil, err
	}
	run.Seed = uint64(seed)
	ts, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	run.CreatedAt = ts
	return &run, nil
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}
