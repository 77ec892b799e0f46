// Package store keeps a sqlite history of dispatch runs so an instructor can
// audit who was mailed what, and with which outcome.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pavelanni/reflector/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS dispatch_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		course TEXT NOT NULL,
		grades_path TEXT NOT NULL DEFAULT '',
		mean_score REAL NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS dispatch_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		score REAL NOT NULL DEFAULT 0,
		variant TEXT NOT NULL,
		outcome TEXT NOT NULL,
		attachment TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (run_id) REFERENCES dispatch_runs(id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordRun stores a dispatch run with all its per-recipient records in one
// transaction and returns the run ID.
func (s *Store) RecordRun(course, gradesPath string, meanScore float64, records []model.DispatchRecord) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO dispatch_runs (course, grades_path, mean_score, created_at) VALUES (?, ?, ?, ?)`,
		course, gradesPath, meanScore, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, rec := range records {
		_, err := tx.Exec(
			`INSERT INTO dispatch_records (run_id, first_name, last_name, email, score, variant, outcome, attachment, detail)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, rec.FirstName, rec.LastName, rec.Email, rec.Score, rec.Variant, rec.Outcome, rec.Attachment, rec.Detail,
		)
		if err != nil {
			return 0, err
		}
	}

	return runID, tx.Commit()
}

// GetRun returns a run by ID.
func (s *Store) GetRun(id int64) (model.DispatchRun, error) {
	var run model.DispatchRun
	err := s.db.QueryRow(
		`SELECT id, course, grades_path, mean_score, created_at FROM dispatch_runs WHERE id = ?`, id,
	).Scan(&run.ID, &run.Course, &run.GradesPath, &run.MeanScore, &run.CreatedAt)
	return run, err
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns() ([]model.DispatchRun, error) {
	rows, err := s.db.Query(`SELECT id, course, grades_path, mean_score, created_at FROM dispatch_runs ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []model.DispatchRun
	for rows.Next() {
		var run model.DispatchRun
		if err := rows.Scan(&run.ID, &run.Course, &run.GradesPath, &run.MeanScore, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RecordsForRun returns a run's per-recipient records in insertion order.
func (s *Store) RecordsForRun(runID int64) ([]model.DispatchRecord, error) {
	rows, err := s.db.Query(
		`SELECT first_name, last_name, email, score, variant, outcome, attachment, detail
		 FROM dispatch_records WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []model.DispatchRecord
	for rows.Next() {
		var rec model.DispatchRecord
		if err := rows.Scan(&rec.FirstName, &rec.LastName, &rec.Email, &rec.Score, &rec.Variant, &rec.Outcome, &rec.Attachment, &rec.Detail); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// RunCount returns the number of recorded runs.
func (s *Store) RunCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM dispatch_runs`).Scan(&count)
	return count, err
}
