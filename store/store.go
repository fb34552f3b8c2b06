// Package store archives analysis summaries in a local sqlite
// database so repeated experiments can be compared over time.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/RyanNg1403/cipher-benchmark-results/analysis"
)

// Store wraps the sqlite archive.
type Store struct {
	db *sql.DB
}

// Entry is one archived comparison.
type Entry struct {
	ID               int64
	CreatedAt        time.Time
	BaselinePath     string
	MemoryPath       string
	Questions        int
	BaselineCorrect  int
	MemoryCorrect    int
	Improved         int
	Regressed        int
	BaselineMeanTime float64
	MemoryMeanTime   float64
}

// Open opens (creating if needed) the archive at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	s := &Store{db: db}

	if err := s.initSchema(); err != nil {
		db.Close()

		return nil, err
	}

	return s, nil
}

func (s *Store) initSchema() error {
	const schema = `CREATE TABLE IF NOT EXISTS summaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		baseline_path TEXT NOT NULL,
		memory_path TEXT NOT NULL,
		questions INTEGER NOT NULL,
		baseline_correct INTEGER NOT NULL,
		memory_correct INTEGER NOT NULL,
		improved INTEGER NOT NULL,
		regressed INTEGER NOT NULL,
		baseline_mean_time REAL NOT NULL,
		memory_mean_time REAL NOT NULL
	);`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save archives one summary and returns its row id.
func (s *Store) Save(
	baselinePath, memoryPath string,
	sum analysis.Summary,
) (int64, error) {
	o := sum.Overall

	res, err := s.db.Exec(
		`INSERT INTO summaries (
			created_at, baseline_path, memory_path, questions,
			baseline_correct, memory_correct, improved, regressed,
			baseline_mean_time, memory_mean_time
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), baselinePath, memoryPath, o.Questions,
		o.BaselineCorrect, o.MemoryCorrect, o.Improved, o.Regressed,
		o.BaselineMeanTime, o.MemoryMeanTime,
	)
	if err != nil {
		return 0, fmt.Errorf("save summary: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save summary: %w", err)
	}

	return id, nil
}

// List returns up to limit archived entries, newest first.
func (s *Store) List(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at, baseline_path, memory_path, questions,
			baseline_correct, memory_correct, improved, regressed,
			baseline_mean_time, memory_mean_time
		FROM summaries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	var entries []Entry

	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.CreatedAt, &e.BaselinePath, &e.MemoryPath,
			&e.Questions, &e.BaselineCorrect, &e.MemoryCorrect,
			&e.Improved, &e.Regressed,
			&e.BaselineMeanTime, &e.MemoryMeanTime,
		); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}

	return entries, nil
}
