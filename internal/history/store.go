// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records completed drafting runs in a local SQLite
// database. History is bookkeeping after the fact; in-progress runs are
// never persisted and a crashed run leaves no record.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/report-engine/pkg/types"
)

const dbFile = "history.db"

// Run is one completed drafting run.
type Run struct {
	// ID is the database row ID, assigned on Record.
	ID int64 `json:"id" yaml:"id"`

	// CreatedAt is the run's start time (the report timestamp).
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Topic is the report topic supplied by the user.
	Topic string `json:"topic" yaml:"topic"`

	// OutputPath is where the Markdown report was written.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// SectionCount is the number of sections in the final report.
	SectionCount int `json:"section_count" yaml:"section_count"`

	// OutlineRevisions counts revise decisions during the outline stage.
	OutlineRevisions int `json:"outline_revisions" yaml:"outline_revisions"`

	// SectionRevisions counts revise decisions across all section stages.
	SectionRevisions int `json:"section_revisions" yaml:"section_revisions"`
}

// Store manages the run history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the history database at cfg.Dir/history.db,
// creating the schema if it does not exist.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		topic TEXT NOT NULL,
		output_path TEXT NOT NULL,
		section_count INTEGER NOT NULL,
		outline_revisions INTEGER NOT NULL,
		section_revisions INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record inserts a completed run and returns its row ID.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, topic, output_path, section_count, outline_revisions, section_revisions)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.CreatedAt.UTC().Format(time.RFC3339), run.Topic, run.OutputPath,
		run.SectionCount, run.OutlineRevisions, run.SectionRevisions,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first. When limit is 0 the
// store's configured maximum is used.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, topic, output_path, section_count, outline_revisions, section_revisions
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.ID, &createdAt, &r.Topic, &r.OutputPath,
			&r.SectionCount, &r.OutlineRevisions, &r.SectionRevisions); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing run timestamp %q: %w", createdAt, err)
		}
		r.CreatedAt = ts
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
