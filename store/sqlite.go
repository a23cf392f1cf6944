package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Goofygiraffe06/parewa/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is the submission journal.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases coherent and serialises writers.
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS attempts (
		id TEXT PRIMARY KEY NOT NULL CHECK(id <> ''),
		page TEXT NOT NULL CHECK(page <> ''),
		email_hash TEXT NOT NULL,
		outcome TEXT NOT NULL CHECK(outcome <> ''),
		status_code INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS attempts_created_at ON attempts(created_at);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// AddAttempt appends one journal row.
func (s *SQLiteStore) AddAttempt(ctx context.Context, a models.Attempt) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts (id, page, email_hash, outcome, status_code, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Page, a.EmailHash, a.Outcome, a.StatusCode, a.Duration.Milliseconds(), a.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// RecentAttempts returns up to limit rows, newest first.
func (s *SQLiteStore) RecentAttempts(ctx context.Context, limit int) ([]models.Attempt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, page, email_hash, outcome, status_code, duration_ms, created_at
		FROM attempts
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []models.Attempt
	for rows.Next() {
		var (
			a          models.Attempt
			durationMS int64
			createdMS  int64
		)
		if err := rows.Scan(&a.ID, &a.Page, &a.EmailHash, &a.Outcome, &a.StatusCode, &durationMS, &createdMS); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Duration = time.Duration(durationMS) * time.Millisecond
		a.CreatedAt = time.UnixMilli(createdMS)
		out = append(out, a)
	}
	return out, rows.Err()
}

// CountOutcome counts rows for page with the given outcome.
func (s *SQLiteStore) CountOutcome(ctx context.Context, page, outcome string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attempts WHERE page = ? AND outcome = ?`, page, outcome).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
