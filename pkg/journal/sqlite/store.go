// Package sqlite is a SQLite-backed journal.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // driver

	"github.com/teslashibe/emotional-helper/pkg/journal"
)

// Store implements journal.Journal on SQLite.
type Store struct {
	db *sql.DB
}

// Open connects to path (":memory:" works) and creates the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// one connection so :memory: databases are shared
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts e.
func (s *Store) Record(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	e = journal.Prepare(e)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reactions (id, created_at, label, line, spoken, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.CreatedAt.UnixMilli(), e.Label, e.Line, e.Spoken, nullString(e.Error))
	if err != nil {
		return journal.Entry{}, fmt.Errorf("failed to insert reaction: %w", err)
	}
	return e, nil
}

// Recent returns up to limit reactions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]journal.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, label, line, spoken, error
		FROM reactions
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, journal.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query reactions: %w", err)
	}
	defer rows.Close()

	entries := []journal.Entry{}
	for rows.Next() {
		var (
			e         journal.Entry
			createdAt int64
			errText   sql.NullString
		)
		if err := rows.Scan(&e.ID, &createdAt, &e.Label, &e.Line, &e.Spoken, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan reaction: %w", err)
		}
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		if errText.Valid {
			e.Error = errText.String
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reactions: %w", err)
	}
	return entries, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS reactions (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		label TEXT NOT NULL,
		line TEXT NOT NULL DEFAULT '',
		spoken BOOLEAN NOT NULL DEFAULT 0,
		error TEXT
	);
	CREATE INDEX IF NOT EXISTS reactions_created_at ON reactions (created_at);
	`)
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ journal.Journal = (*Store)(nil)
