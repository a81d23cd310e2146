// Package storage provides SQLite-based persistence for player feedback.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for feedback persistence.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS feedback (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ref TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			message TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_feedback_kind ON feedback(kind);
		CREATE INDEX IF NOT EXISTS idx_feedback_created ON feedback(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveFeedback validates and records a feedback entry.
// The returned entry carries the assigned ID and reference.
func (s *Store) SaveFeedback(f Feedback) (Feedback, error) {
	if err := f.Normalize(); err != nil {
		return f, err
	}
	f.Ref = uuid.NewString()

	result, err := s.db.Exec(
		"INSERT INTO feedback (ref, kind, message, email, source) VALUES (?, ?, ?, ?, ?)",
		f.Ref, string(f.Kind), f.Message, f.Email, f.Source,
	)
	if err != nil {
		return f, fmt.Errorf("storage: cannot save feedback: %w", err)
	}

	f.ID, err = result.LastInsertId()
	if err != nil {
		return f, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	f.CreatedAt = time.Now().UTC()
	return f, nil
}

// RecentFeedback retrieves the newest entries, optionally filtered by kind.
func (s *Store) RecentFeedback(kind Kind, limit int) ([]Feedback, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, ref, kind, message, email, source, created_at FROM feedback`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query feedback: %w", err)
	}
	defer rows.Close()

	var entries []Feedback
	for rows.Next() {
		var f Feedback
		var k string
		var createdAt any
		if err := rows.Scan(&f.ID, &f.Ref, &k, &f.Message, &f.Email, &f.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		f.Kind = Kind(k)
		f.CreatedAt = parseTime(createdAt)
		entries = append(entries, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// FeedbackCounts returns the number of entries per kind.
func (s *Store) FeedbackCounts() (map[Kind]int, error) {
	rows, err := s.db.Query(`SELECT kind, COUNT(*) FROM feedback GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count feedback: %w", err)
	}
	defer rows.Close()

	counts := make(map[Kind]int)
	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan count row: %w", err)
		}
		counts[Kind(k)] = n
	}

	return counts, rows.Err()
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
