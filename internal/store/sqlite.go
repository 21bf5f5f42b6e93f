package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLite is a file-backed Backend.
type SQLite struct {
	db *sql.DB
}

var _ Backend = (*SQLite)(nil)

// OpenSQLite opens or creates the profile database at the given path.
func OpenSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) ReadProfile(ctx context.Context, sessionID string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM profiles WHERE session_id = ?", sessionID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRow
	}
	return payload, err
}

func (s *SQLite) WriteProfile(ctx context.Context, sessionID string, payload []byte, committedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO profiles
		(session_id, payload, committed_at) VALUES (?, ?, ?)`,
		sessionID, payload, committedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *SQLite) ReadFlag(ctx context.Context, sessionID, name string) (bool, error) {
	var v int
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM flags WHERE session_id = ? AND name = ?", sessionID, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (s *SQLite) WriteFlag(ctx context.Context, sessionID, name string, value bool) error {
	v := 0
	if value {
		v = 1
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO flags
		(session_id, name, value, updated_at) VALUES (?, ?, ?, ?)`,
		sessionID, name, v, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLite) ClearSession(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM profiles WHERE session_id = ?", sessionID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM flags WHERE session_id = ?", sessionID); err != nil {
		return err
	}
	return tx.Commit()
}

// SessionCount returns the number of sessions with a stored profile.
func (s *SQLite) SessionCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles").Scan(&count)
	return count, err
}
