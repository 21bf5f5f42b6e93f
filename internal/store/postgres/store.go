// Package postgres provides a Postgres-backed profile store for shared
// deployments of the HTTP API.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guardianshield/shieldplan/internal/store"
)

// Ensure Store satisfies the store.Backend interface at compile time.
var _ store.Backend = (*Store)(nil)

func init() {
	store.Register("postgres", func(ctx context.Context, opts store.Options) (store.Backend, error) {
		s, err := New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// Store keeps profiles and flags in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, errors.New("postgres store: empty database url")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			session_id TEXT PRIMARY KEY,
			payload JSONB NOT NULL,
			committed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS flags (
			session_id TEXT NOT NULL,
			name TEXT NOT NULL,
			value BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (session_id, name)
		);`,
		`CREATE INDEX IF NOT EXISTS profiles_committed_at_idx ON profiles (committed_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

func (s *Store) ReadProfile(ctx context.Context, sessionID string) ([]byte, error) {
	const query = `SELECT payload::text FROM profiles WHERE session_id = $1;`
	var payload string
	if err := s.pool.QueryRow(ctx, query, sessionID).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNoRow
		}
		return nil, err
	}
	return []byte(payload), nil
}

func (s *Store) WriteProfile(ctx context.Context, sessionID string, payload []byte, committedAt time.Time) error {
	const query = `
		INSERT INTO profiles (session_id, payload, committed_at)
		VALUES ($1, $2::jsonb, $3)
		ON CONFLICT (session_id) DO UPDATE
		SET payload = EXCLUDED.payload, committed_at = EXCLUDED.committed_at;`
	_, err := s.pool.Exec(ctx, query, sessionID, string(payload), committedAt)
	return err
}

func (s *Store) ReadFlag(ctx context.Context, sessionID, name string) (bool, error) {
	const query = `SELECT value FROM flags WHERE session_id = $1 AND name = $2;`
	var v bool
	if err := s.pool.QueryRow(ctx, query, sessionID, name).Scan(&v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return v, nil
}

func (s *Store) WriteFlag(ctx context.Context, sessionID, name string, value bool) error {
	const query = `
		INSERT INTO flags (session_id, name, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (session_id, name) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at;`
	_, err := s.pool.Exec(ctx, query, sessionID, name, value)
	return err
}

func (s *Store) ClearSession(ctx context.Context, sessionID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE session_id = $1;`, sessionID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM flags WHERE session_id = $1;`, sessionID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
