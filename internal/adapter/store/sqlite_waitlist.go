package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"kuroma-gateway/internal/domain/entity"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteWaitlist is a local development store. The unique email column
// turns a repeat signup into a no-op.
type SQLiteWaitlist struct {
	db *sql.DB
}

// NewSQLiteWaitlist opens the database at path and creates the table.
func NewSQLiteWaitlist(path string) (*SQLiteWaitlist, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	s := &SQLiteWaitlist{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

func (s *SQLiteWaitlist) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS waitlist (
			id         TEXT PRIMARY KEY,
			email      TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP NOT NULL
		);
	`)
	return err
}

func (s *SQLiteWaitlist) Insert(ctx context.Context, entry entity.WaitlistEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO waitlist (id, email, created_at) VALUES (?, ?, ?) ON CONFLICT(email) DO NOTHING`,
		entry.ID, entry.Email, entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: sqlite: %v", entity.ErrStoreFailure, err)
	}
	return nil
}

func (s *SQLiteWaitlist) Close() error {
	return s.db.Close()
}
