package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"gmscreen/internal/repository"
)

// Open opens (or creates) a sqlite database at the given path and ensures directories exist.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// reasonable defaults for sqlite with concurrent readers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return db, nil
}

// Probe verifies store reachability with a trivial read against the users
// table, which is unrelated to campaign queries. A failure here means the
// database file is unreachable or the schema was never initialized.
type Probe struct {
	db *sql.DB
}

func NewProbe(db *sql.DB) repository.Probe {
	return &Probe{db: db}
}

func (p *Probe) Check(ctx context.Context) error {
	var n int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users`).Scan(&n); err != nil {
		return fmt.Errorf("probe users table: %w", err)
	}
	return nil
}
