// Package cache implements the durable local store for the cached task
// snapshot: tasks by id, task lists by id, and a single keyval entry
// holding the task-to-list membership map.
package cache

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"taskkeep/internal/taskerr"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store wraps the SQL database connection holding the cached snapshot.
type Store struct {
	db       *sql.DB
	lockFile *flock.Flock
}

// Open opens the cache database at path, acquires the file lock, and
// runs migrations. Failures are reported as ErrStorageUnavailable so
// that callers can degrade to network-only mode.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, taskerr.Storage(fmt.Errorf("create data directory: %w", err))
	}

	// The lock keeps a second taskkeep process from interleaving writes
	// with an in-flight sync.
	lockFile := flock.New(path + ".lock")
	locked, err := lockFile.TryLock()
	if err != nil {
		return nil, taskerr.Storage(fmt.Errorf("acquire lock: %w", err))
	}
	if !locked {
		return nil, taskerr.Storage(fmt.Errorf("cache is locked by another taskkeep process"))
	}

	// WAL mode; SQLite only supports one writer.
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		lockFile.Unlock()
		return nil, taskerr.Storage(fmt.Errorf("open database: %w", err))
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		lockFile.Unlock()
		return nil, taskerr.Storage(fmt.Errorf("connect: %w", err))
	}

	s := &Store{db: db, lockFile: lockFile}
	if err := s.migrate(); err != nil {
		db.Close()
		lockFile.Unlock()
		return nil, taskerr.Storage(fmt.Errorf("run migrations: %w", err))
	}
	return s, nil
}

func (s *Store) migrate() error {
	// Silence goose logging; it would mix into command output.
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Close releases the file lock and closes the database connection.
func (s *Store) Close() error {
	if s.lockFile != nil {
		s.lockFile.Unlock()
		os.Remove(s.lockFile.Path())
	}
	return s.db.Close()
}

// transaction executes fn within a transaction.
func (s *Store) transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ClearAll empties all three stores. Called before writing a fresh sync
// snapshot and on logout.
func (s *Store) ClearAll(ctx context.Context) error {
	err := s.transaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM tasks`,
			`DELETE FROM task_lists`,
			`DELETE FROM keyval`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	return taskerr.Storage(err)
}
