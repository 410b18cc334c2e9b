// Package sqlitestore implements service.Service on a local SQLite file.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite"

	"tasklist/internal/logfields"
	"tasklist/internal/service"
)

const (
	// StoreName is the name of the local store. Used as the default file name.
	StoreName = "tasksList"

	// SchemaVersion is the schema version this build creates and accepts.
	SchemaVersion = 1

	// Collection is the table holding task records.
	Collection = "tasks"

	// Memory opens a private in-memory store.
	Memory = ":memory:"
)

// ErrVersionTooNew is returned when the store was written by a newer schema.
var ErrVersionTooNew = errors.New("store schema version is newer than supported")

// Store implements service.Service using SQLite.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	closed bool
}

var _ service.Service = (*Store)(nil)

// Open connects to the store at path and makes sure the task collection
// exists before returning. Use Memory for an in-memory store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection for the whole session. An in-memory database
	// only exists on the connection that created it.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.upgrade(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	slog.Debug("store opened", slog.String("path", path), slog.Int("version", SchemaVersion))
	return s, nil
}

// upgrade creates the collection on first open. The whole check runs in
// one transaction so a half-created schema is never visible.
func (s *Store) upgrade(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var version int
	if err := tx.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	switch {
	case version > SchemaVersion:
		return fmt.Errorf("%w: have %d, want %d", ErrVersionTooNew, version, SchemaVersion)
	case version == SchemaVersion:
		return nil
	}

	schema := `CREATE TABLE IF NOT EXISTS ` + Collection + ` (
		task_title TEXT PRIMARY KEY NOT NULL,
		task_priority TEXT NOT NULL
	) WITHOUT ROWID`
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Info("store created", slog.String("path", s.path), slog.String("collection", Collection))
	return nil
}

// Path returns the file the store was opened from.
func (s *Store) Path() string { return s.path }

// Version reads the schema version recorded in the file.
func (s *Store) Version(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, service.ErrClosed
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// Add implements service.Service.
func (s *Store) Add(ctx context.Context, task service.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return service.ErrClosed
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO "+Collection+" (task_title, task_priority) VALUES (?, ?) ON CONFLICT(task_title) DO NOTHING",
		task.Title, task.Priority,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", service.ErrDuplicate, task.Title)
	}
	return nil
}

// Get implements service.Service.
func (s *Store) Get(ctx context.Context, title string) (service.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return service.Task{}, service.ErrClosed
	}

	var t service.Task
	err := s.db.QueryRowContext(ctx,
		"SELECT task_title, task_priority FROM "+Collection+" WHERE task_title = ?",
		title,
	).Scan(&t.Title, &t.Priority)
	if errors.Is(err, sql.ErrNoRows) {
		return service.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, title)
	}
	if err != nil {
		return service.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// Put implements service.Service.
func (s *Store) Put(ctx context.Context, task service.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return service.ErrClosed
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO "+Collection+" (task_title, task_priority) VALUES (?, ?) "+
			"ON CONFLICT(task_title) DO UPDATE SET task_priority = excluded.task_priority",
		task.Title, task.Priority,
	)
	if err != nil {
		return fmt.Errorf("put task: %w", err)
	}
	return nil
}

// Delete implements service.Service.
func (s *Store) Delete(ctx context.Context, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return service.ErrClosed
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM "+Collection+" WHERE task_title = ?", title); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Each implements service.Service.
// Keys are visited in BINARY collation order, which is UTF-8 byte order.
func (s *Store) Each(ctx context.Context, fn func(service.Task) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return service.ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT task_title, task_priority FROM "+Collection+" ORDER BY task_title",
	)
	if err != nil {
		return fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t service.Task
		if err := rows.Scan(&t.Title, &t.Priority); err != nil {
			return fmt.Errorf("scan task: %w", err)
		}
		if err := fn(t); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate tasks: %w", err)
	}
	return nil
}

// Count implements service.Service.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, service.ErrClosed
	}

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+Collection).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

// Close implements service.Service.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		slog.Warn("close store", logfields.Error(err))
		return err
	}
	return nil
}
