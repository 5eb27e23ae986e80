// Package progress persists per-level results and the last selected level in SQLite
package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lixenwraith/topple/progress/migrations"
)

const currentLevelKey = "current_level"

// ErrNotConfigured is returned by methods on a nil or closed store
var ErrNotConfigured = errors.New("progress: store is not configured")

// Result is the stored outcome history of one level
type Result struct {
	Level      string
	Completed  bool
	Attempts   int
	LastReason string
	UpdatedAt  time.Time
}

// Store persists level progress in a SQLite file
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies embedded migrations
// The special path ":memory:" opens a private in-memory database
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("progress db path is required")
	}

	dsn := ":memory:"
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps :memory: databases shared across calls
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle; safe on nil
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return ErrNotConfigured
	}
	return nil
}

// RecordResult counts one attempt at level and remembers its outcome
// A level stays completed once any attempt completed it
func (s *Store) RecordResult(ctx context.Context, level string, completed bool, reason string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	level = strings.TrimSpace(level)
	if level == "" {
		return fmt.Errorf("record result: level is required")
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO level_results (level, completed, attempts, last_reason, updated_at)
VALUES (?, ?, 1, ?, ?)
ON CONFLICT(level) DO UPDATE SET
    completed = MAX(level_results.completed, excluded.completed),
    attempts = level_results.attempts + 1,
    last_reason = excluded.last_reason,
    updated_at = excluded.updated_at`,
		level, boolInt(completed), reason, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record result for %s: %w", level, err)
	}
	return nil
}

// Result returns the stored history of level; false when the level was never attempted
func (s *Store) Result(ctx context.Context, level string) (Result, bool, error) {
	if err := s.ready(ctx); err != nil {
		return Result{}, false, err
	}

	var (
		r         Result
		completed int
		updated   int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT level, completed, attempts, last_reason, updated_at FROM level_results WHERE level = ?`,
		level,
	).Scan(&r.Level, &completed, &r.Attempts, &r.LastReason, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, fmt.Errorf("load result for %s: %w", level, err)
	}
	r.Completed = completed != 0
	r.UpdatedAt = time.UnixMilli(updated).UTC()
	return r, true, nil
}

// CompletedLevels lists every completed level name, ascending
func (s *Store) CompletedLevels(ctx context.Context) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT level FROM level_results WHERE completed = 1 ORDER BY level`)
	if err != nil {
		return nil, fmt.Errorf("list completed levels: %w", err)
	}
	defer rows.Close()

	var levels []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan completed level: %w", err)
		}
		levels = append(levels, name)
	}
	return levels, rows.Err()
}

// SetCurrentLevel remembers the level to resume on next start
func (s *Store) SetCurrentLevel(ctx context.Context, level string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		currentLevelKey, level,
	)
	if err != nil {
		return fmt.Errorf("save current level: %w", err)
	}
	return nil
}

// CurrentLevel returns the remembered level; false when none was saved
func (s *Store) CurrentLevel(ctx context.Context) (string, bool, error) {
	if err := s.ready(ctx); err != nil {
		return "", false, err
	}
	var level string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, currentLevelKey).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load current level: %w", err)
	}
	return level, true, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
