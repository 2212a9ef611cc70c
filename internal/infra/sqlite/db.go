// Package sqlite provides SQLite-based persistent storage for questforge.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Progression profile: one key-value row per field
		`CREATE TABLE IF NOT EXISTS profile (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Unopened loot chests, ordered by award position
		`CREATE TABLE IF NOT EXISTS chests (
			id     TEXT PRIMARY KEY,
			rarity TEXT NOT NULL,
			pos    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chests_pos ON chests(pos)`,

		// Unlocked achievements: presence of a code = unlocked
		`CREATE TABLE IF NOT EXISTS achievements (
			code        TEXT PRIMARY KEY,
			unlocked_on TEXT NOT NULL
		)`,

		// Purchase audit log, capped to the most recent 100 entries
		`CREATE TABLE IF NOT EXISTS purchases (
			seq       INTEGER PRIMARY KEY AUTOINCREMENT,
			id        TEXT NOT NULL UNIQUE,
			date      TEXT NOT NULL,
			item_name TEXT NOT NULL,
			cost      INTEGER NOT NULL,
			category  TEXT NOT NULL
		)`,

		// ─── Daily trackers ────────────────────────────────────────────

		`CREATE TABLE IF NOT EXISTS tasks (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			title          TEXT NOT NULL,
			at_hhmm        TEXT NOT NULL DEFAULT '',
			days_mask      INTEGER NOT NULL DEFAULT 127,
			enabled        BOOLEAN NOT NULL DEFAULT 1,
			notes          TEXT NOT NULL DEFAULT '',
			last_notified  TEXT,
			last_completed TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_notified ON tasks(last_notified)`,

		`CREATE TABLE IF NOT EXISTS food_entries (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			date    TEXT NOT NULL,
			phase   TEXT NOT NULL DEFAULT 'day',
			name    TEXT NOT NULL,
			kcal    INTEGER NOT NULL,
			protein REAL NOT NULL DEFAULT 0,
			fat     REAL NOT NULL DEFAULT 0,
			carbs   REAL NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_food_date ON food_entries(date)`,

		`CREATE TABLE IF NOT EXISTS sport_entries (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			date      TEXT NOT NULL,
			name      TEXT NOT NULL,
			details   TEXT NOT NULL DEFAULT '',
			intensity TEXT NOT NULL DEFAULT 'medium'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sport_date ON sport_entries(date)`,

		`CREATE TABLE IF NOT EXISTS water_entries (
			date TEXT PRIMARY KEY,
			ml   INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS habit_entries (
			date TEXT NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (date, name)
		)`,

		`CREATE TABLE IF NOT EXISTS weight_log (
			date TEXT PRIMARY KEY,
			kg   REAL NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
