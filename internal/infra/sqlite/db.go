// Package sqlite provides the embedded persistent store for Credify.
// Uses WAL mode for crash-safe writes. One table per record type plus a
// settings key-value table; all writes are whole-record replace-or-insert
// so a crash can never leave a half-updated row.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/credify-app/credify/internal/domain"
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/credify.db.
// Enables WAL mode, foreign keys, and a 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "credify.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
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
		// Singleton profile. Streaks and achievements ride along as
		// JSON blobs — they are persisted fields of the user, never
		// recomputed from history at load time.
		`CREATE TABLE IF NOT EXISTS user (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			created_at   INTEGER NOT NULL,
			total_xp     INTEGER NOT NULL DEFAULT 0,
			level        INTEGER NOT NULL DEFAULT 1,
			streaks      TEXT NOT NULL DEFAULT '{}',
			achievements TEXT NOT NULL DEFAULT '[]'
		)`,

		// Financial
		`CREATE TABLE IF NOT EXISTS expenses (
			id          TEXT PRIMARY KEY,
			amount      REAL NOT NULL,
			category    TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			date        TEXT NOT NULL,
			created_at  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			id       TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			amount   REAL NOT NULL,
			spent    REAL NOT NULL DEFAULT 0,
			period   TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS financial_goals (
			id             TEXT PRIMARY KEY,
			title          TEXT NOT NULL,
			target_amount  REAL NOT NULL,
			current_amount REAL NOT NULL DEFAULT 0,
			deadline       TEXT,
			created_at     INTEGER NOT NULL,
			completed_at   INTEGER
		)`,

		// Health
		`CREATE TABLE IF NOT EXISTS workouts (
			id         TEXT PRIMARY KEY,
			type       TEXT NOT NULL,
			duration   INTEGER NOT NULL,
			calories   INTEGER,
			notes      TEXT,
			date       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date)`,
		// The one per-date-unique record type: water accumulates into
		// a single row per day.
		`CREATE TABLE IF NOT EXISTS water_logs (
			id      TEXT PRIMARY KEY,
			glasses INTEGER NOT NULL,
			date    TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS meals (
			id          TEXT PRIMARY KEY,
			type        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			calories    INTEGER,
			date        TEXT NOT NULL,
			created_at  INTEGER NOT NULL
		)`,

		// Mindfulness
		`CREATE TABLE IF NOT EXISTS meditations (
			id         TEXT PRIMARY KEY,
			duration   INTEGER NOT NULL,
			type       TEXT NOT NULL,
			notes      TEXT,
			date       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS journals (
			id         TEXT PRIMARY KEY,
			content    TEXT NOT NULL,
			mood       TEXT,
			date       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS gratitude_logs (
			id         TEXT PRIMARY KEY,
			items      TEXT NOT NULL,
			date       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS moods (
			id         TEXT PRIMARY KEY,
			mood       TEXT NOT NULL,
			notes      TEXT,
			date       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,

		// Daily challenges, retained for a rolling window
		`CREATE TABLE IF NOT EXISTS daily_challenges (
			id          TEXT PRIMARY KEY,
			template_id TEXT NOT NULL,
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			reward_xp   INTEGER NOT NULL,
			category    TEXT NOT NULL,
			completed   BOOLEAN NOT NULL DEFAULT 0,
			date        TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_challenges_date ON daily_challenges(date)`,

		// Append-only XP grant ledger. SUM(amount) == user.total_xp
		// is an invariant; balance is the running total for audit.
		`CREATE TABLE IF NOT EXISTS xp_ledger (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			source    TEXT NOT NULL,
			ref       TEXT,
			amount    INTEGER NOT NULL,
			balance   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_xp_ledger_ts ON xp_ledger(timestamp)`,

		// App preferences and goal configuration
		`CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── User ───────────────────────────────────────────────────────────────────

// SaveUser persists the singleton user with a whole-record upsert.
func (d *DB) SaveUser(u domain.User) error {
	streaks, err := json.Marshal(u.Streaks)
	if err != nil {
		return fmt.Errorf("marshal streaks: %w", err)
	}
	achievements, err := json.Marshal(u.Achievements)
	if err != nil {
		return fmt.Errorf("marshal achievements: %w", err)
	}

	_, err = d.db.Exec(
		`INSERT INTO user (id, name, created_at, total_xp, level, streaks, achievements)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			total_xp=excluded.total_xp,
			level=excluded.level,
			streaks=excluded.streaks,
			achievements=excluded.achievements`,
		u.ID, u.Name, u.CreatedAt.Unix(), u.TotalXP, u.Level,
		string(streaks), string(achievements),
	)
	return err
}

// GetUser loads the singleton user. Returns nil with no error when no
// user exists yet (first launch).
func (d *DB) GetUser() (*domain.User, error) {
	row := d.db.QueryRow(
		`SELECT id, name, created_at, total_xp, level, streaks, achievements
		 FROM user LIMIT 1`,
	)

	var u domain.User
	var createdAt int64
	var streaks, achievements string
	err := row.Scan(&u.ID, &u.Name, &createdAt, &u.TotalXP, &u.Level, &streaks, &achievements)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	u.CreatedAt = time.Unix(createdAt, 0)
	if err := json.Unmarshal([]byte(streaks), &u.Streaks); err != nil {
		u.Streaks = domain.Streaks{}
	}
	if err := json.Unmarshal([]byte(achievements), &u.Achievements); err != nil {
		u.Achievements = []string{}
	}
	if u.Achievements == nil {
		u.Achievements = []string{}
	}
	return &u, nil
}

// ─── Settings ───────────────────────────────────────────────────────────────

// SetSetting stores a settings key-value pair.
func (d *DB) SetSetting(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetSetting retrieves a settings value. Returns "" if absent.
func (d *DB) GetSetting(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// ─── Reset ──────────────────────────────────────────────────────────────────

// ResetAll deletes every row from every table in one transaction.
// This is the only destructive bulk operation; callers gate it behind
// explicit confirmation.
func (d *DB) ResetAll() error {
	tables := []string{
		"user", "expenses", "budgets", "financial_goals",
		"workouts", "water_logs", "meals",
		"meditations", "journals", "gratitude_logs", "moods",
		"daily_challenges", "xp_ledger", "settings",
	}

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	for _, t := range tables {
		if _, err := tx.Exec(`DELETE FROM ` + t); err != nil {
			tx.Rollback()
			return fmt.Errorf("reset %s: %w", t, err)
		}
	}
	return tx.Commit()
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableInt(n int) sql.NullInt64 {
	if n == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(n), Valid: true}
}
