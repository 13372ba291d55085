// Package prefs persists the dashboard's user preferences in a local
// SQLite file. The only preference today is the dark-mode flag.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// KeyDarkMode is the fixed preference name of the theme flag.
const KeyDarkMode = "darkMode"

// Store implements preference storage using modernc.org/sqlite.
type Store struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "prefs: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "prefs: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS preferences (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// Migrate creates the preferences table.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "prefs: migrate")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the stored value of key and whether it exists.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var val string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, eris.Wrapf(err, "prefs: get %s", key)
	}
	return val, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrapf(err, "prefs: set %s", key)
	}
	return nil
}

// DarkMode reports the stored theme flag. A missing or unreadable value
// means light mode.
func (s *Store) DarkMode(ctx context.Context) (bool, error) {
	val, ok, err := s.Get(ctx, KeyDarkMode)
	if err != nil || !ok {
		return false, err
	}
	dark, perr := strconv.ParseBool(val)
	if perr != nil {
		zap.L().Warn("prefs: ignoring invalid darkMode value", zap.String("value", val))
		return false, nil
	}
	return dark, nil
}

// SetDarkMode stores the theme flag.
func (s *Store) SetDarkMode(ctx context.Context, dark bool) error {
	return s.Set(ctx, KeyDarkMode, strconv.FormatBool(dark))
}

// ToggleDarkMode flips the theme flag and returns the new value.
func (s *Store) ToggleDarkMode(ctx context.Context) (bool, error) {
	dark, err := s.DarkMode(ctx)
	if err != nil {
		return false, err
	}
	if err := s.SetDarkMode(ctx, !dark); err != nil {
		return false, err
	}
	return !dark, nil
}
