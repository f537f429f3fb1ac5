// Package prefs provides the SQLite-backed preference repository.
// Preferences are the small pieces of UI state that survive between runs:
// the last search query, active tag, page number, the dark-mode flag and
// the admin-session flag. They seed initial view state only and never
// touch the report store itself.
package prefs

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// Well-known preference keys.
const (
	KeySearchQuery = "searchQuery"
	KeyActiveTag   = "activeTag"
	KeyCurrentPage = "currentPage"
	KeyDarkMode    = "darkMode"
	KeyIsAdmin     = "isAdmin"
)

// Store manages the prefs.db SQLite database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the preference database in the given directory.
// It initializes the schema if the database is new.
func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, "prefs.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open prefs db: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Get returns the stored value for key. ok is false when the key has
// never been set; that is not an error.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get pref %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores or replaces the value for key.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("set pref %s: %w", key, err)
	}
	return nil
}

// Delete removes one key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM prefs WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("delete pref %s: %w", key, err)
	}
	return nil
}

// Clear removes all stored preferences.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM prefs")
	if err != nil {
		return fmt.Errorf("clear prefs: %w", err)
	}
	return nil
}

// All returns every stored preference keyed by name.
func (s *Store) All() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM prefs ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list prefs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan pref: %w", err)
		}
		out[key] = value
	}
	return out, rows.Err()
}

// GetInt returns the value for key parsed as an integer. A missing or
// unparseable value returns fallback.
func (s *Store) GetInt(key string, fallback int) (int, error) {
	value, ok, err := s.Get(key)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback, nil
	}
	return n, nil
}

// SetInt stores an integer value for key.
func (s *Store) SetInt(key string, value int) error {
	return s.Set(key, strconv.Itoa(value))
}

// GetBool returns the value for key parsed as a boolean. Only the exact
// string "true" reads as true, matching how the original site stored its
// flags.
func (s *Store) GetBool(key string) (bool, error) {
	value, ok, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return ok && value == "true", nil
}

// SetBool stores a boolean value for key.
func (s *Store) SetBool(key string, value bool) error {
	return s.Set(key, strconv.FormatBool(value))
}
