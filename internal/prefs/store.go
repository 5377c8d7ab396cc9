// Package prefs is a typed, write-through preferences store backed by a small
// sqlite database under the user's config dir. It stands in for the host
// platform's native per-user settings facility and is usable before any other
// subsystem is configured.
package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// Settings keys. They mirror the on-disk names used by the desktop releases,
// so a store written by one stays readable by the other tooling.
const (
	keyGeometry         = "Geometry"
	keyAppExePath       = "AppExePath"
	keyPlaySoundOnCombo = "PlaySoundOnCombo"
	keyAutoStartAtLogin = "AutoStartAtLogin"
)

// Documented defaults for the boolean preferences.
const (
	defaultPlaySoundOnCombo = true
	defaultAutoStartAtLogin = false
)

// Store holds typed accessors over one namespaced preferences database.
// Every setter writes through immediately; there is no batching.
type Store struct {
	db *sql.DB
}

// Open resolves the preferences database for the organization/application
// namespace under the user config dir and opens it, creating it on first use.
func Open(organization, application string) (*Store, error) {
	path, err := DefaultPath(organization, application)
	if err != nil {
		return nil, err
	}
	return OpenPath(path)
}

// DefaultPath returns the preferences database location for a namespace.
func DefaultPath(organization, application string) (string, error) {
	organization = strings.TrimSpace(organization)
	application = strings.TrimSpace(application)
	if organization == "" || application == "" {
		return "", errors.New("organization and application names are required")
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(configDir, organization, application, "preferences.db"), nil
}

// OpenPath opens a preferences database at an explicit location.
func OpenPath(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preferences path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create preferences dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open preferences db: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// OpenInMemory opens a fresh, empty store for tests.
func OpenInMemory() (*Store, error) {
	db, err := sql.Open(driverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open preferences memory db: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate handles migrate.
func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("migrate preferences: %w", err)
	}
	return nil
}

// setValue writes one key immediately.
func (s *Store) setValue(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences(key, value) VALUES(?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

// getValue reads one key; ok is false when the key was never set.
func (s *Store) getValue(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, true, nil
}

// setBool writes a boolean preference.
func (s *Store) setBool(key string, value bool) error {
	encoded := []byte("0")
	if value {
		encoded = []byte("1")
	}
	return s.setValue(key, encoded)
}

// getBool reads a boolean preference, resolving a missing key to the default.
func (s *Store) getBool(key string, fallback bool) bool {
	value, ok, err := s.getValue(key)
	if err != nil || !ok {
		return fallback
	}
	return string(value) == "1"
}

// SetGeometry stores the window geometry blob. The blob is opaque to the
// store; the UI decides what it encodes.
func (s *Store) SetGeometry(blob []byte) error {
	return s.setValue(keyGeometry, blob)
}

// Geometry returns the stored geometry blob, or nil when never set.
func (s *Store) Geometry() []byte {
	value, ok, err := s.getValue(keyGeometry)
	if err != nil || !ok {
		return nil
	}
	return value
}

// SetAutoStartAtLogin stores the autostart flag. This only updates the stored
// value: registering the application with the OS login mechanism is the job of
// an external collaborator.
func (s *Store) SetAutoStartAtLogin(value bool) error {
	return s.setBool(keyAutoStartAtLogin, value)
}

// AutoStartAtLogin returns the autostart flag (default false).
func (s *Store) AutoStartAtLogin() bool {
	return s.getBool(keyAutoStartAtLogin, defaultAutoStartAtLogin)
}

// SetPlaySoundOnCombo stores the play-sound-on-combo flag.
func (s *Store) SetPlaySoundOnCombo(value bool) error {
	return s.setBool(keyPlaySoundOnCombo, value)
}

// PlaySoundOnCombo returns the play-sound-on-combo flag (default true).
func (s *Store) PlaySoundOnCombo() bool {
	return s.getBool(keyPlaySoundOnCombo, defaultPlaySoundOnCombo)
}

// SetInstalledApplicationPath records where the application binary was
// installed. Written by the installer; the application itself only reads it.
func (s *Store) SetInstalledApplicationPath(path string) error {
	return s.setValue(keyAppExePath, []byte(path))
}

// InstalledApplicationPath returns the installed application path with native
// separators normalized to forward slashes, or "" when never set.
func (s *Store) InstalledApplicationPath() string {
	value, ok, err := s.getValue(keyAppExePath)
	if err != nil || !ok {
		return ""
	}
	return strings.ReplaceAll(string(value), `\`, "/")
}

// Reset restores the boolean preferences to their documented defaults. It does
// not touch Geometry or AppExePath, and it does not touch the OS autostart
// state, only the stored flag.
func (s *Store) Reset() error {
	if err := s.SetPlaySoundOnCombo(defaultPlaySoundOnCombo); err != nil {
		return err
	}
	return s.SetAutoStartAtLogin(defaultAutoStartAtLogin)
}
