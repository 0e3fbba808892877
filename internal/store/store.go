// Package store persists the ledger as a single keyed blob in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	_ "modernc.org/sqlite" // register sqlite driver
)

// LedgerKey is the key the ledger blob is stored under.
const LedgerKey = "budgetData"

// Provider loads and saves one opaque blob. ok is false when nothing has
// been saved yet.
type Provider interface {
	Load() (data []byte, ok bool, err error)
	Save(data []byte) error
}

// Store is a SQLite-backed key/value table of blobs.
type Store struct {
	db      *sql.DB
	key     string
	path    string
	version uint
}

// Open opens or creates the database at dbPath and migrates it. Load and
// Save operate on key.
func Open(dbPath, key string, logger *log.Logger) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dsn := dbPath + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)"

	version, err := runMigrations(dsn)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debug("store ready", "path", dbPath, "schema", version)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	return &Store{db: db, key: key, path: dbPath, version: version}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Key returns the key Load and Save operate on.
func (s *Store) Key() string {
	return s.key
}

// Version returns the schema version after migration.
func (s *Store) Version() uint {
	return s.version
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the blob stored under the store's key.
func (s *Store) Load() ([]byte, bool, error) {
	return s.Get(s.key)
}

// Save replaces the blob stored under the store's key.
func (s *Store) Save(data []byte) error {
	return s.Put(s.key, data)
}

// Get returns the blob for key.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow("SELECT value FROM blobs WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, true, nil
}

// Put writes the whole blob for key, replacing any previous value.
func (s *Store) Put(key string, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT OR REPLACE INTO blobs (key, value, updated_at) VALUES (?, ?, ?)`,
		key, data, now)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// UpdatedAt returns when key was last written.
func (s *Store) UpdatedAt(key string) (time.Time, bool, error) {
	var ts string
	err := s.db.QueryRow("SELECT updated_at FROM blobs WHERE key = ?", key).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// Memory is an in-process Provider. SaveErr, when set, is returned by Save
// without storing anything.
type Memory struct {
	Data    []byte
	Saved   bool
	SaveErr error
	Saves   int
}

// Load returns the last saved blob.
func (m *Memory) Load() ([]byte, bool, error) {
	if !m.Saved {
		return nil, false, nil
	}
	return append([]byte(nil), m.Data...), true, nil
}

// Save stores a copy of data.
func (m *Memory) Save(data []byte) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Data = append([]byte(nil), data...)
	m.Saved = true
	m.Saves++
	return nil
}
