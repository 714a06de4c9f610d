package template

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// snapshotKey is the fixed key the snapshot lives under.
const snapshotKey = "templates"

// SQLiteSlot persists the snapshot in one row of a key-value table. The
// value is the same JSON object a FileSlot would write; SQLite just gives
// the slot durability semantics without a writable directory.
type SQLiteSlot struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteSlot opens (or creates) the database at path and ensures the
// snapshots table exists.
func NewSQLiteSlot(path string) (*SQLiteSlot, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteSlot{db: db}, nil
}

// Load reads and decodes the snapshot row.
func (s *SQLiteSlot) Load() (Map, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM snapshots WHERE key = ?", snapshotKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}

	var m Map
	if err := json.Unmarshal([]byte(value), &m); err != nil {
		return nil, fmt.Errorf("decoding template snapshot row: %w", err)
	}
	if m == nil {
		m = Map{}
	}
	return m, nil
}

// Save upserts the snapshot row.
func (s *SQLiteSlot) Save(m Map) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`
		INSERT INTO snapshots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, snapshotKey, string(data))
	return err
}

// Close closes the database connection.
func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
