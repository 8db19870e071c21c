package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"claudechat/internal/logging"

	_ "modernc.org/sqlite"
)

// KV is a string-keyed, string-valued persistence layer. Get's second return
// reports whether the key was present; an absent key is a valid "no prior
// state" condition, not an error.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Storage keys used by the session store.
const (
	KeyCredential   = "credential"
	KeyChats        = "chats"
	KeyActiveChatID = "activeChatId"
)

// SQLiteKV implements KV on a single-table SQLite database.
type SQLiteKV struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// NewSQLiteKV initializes the SQLite database at the given path.
func NewSQLiteKV(path string) (*SQLiteKV, error) {
	timer := logging.StartTimer(logging.CategoryStore, "NewSQLiteKV")
	defer timer.Stop()

	logging.Store("Initializing SQLiteKV at path: %s", path)

	// Ensure directory exists (":memory:" has no directory)
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			logging.Get(logging.CategoryStore).Error("Failed to create directory %s: %v", dir, err)
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to open database at %s: %v", path, err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite synchronous=NORMAL: %v", err)
	}

	kv := &SQLiteKV{db: db, dbPath: path}
	if err := kv.initialize(); err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to initialize schema: %v", err)
		db.Close()
		return nil, err
	}

	logging.Store("SQLiteKV initialization complete")
	return kv, nil
}

// initialize creates the required table.
func (s *SQLiteKV) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Get retrieves the value stored under key.
func (s *SQLiteKV) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to read key %q: %v", key, err)
		return "", false, &StorageError{Key: key, Op: "get", Err: err}
	}

	logging.StoreDebug("Read key %q (%d bytes)", key, len(value))
	return value, true, nil
}

// Set stores value under key, replacing any prior value.
func (s *SQLiteKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to write key %q: %v", key, err)
		return &StorageError{Key: key, Op: "set", Err: err}
	}

	logging.StoreDebug("Wrote key %q (%d bytes)", key, len(value))
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *SQLiteKV) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to delete key %q: %v", key, err)
		return &StorageError{Key: key, Op: "delete", Err: err}
	}

	logging.StoreDebug("Deleted key %q", key)
	return nil
}

// Close closes the database connection.
func (s *SQLiteKV) Close() error {
	logging.Store("Closing SQLiteKV database connection")
	return s.db.Close()
}

// MemoryKV is an in-memory KV for tests.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV returns an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Close() error { return nil }
