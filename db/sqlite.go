package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// KV wraps the SQLite database used as the durable key-value store.
// Each key holds one whole serialized document; writes replace the document.
type KV struct {
	conn *sql.DB
}

// Open creates a new key-value store backed by the database at dbPath
func Open(dbPath string) (*KV, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database connection
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool settings
	conn.SetMaxOpenConns(1) // SQLite works best with single connection
	conn.SetMaxIdleConns(1)

	kv := &KV{conn: conn}

	// Run migrations
	if err := kv.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return kv, nil
}

// Close closes the database connection
func (kv *KV) Close() error {
	return kv.conn.Close()
}

// migrate runs database migrations
func (kv *KV) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, migration := range migrations {
		if _, err := kv.conn.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, migration)
		}
	}

	return nil
}

// Get retrieves the value stored under key. The second return value reports
// whether the key was present.
func (kv *KV) Get(key string) (string, bool, error) {
	var value string
	err := kv.conn.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (kv *KV) Set(key, value string) error {
	_, err := kv.conn.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

// Delete removes key from the store. Deleting a missing key is not an error.
func (kv *KV) Delete(key string) error {
	_, err := kv.conn.Exec("DELETE FROM kv WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Keys returns all stored keys in lexical order
func (kv *KV) Keys() ([]string, error) {
	rows, err := kv.conn.Query("SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, nil
}

// Stats represents storage statistics
type Stats struct {
	KeyCount    int64
	DBSizeBytes int64
}

// GetStats returns storage statistics
func (kv *KV) GetStats() (*Stats, error) {
	stats := &Stats{}

	// Get key count
	err := kv.conn.QueryRow("SELECT COUNT(*) FROM kv").Scan(&stats.KeyCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count keys: %w", err)
	}

	// Get database size (page_count * page_size)
	var pageCount, pageSize int64
	err = kv.conn.QueryRow("PRAGMA page_count").Scan(&pageCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}

	err = kv.conn.QueryRow("PRAGMA page_size").Scan(&pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get page size: %w", err)
	}

	stats.DBSizeBytes = pageCount * pageSize

	return stats, nil
}

// Vacuum optimizes the database file
func (kv *KV) Vacuum() error {
	_, err := kv.conn.Exec("VACUUM")
	if err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	return nil
}
