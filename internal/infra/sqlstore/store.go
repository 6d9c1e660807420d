// Package sqlstore provides a SQL database implementation of domain.KVStore.
// It supports sqlite (mattn/go-sqlite3) and postgres (lib/pq) through sqlx.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/runoshun/bugtrack/internal/domain"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	name       TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// entry is one row of kv_entries.
type entry struct {
	UpdatedAt time.Time `db:"updated_at"`
	Name      string    `db:"name"`
	Value     string    `db:"value"`
}

// Store implements domain.KVStore on a kv_entries table.
type Store struct {
	db    *sqlx.DB
	clock domain.Clock
}

// Open connects to the database. For sqlite, dsn is a file path and the parent
// directory is created. The schema is not created until Initialize.
func Open(driver, dsn string) (*Store, error) {
	if driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
	}
	return NewWithDB(db, domain.RealClock{}), nil
}

// NewWithDB creates a Store over an existing connection.
func NewWithDB(db *sqlx.DB, clock domain.Clock) *Store {
	return &Store{db: db, clock: clock}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize creates the kv_entries table if it doesn't exist.
func (s *Store) Initialize() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var e entry
	err := s.db.Get(&e, s.db.Rebind(`SELECT name, value, updated_at FROM kv_entries WHERE name = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(e.Value), true, nil
}

// Set stores value under key.
func (s *Store) Set(key string, value []byte) error {
	e := entry{Name: key, Value: string(value), UpdatedAt: s.clock.Now().UTC()}
	query := `INSERT INTO kv_entries (name, value, updated_at) VALUES (:name, :value, :updated_at)
ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := s.db.NamedExec(query, e); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(s.db.Rebind(`DELETE FROM kv_entries WHERE name = ?`), key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Keys returns all stored keys in sorted order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	if err := s.db.Select(&keys, `SELECT name FROM kv_entries ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// Ensure Store implements the storage ports.
var (
	_ domain.KVStore          = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
