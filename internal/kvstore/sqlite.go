package kvstore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SQLite keeps every key as a row of the kv table in a sqlite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite migrates the database at path and returns a store on it.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}
	if err := runMigrations(path); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func openDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	return db, nil
}

// runMigrations uses its own connection: closing a migrate instance closes
// the database handle it was given.
func runMigrations(path string) error {
	db, err := openDB(path)
	if err != nil {
		return err
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		_ = db.Close()
		return err
	}
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		_ = db.Close()
		return err
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Get implements KeyValue.
func (s *SQLite) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set implements KeyValue.
func (s *SQLite) Set(key, value string) error {
	return s.SetMany(map[string]string{key: value})
}

// SetMany implements KeyValue inside a single transaction.
func (s *SQLite) SetMany(entries map[string]string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return withTx(s.db, func(tx *sql.Tx) error {
		for k, v := range entries {
			_, err := tx.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, k, v, now)
			if err != nil {
				return fmt.Errorf("upsert %s: %w", k, err)
			}
		}
		return nil
	})
}

// Delete implements KeyValue.
func (s *SQLite) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Close implements KeyValue.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
