// Package database provides a SQLite-backed content cache for fetched sources.
package database

import (
	"database/sql"
	"log/slog"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Database represents a thread-safe database connection
type Database struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Config holds database configuration
type Config struct {
	Path    string
	Driver  string
	Timeout time.Duration
}

// DefaultConfig returns the default database configuration
func DefaultConfig() Config {
	return Config{
		Driver:  "sqlite",
		Timeout: 30 * time.Second,
	}
}

// NewDatabase creates a new database connection
func NewDatabase(config Config) (*Database, error) {
	if config.Driver == "" {
		config.Driver = "sqlite"
	}

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, err
	}

	// Configure SQLite for better concurrency and performance
	if config.Driver == "sqlite" {
		if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
			closeDB(db)
			return nil, err
		}

		var journalMode string
		if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
			closeDB(db)
			return nil, err
		}

		if !strings.EqualFold(journalMode, "wal") {
			if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
				closeDB(db)
				return nil, err
			}
		}

		pragmas := []string{
			"PRAGMA synchronous=NORMAL",
			"PRAGMA temp_store=memory",
		}

		for _, pragma := range pragmas {
			if _, err := db.Exec(pragma); err != nil {
				closeDB(db)
				return nil, err
			}
		}
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		closeDB(db)
		return nil, err
	}

	return &Database{
		db:     db,
		dbPath: config.Path,
	}, nil
}

func closeDB(db *sql.DB) {
	if closeErr := db.Close(); closeErr != nil {
		slog.Error("Failed to close database", "error", closeErr)
	}
}

// Close closes the database connection
func (db *Database) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// DB returns the underlying sql.DB instance (thread-safe)
func (db *Database) DB() *sql.DB {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.db
}

// Path returns the database file path
func (db *Database) Path() string {
	return db.dbPath
}

// ExecuteSchema executes a schema statement
func (db *Database) ExecuteSchema(schema string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.db.Exec(schema)
	return err
}
