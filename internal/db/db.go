package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Database pairs a connection pool with the driver it was opened with, so
// callers can build repositories and units of work with matching SQL.
type Database struct {
	SQL    *sql.DB
	Driver string
}

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode and enables foreign keys.
// Runs migrations automatically.
func OpenDB(path string) (*sql.DB, error) {
	d, err := Open(DriverSQLite, path)
	if err != nil {
		return nil, err
	}
	return d.SQL, nil
}

// Open opens a database for driver ("sqlite" or "postgres") and migrates it.
// For sqlite, dsn is a file path; for postgres, a lib/pq connection string.
func Open(driver, dsn string) (*Database, error) {
	switch driver {
	case DriverSQLite, "":
		return openSQLite(dsn)
	case DriverPostgres:
		return openPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func openSQLite(path string) (*Database, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Each new connection would get its own empty in-memory database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &Database{SQL: db, Driver: DriverSQLite}, nil
}

func openPostgres(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &Database{SQL: db, Driver: DriverPostgres}, nil
}

// Conn returns a DBTX for non-transactional reads and writes.
func (d *Database) Conn() DBTX {
	return Bind(d.SQL, d.Driver)
}

// UnitOfWork returns a UnitOfWork whose transactions speak d's dialect.
func (d *Database) UnitOfWork() UnitOfWork {
	return NewUnitOfWork(d.SQL, d.Driver)
}

func (d *Database) Close() error {
	return d.SQL.Close()
}
