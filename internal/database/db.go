package database

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know as a ? driver.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// DB is the connection pool shared by every request. Work against it goes
// through a Session.
type DB struct {
	conn    *sqlx.DB
	dialect Dialect
}

// Open connects using a DATABASE_URL. postgres:// and postgresql:// use
// lib/pq; sqlite://<path> and file:<path> use the embedded SQLite driver.
func Open(databaseURL string) (*DB, error) {
	dialect, driver, dsn, err := parseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == DialectSQLite {
		// A single writer avoids SQLITE_BUSY between a session's transaction
		// and reads issued on the pool.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(10)
	}

	return &DB{conn: conn, dialect: dialect}, nil
}

func parseURL(databaseURL string) (Dialect, string, string, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DialectPostgres, "postgres", databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return DialectSQLite, "sqlite", sqliteDSN(strings.TrimPrefix(databaseURL, "sqlite://")), nil
	case strings.HasPrefix(databaseURL, "file:"):
		return DialectSQLite, "sqlite", sqliteDSN(strings.TrimPrefix(databaseURL, "file:")), nil
	}
	return "", "", "", fmt.Errorf("unsupported database url %q", databaseURL)
}

func sqliteDSN(path string) string {
	if path == "" {
		path = ":memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// seqColumn is a per-row counter that only grows with insertion order.
// SQLite's created_at has millisecond precision, so rows from one request
// often share a timestamp.
func (d *DB) seqColumn() string {
	if d.dialect == DialectSQLite {
		return "rowid"
	}
	return "seq"
}

func (d *DB) orderedList(query string) string {
	return fmt.Sprintf(query, d.seqColumn())
}

func (d *DB) Dialect() Dialect {
	return d.dialect
}

func (d *DB) Close() error {
	return d.conn.Close()
}
