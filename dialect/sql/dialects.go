package sql

import (
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/glowcouch/storage-noodle/dialect"
)

// Dialect is implemented by the dialect marker types. A Backing is
// parameterized by its marker so that bindings generated for one dialect can
// not be used with a database of another.
type Dialect interface {
	// Name returns the dialect name, one of the dialect package constants.
	Name() string
	// DriverName returns the database/sql driver name used by Open.
	DriverName() string
}

type (
	// SQLite marks a SQLite database (modernc.org/sqlite driver).
	SQLite struct{}
	// Postgres marks a PostgreSQL database (github.com/lib/pq driver).
	Postgres struct{}
	// MySQL marks a MySQL or MariaDB database (github.com/go-sql-driver/mysql driver).
	MySQL struct{}
)

// Name implements Dialect.
func (SQLite) Name() string { return dialect.SQLite }

// DriverName implements Dialect.
func (SQLite) DriverName() string { return "sqlite" }

// Name implements Dialect.
func (Postgres) Name() string { return dialect.Postgres }

// DriverName implements Dialect.
func (Postgres) DriverName() string { return "postgres" }

// Name implements Dialect.
func (MySQL) Name() string { return dialect.MySQL }

// DriverName implements Dialect.
func (MySQL) DriverName() string { return "mysql" }

// normalizeDSN implements dsnNormalizer.
func (MySQL) normalizeDSN(dsn string) (string, error) {
	return MySQLDSN(dsn)
}

// dsnNormalizer is implemented by markers whose data source names need
// adjusting before the database is opened.
type dsnNormalizer interface {
	normalizeDSN(string) (string, error)
}

// MySQLDSN returns dsn with the options the generated MySQL bindings rely on:
// clientFoundRows, so that an UPDATE that matches a row reports it as
// affected even when no value changed, and parseTime, so that DATETIME
// columns scan into time.Time.
func MySQLDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("dialect/sql: parse mysql dsn: %w", err)
	}
	cfg.ClientFoundRows = true
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

var (
	_ Dialect       = SQLite{}
	_ Dialect       = Postgres{}
	_ Dialect       = MySQL{}
	_ dsnNormalizer = MySQL{}
)
