// Package dialect names the SQL dialects supported by storage-noodle.
//
// # Supported Dialects
//
//   - Postgres: PostgreSQL database
//   - MySQL: MySQL/MariaDB database
//   - SQLite: SQLite database
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// These are the values accepted by the dialect= key of the //noodle:sql
// directive, and the names reported by the dialect marker types of
// dialect/sql.
//
// # Placeholders
//
// Queries are written with '?' placeholders and rebound for the target
// dialect when the CRUD bindings are generated:
//
//	dialect.Rebind(dialect.Postgres, "SELECT Flavour FROM Cookie WHERE Id = ?")
//	// SELECT Flavour FROM Cookie WHERE Id = $1
//
// # Sub-packages
//
//   - dialect/sql: the SQL backing storage and driver wrapper
//   - dialect/sql/schema: table definitions and CREATE TABLE generation
package dialect
