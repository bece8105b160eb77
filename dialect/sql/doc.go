// Package sql provides the SQL backing storage used by generated CRUD
// bindings.
//
// # Backing
//
// A Backing wraps a database/sql connection pool. It is parameterized by a
// dialect marker and by the raw identifier type of the entities it stores:
//
//	db, err := sql.Open[sql.Postgres, int64]("postgres://baker@localhost/bakery")
//
// The marker types SQLite, Postgres and MySQL select the database/sql
// driver (modernc.org/sqlite, github.com/lib/pq and
// github.com/go-sql-driver/mysql; all three are registered by this package)
// and tie generated bindings to the dialect their SQL was written for.
//
// # Statements
//
// Generated bindings execute their statements through Exec, QueryRow and
// InTx. Arguments implementing driver.Valuer, such as noodle.AssocID, are
// resolved before they reach the driver. A query that selects no rows
// reports ErrNoRows, which the bindings turn into a "not found" result.
//
// # Statistics
//
// Every statement is counted and timed:
//
//	db, _ := sql.Open[sql.SQLite, int64](dsn,
//	    sql.WithSlowThreshold(200*time.Millisecond),
//	    sql.WithLogger(logger),
//	)
//	...
//	fmt.Println(db.Stats())
//
// Statements are logged at debug level; statements slower than the threshold
// are logged at warn level.
package sql
