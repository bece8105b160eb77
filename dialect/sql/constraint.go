package sql

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes for constraint violations (Class 23).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// MySQL error numbers for constraint violations.
const (
	mysqlDuplicateEntry         = 1062
	mysqlForeignKeyParent       = 1451 // Cannot delete or update a parent row
	mysqlForeignKeyChild        = 1452 // Cannot add or update a child row
	mysqlCheckConstraintViolate = 3819
)

// IsConstraintError returns true if the error resulted from a database
// constraint violation.
func IsConstraintError(err error) bool {
	return IsUniqueConstraintError(err) ||
		IsForeignKeyConstraintError(err) ||
		IsCheckConstraintError(err)
}

// IsUniqueConstraintError reports if the error resulted from a DB uniqueness
// constraint violation, such as a client-assigned raw id that is already
// taken.
func IsUniqueConstraintError(err error) bool {
	return matchConstraint(err, pgUniqueViolation, []uint16{mysqlDuplicateEntry},
		"UNIQUE constraint failed", // SQLite
	)
}

// IsForeignKeyConstraintError reports if the error resulted from a database
// foreign-key constraint violation.
func IsForeignKeyConstraintError(err error) bool {
	return matchConstraint(err, pgForeignKeyViolation, []uint16{mysqlForeignKeyParent, mysqlForeignKeyChild},
		"FOREIGN KEY constraint failed", // SQLite
	)
}

// IsCheckConstraintError reports if the error resulted from a database check
// constraint violation.
func IsCheckConstraintError(err error) bool {
	return matchConstraint(err, pgCheckViolation, []uint16{mysqlCheckConstraintViolate},
		"CHECK constraint failed", // SQLite
	)
}

// matchConstraint checks the error codes of the Postgres and MySQL drivers,
// and falls back to matching the message for SQLite, whose errors only
// carry the extended result code.
func matchConstraint(err error, pgCode string, mysqlNumbers []uint16, sqliteMsg string) bool {
	if err == nil {
		return false
	}
	if e, ok := asError[*pq.Error](err); ok {
		return string(e.Code) == pgCode
	}
	if e, ok := asError[*mysql.MySQLError](err); ok {
		for _, n := range mysqlNumbers {
			if e.Number == n {
				return true
			}
		}
		return false
	}
	return strings.Contains(err.Error(), sqliteMsg)
}

// asError attempts to extract an error of type T from the error chain.
func asError[T error](err error) (T, bool) {
	var target T
	ok := errors.As(err, &target)
	return target, ok
}
