package sql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstraintErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		unique     bool
		foreignKey bool
		check      bool
	}{
		{name: "Nil"},
		{name: "Other", err: errors.New("connection refused")},
		{name: "PostgresUnique", err: &pq.Error{Code: "23505"}, unique: true},
		{name: "PostgresForeignKey", err: &pq.Error{Code: "23503"}, foreignKey: true},
		{name: "PostgresCheck", err: &pq.Error{Code: "23514"}, check: true},
		{name: "PostgresOther", err: &pq.Error{Code: "42P01"}},
		{name: "MySQLDuplicate", err: &mysql.MySQLError{Number: 1062}, unique: true},
		{name: "MySQLParentRow", err: &mysql.MySQLError{Number: 1451}, foreignKey: true},
		{name: "MySQLChildRow", err: &mysql.MySQLError{Number: 1452}, foreignKey: true},
		{name: "MySQLCheck", err: &mysql.MySQLError{Number: 3819}, check: true},
		{name: "SQLiteUnique", err: errors.New("constraint failed: UNIQUE constraint failed: Batch.Id (1555)"), unique: true},
		{name: "SQLiteForeignKey", err: errors.New("FOREIGN KEY constraint failed"), foreignKey: true},
		{
			name:   "Wrapped",
			err:    fmt.Errorf("dialect/sql: exec: %w", &pq.Error{Code: "23505"}),
			unique: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, IsUniqueConstraintError(tt.err))
			assert.Equal(t, tt.foreignKey, IsForeignKeyConstraintError(tt.err))
			assert.Equal(t, tt.check, IsCheckConstraintError(tt.err))
			assert.Equal(t, tt.unique || tt.foreignKey || tt.check, IsConstraintError(tt.err))
		})
	}
}
