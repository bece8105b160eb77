package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glowcouch/storage-noodle/dialect"
)

func TestValid(t *testing.T) {
	for _, name := range dialect.Names {
		assert.True(t, dialect.Valid(name), name)
	}
	assert.False(t, dialect.Valid("sqlite3"))
	assert.False(t, dialect.Valid(""))
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		query   string
		want    string
	}{
		{
			name:    "PostgresOrdinal",
			dialect: dialect.Postgres,
			query:   "UPDATE Cookie SET Flavour = ?, Recipe = ? WHERE Id = ?",
			want:    "UPDATE Cookie SET Flavour = $1, Recipe = $2 WHERE Id = $3",
		},
		{
			name:    "PostgresQuoted",
			dialect: dialect.Postgres,
			query:   "SELECT '?' FROM Cookie WHERE Id = ?",
			want:    "SELECT '?' FROM Cookie WHERE Id = $1",
		},
		{
			name:    "PostgresNoPlaceholders",
			dialect: dialect.Postgres,
			query:   "SELECT 1",
			want:    "SELECT 1",
		},
		{
			name:    "SQLiteUnchanged",
			dialect: dialect.SQLite,
			query:   "SELECT Flavour FROM Cookie WHERE Id = ?",
			want:    "SELECT Flavour FROM Cookie WHERE Id = ?",
		},
		{
			name:    "MySQLUnchanged",
			dialect: dialect.MySQL,
			query:   "DELETE FROM Cookie WHERE Id = ?",
			want:    "DELETE FROM Cookie WHERE Id = ?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dialect.Rebind(tt.dialect, tt.query))
		})
	}
}

func TestReserved(t *testing.T) {
	tests := []struct {
		ident string
		want  []string
	}{
		{ident: "Order", want: []string{dialect.SQLite, dialect.Postgres, dialect.MySQL}},
		{ident: "group", want: []string{dialect.SQLite, dialect.Postgres, dialect.MySQL}},
		{ident: "User", want: []string{dialect.Postgres}},
		{ident: "Key", want: []string{dialect.MySQL}},
		{ident: "Returning", want: []string{dialect.Postgres}},
		{ident: "Flavour"},
		{ident: "Id"},
	}
	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.want, dialect.ReservedIn(tt.ident))
		})
	}
	assert.False(t, dialect.Reserved("oracle", "Order"))
}
