package dialect

import (
	"strconv"
	"strings"
)

// Dialect names for supported SQL databases.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Names lists every supported dialect.
var Names = []string{SQLite, Postgres, MySQL}

// Valid reports whether name is a supported dialect.
func Valid(name string) bool {
	switch name {
	case MySQL, SQLite, Postgres:
		return true
	}
	return false
}

// Rebind rewrites the '?' placeholders of query into the placeholder style
// of the given dialect. Postgres uses ordinal placeholders ($1, $2, ...);
// SQLite and MySQL accept '?' and the query is returned unchanged.
//
// Placeholders inside single-quoted string literals are left alone.
func Rebind(name, query string) string {
	if name != Postgres || !strings.Contains(query, "?") {
		return query
	}
	var (
		b       strings.Builder
		n       int
		inQuote bool
	)
	b.Grow(len(query) + 8)
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
