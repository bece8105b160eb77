package sql

import (
	"strings"

	"github.com/glowcouch/storage-noodle/dialect"
	"github.com/glowcouch/storage-noodle/dialect/sql/schema"
)

// Queries holds the statements of one table in one dialect. Placeholders
// are already in the style of the dialect.
type Queries struct {
	// Insert stores a new row. If the primary key is generated by the
	// database, it returns the key with RETURNING, except on MySQL where
	// the key is read from the result. Otherwise the key is the last
	// argument.
	Insert string
	// Select reads the data columns of a row, or only its key if the
	// table has no data columns.
	Select string
	// Update replaces the data columns of a row. Empty if the table has
	// no data columns; Select is used to probe for existence instead.
	Update string
	// Delete removes a row.
	Delete string
	// DeleteReturning removes a row and returns its data columns. Empty on
	// MySQL, which locks the row with SelectForUpdate and then runs Delete.
	DeleteReturning string
	// SelectForUpdate reads and locks a row. MySQL only.
	SelectForUpdate string
	// Exists selects the key of a row. MySQL only, where an UPDATE that
	// leaves a row unchanged does not count it as affected unless the
	// connection sets clientFoundRows.
	Exists string
}

// BuildQueries returns the statements of t in the dialect d.
func BuildQueries(d string, t schema.Table) Queries {
	q := Queries{
		Insert: InsertQuery(d, t),
		Select: SelectQuery(d, t),
		Update: UpdateQuery(d, t),
		Delete: DeleteQuery(d, t),
	}
	if d == dialect.MySQL {
		q.SelectForUpdate = SelectForUpdateQuery(d, t)
		q.Exists = ExistsQuery(d, t)
	} else {
		q.DeleteReturning = DeleteReturningQuery(d, t)
	}
	return q
}

// InsertQuery returns the INSERT statement of t.
func InsertQuery(d string, t schema.Table) string {
	pk := primaryKey(t)
	cols := columnNames(t.DataColumns())
	if !pk.AutoIncrement {
		cols = append(cols, pk.Name)
	}
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(t.Name)
	switch {
	case len(cols) > 0:
		b.WriteString(" (")
		b.WriteString(strings.Join(cols, ", "))
		b.WriteString(") VALUES (")
		b.WriteString(placeholders(len(cols)))
		b.WriteString(")")
	case d == dialect.MySQL:
		b.WriteString(" () VALUES ()")
	default:
		b.WriteString(" DEFAULT VALUES")
	}
	if pk.AutoIncrement && d != dialect.MySQL {
		b.WriteString(" RETURNING ")
		b.WriteString(pk.Name)
	}
	return dialect.Rebind(d, b.String())
}

// SelectQuery returns the SELECT statement of t.
func SelectQuery(d string, t schema.Table) string {
	return dialect.Rebind(d, "SELECT "+selectList(t)+" FROM "+t.Name+" WHERE "+primaryKey(t).Name+" = ?")
}

// ExistsQuery returns the statement selecting the key of a row of t.
func ExistsQuery(d string, t schema.Table) string {
	pk := primaryKey(t).Name
	return dialect.Rebind(d, "SELECT "+pk+" FROM "+t.Name+" WHERE "+pk+" = ?")
}

// SelectForUpdateQuery returns the locking SELECT statement of t.
func SelectForUpdateQuery(d string, t schema.Table) string {
	return SelectQuery(d, t) + " FOR UPDATE"
}

// UpdateQuery returns the UPDATE statement of t, or "" if t has no data
// columns.
func UpdateQuery(d string, t schema.Table) string {
	cols := columnNames(t.DataColumns())
	if len(cols) == 0 {
		return ""
	}
	for i, c := range cols {
		cols[i] = c + " = ?"
	}
	return dialect.Rebind(d, "UPDATE "+t.Name+" SET "+strings.Join(cols, ", ")+" WHERE "+primaryKey(t).Name+" = ?")
}

// DeleteQuery returns the DELETE statement of t.
func DeleteQuery(d string, t schema.Table) string {
	return dialect.Rebind(d, "DELETE FROM "+t.Name+" WHERE "+primaryKey(t).Name+" = ?")
}

// DeleteReturningQuery returns the DELETE ... RETURNING statement of t.
func DeleteReturningQuery(d string, t schema.Table) string {
	return DeleteQuery(d, t) + " RETURNING " + selectList(t)
}

// selectList lists the data columns of t, or its key if there are none.
func selectList(t schema.Table) string {
	cols := columnNames(t.DataColumns())
	if len(cols) == 0 {
		return primaryKey(t).Name
	}
	return strings.Join(cols, ", ")
}

func primaryKey(t schema.Table) schema.Column {
	if pk := t.PrimaryKey(); pk != nil {
		return *pk
	}
	return schema.Column{Name: schema.IDColumn, Kind: schema.PrimaryKey}
}

func columnNames(cols []schema.Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
