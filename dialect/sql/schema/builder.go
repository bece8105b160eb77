package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	atlas "ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/sqlite"

	"github.com/glowcouch/storage-noodle/dialect"
)

// Generator renders the CREATE TABLE statement of a table.
type Generator func(Table) (string, error)

// Builder collects tables and renders their CREATE TABLE statements.
type Builder struct {
	gen    Generator
	tables []Table
}

// NewBuilder returns a Builder rendering statements with gen.
func NewBuilder(gen Generator) *Builder {
	return &Builder{gen: gen}
}

// Add adds the tables of the given bindings.
func (b *Builder) Add(ts ...Tabler) *Builder {
	for _, t := range ts {
		b.tables = append(b.tables, t.Table())
	}
	return b
}

// AddTable adds tables.
func (b *Builder) AddTable(ts ...Table) *Builder {
	b.tables = append(b.tables, ts...)
	return b
}

// Tables returns the tables added so far, in insertion order.
func (b *Builder) Tables() []Table {
	return b.tables
}

// Statements renders one statement per table, in insertion order.
func (b *Builder) Statements() ([]string, error) {
	stmts := make([]string, 0, len(b.tables))
	for _, t := range b.tables {
		stmt, err := b.gen(t)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// Build renders the statements of all tables, one per line.
func (b *Builder) Build() (string, error) {
	stmts, err := b.Statements()
	if err != nil {
		return "", err
	}
	return strings.Join(stmts, "\n"), nil
}

// ExecContexter is implemented by *sql.DB, *sql.Tx and dialect/sql.Backing.
type ExecContexter interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Exec renders the statements and executes them one by one.
func (b *Builder) Exec(ctx context.Context, db ExecContexter) error {
	stmts, err := b.Statements()
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: exec %q: %w", stmt, err)
		}
	}
	return nil
}

// SQLite renders CREATE TABLE statements for SQLite. Integer primary keys
// are declared as "integer" so that they alias the rowid and are assigned
// by the database.
func SQLite(t Table) (string, error) {
	return createTable(dialect.SQLite, t, func(c Column) (string, error) {
		var ct atlas.Type
		switch {
		case c.Type.Integer():
			ct = &atlas.IntegerType{T: "integer", Unsigned: c.Type.Unsigned()}
		case c.Type.Float():
			ct = &atlas.FloatType{T: "real"}
		case c.Type == TypeBool:
			ct = &atlas.BoolType{T: "boolean"}
		case c.Type == TypeString:
			ct = &atlas.StringType{T: "text"}
		case c.Type == TypeBytes:
			ct = &atlas.BinaryType{T: "blob"}
		case c.Type == TypeTime:
			ct = &atlas.TimeType{T: "datetime"}
		case c.Type == TypeUUID:
			ct = &atlas.UUIDType{T: "uuid"}
		default:
			return "", fmt.Errorf("unsupported column type %s", c.Type)
		}
		f, err := sqlite.FormatType(ct)
		if err != nil {
			return "", err
		}
		return columnDef(c, f, ""), nil
	})
}

// Postgres renders CREATE TABLE statements for PostgreSQL. Auto increment
// primary keys are declared as serial or bigserial.
func Postgres(t Table) (string, error) {
	return createTable(dialect.Postgres, t, func(c Column) (string, error) {
		var ct atlas.Type
		switch {
		case c.AutoIncrement && (c.Type == TypeInt32 || c.Type == TypeInt16 || c.Type == TypeUint16 || c.Type == TypeInt8 || c.Type == TypeUint8):
			ct = &postgres.SerialType{T: postgres.TypeSerial}
		case c.AutoIncrement:
			ct = &postgres.SerialType{T: postgres.TypeBigSerial}
		case c.Type == TypeInt8 || c.Type == TypeInt16 || c.Type == TypeUint8:
			ct = &atlas.IntegerType{T: postgres.TypeSmallInt}
		case c.Type == TypeInt32 || c.Type == TypeUint16:
			ct = &atlas.IntegerType{T: postgres.TypeInteger}
		case c.Type.Integer():
			ct = &atlas.IntegerType{T: postgres.TypeBigInt}
		case c.Type == TypeFloat32:
			ct = &atlas.FloatType{T: postgres.TypeReal}
		case c.Type == TypeFloat64:
			ct = &atlas.FloatType{T: postgres.TypeDouble}
		case c.Type == TypeBool:
			ct = &atlas.BoolType{T: postgres.TypeBoolean}
		case c.Type == TypeString:
			ct = &atlas.StringType{T: postgres.TypeText}
		case c.Type == TypeBytes:
			ct = &atlas.BinaryType{T: postgres.TypeBytea}
		case c.Type == TypeTime:
			ct = &atlas.TimeType{T: postgres.TypeTimestampWTZ}
		case c.Type == TypeUUID:
			ct = &atlas.UUIDType{T: postgres.TypeUUID}
		default:
			return "", fmt.Errorf("unsupported column type %s", c.Type)
		}
		f, err := postgres.FormatType(ct)
		if err != nil {
			return "", err
		}
		return columnDef(c, f, ""), nil
	})
}

// MySQL renders CREATE TABLE statements for MySQL. Strings used as keys
// are declared as varchar(255), since MySQL can not index text columns
// without a prefix length.
func MySQL(t Table) (string, error) {
	return createTable(dialect.MySQL, t, func(c Column) (string, error) {
		var ct atlas.Type
		switch {
		case c.Type == TypeInt8 || c.Type == TypeUint8:
			ct = &atlas.IntegerType{T: mysql.TypeTinyInt, Unsigned: c.Type.Unsigned()}
		case c.Type == TypeInt16 || c.Type == TypeUint16:
			ct = &atlas.IntegerType{T: mysql.TypeSmallInt, Unsigned: c.Type.Unsigned()}
		case c.Type == TypeInt32 || c.Type == TypeUint32:
			ct = &atlas.IntegerType{T: mysql.TypeInt, Unsigned: c.Type.Unsigned()}
		case c.Type.Integer():
			ct = &atlas.IntegerType{T: mysql.TypeBigInt, Unsigned: c.Type.Unsigned()}
		case c.Type == TypeFloat32:
			ct = &atlas.FloatType{T: mysql.TypeFloat}
		case c.Type == TypeFloat64:
			ct = &atlas.FloatType{T: mysql.TypeDouble}
		case c.Type == TypeBool:
			ct = &atlas.BoolType{T: mysql.TypeBool}
		case c.Type == TypeString && c.Kind == PrimaryKey:
			ct = &atlas.StringType{T: mysql.TypeVarchar, Size: 255}
		case c.Type == TypeString:
			ct = &atlas.StringType{T: mysql.TypeLongText}
		case c.Type == TypeBytes:
			ct = &atlas.BinaryType{T: mysql.TypeLongBlob}
		case c.Type == TypeTime:
			p := 6
			ct = &atlas.TimeType{T: mysql.TypeDateTime, Precision: &p}
		case c.Type == TypeUUID:
			ct = &atlas.StringType{T: mysql.TypeChar, Size: 36}
		default:
			return "", fmt.Errorf("unsupported column type %s", c.Type)
		}
		f, err := mysql.FormatType(ct)
		if err != nil {
			return "", err
		}
		var extra string
		if c.AutoIncrement {
			extra = "AUTO_INCREMENT"
		}
		return columnDef(c, f, extra), nil
	})
}

// createTable validates t and renders its statement, rendering each column
// definition with column.
func createTable(d string, t Table, column func(Column) (string, error)) (string, error) {
	if err := Validate(t, d); err != nil {
		return "", fmt.Errorf("schema: invalid table %s: %w", t.Name, err)
	}
	defs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		def, err := column(c)
		if err != nil {
			return "", fmt.Errorf("schema: table %s column %s: %w", t.Name, c.Name, err)
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s);", t.Name, strings.Join(defs, ", ")), nil
}

// columnDef renders a column definition from its formatted type.
func columnDef(c Column, typ, extra string) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteString(" ")
	b.WriteString(processType(typ))
	if extra != "" {
		b.WriteString(" ")
		b.WriteString(extra)
	}
	if c.Kind == PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	return b.String()
}

// processType strips the quotes some drivers report type names with.
func processType(typ string) string {
	return strings.ReplaceAll(typ, `"`, "")
}
