// Package schema describes the tables of SQL-backed entities and builds
// CREATE TABLE statements for them.
//
// Generated bindings implement Tabler. A Builder collects their tables and
// renders one statement per table with a dialect Generator:
//
//	ddl, err := schema.NewBuilder(schema.SQLite).
//	    Add(bakery.RecipeCRUD{}, bakery.CookieCRUD{}).
//	    Build()
//
// Column types are resolved by the type formatting of the atlas driver for
// the dialect (ariga.io/atlas/sql/sqlite, postgres and mysql).
package schema

// IDColumn is the name of the primary key column of every table.
const IDColumn = "Id"

// ColumnKind tells data columns from the primary key column.
type ColumnKind uint8

// Column kinds.
const (
	Data ColumnKind = iota
	PrimaryKey
)

// String returns the kind name.
func (k ColumnKind) String() string {
	if k == PrimaryKey {
		return "PrimaryKey"
	}
	return "Data"
}

// Column is a column of a Table.
type Column struct {
	Name string
	Type Type
	Kind ColumnKind
	// AutoIncrement marks an integer primary key whose values are assigned
	// by the database.
	AutoIncrement bool
}

// Table is the table of one entity. Columns are in field declaration order,
// followed by the primary key.
type Table struct {
	Name    string
	Columns []Column
}

// PrimaryKey returns the primary key column, or nil if there is none.
func (t Table) PrimaryKey() *Column {
	for i := range t.Columns {
		if t.Columns[i].Kind == PrimaryKey {
			return &t.Columns[i]
		}
	}
	return nil
}

// DataColumns returns the columns that are not the primary key.
func (t Table) DataColumns() []Column {
	cols := make([]Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Kind == Data {
			cols = append(cols, c)
		}
	}
	return cols
}

// Tabler is implemented by bindings that can describe the table of their
// entity.
type Tabler interface {
	Table() Table
}

// Type is a portable column type.
type Type uint8

// Column types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeTime
	TypeUUID
	TypeBytes
	TypeString
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint
	TypeUint64
	TypeFloat32
	TypeFloat64
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeTime:    "time.Time",
	TypeUUID:    "uuid.UUID",
	TypeBytes:   "[]byte",
	TypeString:  "string",
	TypeInt8:    "int8",
	TypeInt16:   "int16",
	TypeInt32:   "int32",
	TypeInt:     "int",
	TypeInt64:   "int64",
	TypeUint8:   "uint8",
	TypeUint16:  "uint16",
	TypeUint32:  "uint32",
	TypeUint:    "uint",
	TypeUint64:  "uint64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
}

var constNames = [...]string{
	TypeInvalid: "TypeInvalid",
	TypeBool:    "TypeBool",
	TypeTime:    "TypeTime",
	TypeUUID:    "TypeUUID",
	TypeBytes:   "TypeBytes",
	TypeString:  "TypeString",
	TypeInt8:    "TypeInt8",
	TypeInt16:   "TypeInt16",
	TypeInt32:   "TypeInt32",
	TypeInt:     "TypeInt",
	TypeInt64:   "TypeInt64",
	TypeUint8:   "TypeUint8",
	TypeUint16:  "TypeUint16",
	TypeUint32:  "TypeUint32",
	TypeUint:    "TypeUint",
	TypeUint64:  "TypeUint64",
	TypeFloat32: "TypeFloat32",
	TypeFloat64: "TypeFloat64",
}

// String returns the Go type the column type is derived from.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// ConstName returns the name of the constant of t in this package.
func (t Type) ConstName() string {
	if t < endTypes {
		return constNames[t]
	}
	return constNames[TypeInvalid]
}

// Valid reports whether t is a known column type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Integer reports whether t is a signed or unsigned integer type.
func (t Type) Integer() bool {
	return t >= TypeInt8 && t <= TypeUint64
}

// Unsigned reports whether t is an unsigned integer type.
func (t Type) Unsigned() bool {
	return t >= TypeUint8 && t <= TypeUint64
}

// Float reports whether t is a floating point type.
func (t Type) Float() bool {
	return t == TypeFloat32 || t == TypeFloat64
}
