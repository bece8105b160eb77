// Package load loads the entities of Go packages that opt into generated
// SQL persistence with //noodle: directives.
//
// A directive is a comment line on the type declaration:
//
//	//noodle:sql dialect=sqlite rawid=int64 name=CookieCRUD derive=create,read,update,delete,table
//	//noodle:rawid R
//	type Cookie[R comparable] struct {
//	    Flavour string
//	    Recipe  noodle.AssocID[Recipe, R]
//	}
//
// Each //noodle:sql line is one configuration and yields one binding type.
// //noodle:rawid names the type parameter that is substituted with the raw
// identifier type of each configuration.
package load

import (
	"go/token"
	"strings"

	"github.com/glowcouch/storage-noodle/dialect"
	"github.com/glowcouch/storage-noodle/dialect/sql/schema"
)

// Package is a loaded Go package holding at least one entity.
type Package struct {
	Name     string
	PkgPath  string
	Dir      string
	Entities []*Entity
}

// Entity is a struct type with one or more SQL configurations.
type Entity struct {
	Name string
	Pos  token.Position
	// TypeParams are the names of the type parameters, in order.
	TypeParams []string
	// RawIDParam is the type parameter substituted with the raw id type.
	RawIDParam string
	Fields     []*Field
	Configs    []*SQLConfig
}

// Generic reports whether the entity has type parameters.
func (e *Entity) Generic() bool {
	return len(e.TypeParams) > 0
}

// Field is a struct field of an entity, bound to the column of the same name.
type Field struct {
	Name  string
	Index int
	Pos   token.Position
	// Type is the column type. For fields of the raw id type parameter and
	// for AssocID references over it, Type is TypeInvalid and RawID is set:
	// the column type is the raw id type of each configuration.
	Type  schema.Type
	RawID bool
	// Ref is the entity an AssocID field refers to.
	Ref string
}

// ColumnType returns the column type of the field under cfg.
func (f *Field) ColumnType(cfg *SQLConfig) schema.Type {
	if f.RawID {
		return cfg.RawID.Type
	}
	return f.Type
}

// SQLConfig is one //noodle:sql configuration of an entity.
type SQLConfig struct {
	Pos     token.Position
	Dialect string
	RawID   RawID
	// Name is the binding type name.
	Name   string
	Derive Derive
	// named is set when the name was given explicitly.
	named bool
}

// Table returns the table of entity e under c.
func (c *SQLConfig) Table(e *Entity) schema.Table {
	t := schema.Table{Name: e.Name, Columns: make([]schema.Column, 0, len(e.Fields)+1)}
	for _, f := range e.Fields {
		t.Columns = append(t.Columns, schema.Column{Name: f.Name, Type: f.ColumnType(c)})
	}
	t.Columns = append(t.Columns, schema.Column{
		Name:          schema.IDColumn,
		Type:          c.RawID.Type,
		Kind:          schema.PrimaryKey,
		AutoIncrement: c.RawID.Generated(),
	})
	return t
}

// RawID is the raw identifier type of a configuration.
type RawID struct {
	// Keyword is the rawid= value.
	Keyword string
	Type    schema.Type
	// PkgPath and Ident name the Go type; PkgPath is empty for builtins.
	PkgPath string
	Ident   string
}

// Generated reports whether ids are assigned by the database. String and
// UUID ids are drawn by the client.
func (r RawID) Generated() bool {
	return r.Type.Integer()
}

// String returns the Go type name.
func (r RawID) String() string {
	if r.PkgPath == "" {
		return r.Ident
	}
	return r.PkgPath[strings.LastIndex(r.PkgPath, "/")+1:] + "." + r.Ident
}

// rawIDs are the supported rawid= keywords.
var rawIDs = map[string]RawID{
	"int":    {Keyword: "int", Type: schema.TypeInt, Ident: "int"},
	"int32":  {Keyword: "int32", Type: schema.TypeInt32, Ident: "int32"},
	"int64":  {Keyword: "int64", Type: schema.TypeInt64, Ident: "int64"},
	"uint":   {Keyword: "uint", Type: schema.TypeUint, Ident: "uint"},
	"uint32": {Keyword: "uint32", Type: schema.TypeUint32, Ident: "uint32"},
	"uint64": {Keyword: "uint64", Type: schema.TypeUint64, Ident: "uint64"},
	"string": {Keyword: "string", Type: schema.TypeString, Ident: "string"},
	"uuid":   {Keyword: "uuid", Type: schema.TypeUUID, PkgPath: uuidPkg, Ident: "UUID"},
}

// Derive is a set of generated capabilities.
type Derive uint8

// Capabilities.
const (
	DeriveCreate Derive = 1 << iota
	DeriveRead
	DeriveUpdate
	DeriveDelete
	DeriveTable

	DeriveAll = DeriveCreate | DeriveRead | DeriveUpdate | DeriveDelete | DeriveTable
)

var deriveNames = []struct {
	d    Derive
	name string
}{
	{DeriveCreate, "create"},
	{DeriveRead, "read"},
	{DeriveUpdate, "update"},
	{DeriveDelete, "delete"},
	{DeriveTable, "table"},
}

// Has reports whether all capabilities of x are in d.
func (d Derive) Has(x Derive) bool {
	return d&x == x
}

// String returns the comma separated capability names.
func (d Derive) String() string {
	var names []string
	for _, n := range deriveNames {
		if d.Has(n.d) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}

// dialectTitles are used in default binding names of entities with several
// configurations.
var dialectTitles = map[string]string{
	dialect.SQLite:   "SQLite",
	dialect.Postgres: "Postgres",
	dialect.MySQL:    "MySQL",
}
