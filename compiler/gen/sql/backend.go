package sql

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/glowcouch/storage-noodle/compiler/gen"
	"github.com/glowcouch/storage-noodle/compiler/load"
	"github.com/glowcouch/storage-noodle/dialect"
	"github.com/glowcouch/storage-noodle/dialect/sql/schema"
)

// Backend emits the SQL bindings of entities. It implements gen.Backend.
type Backend struct{}

var _ gen.Backend = (*Backend)(nil)

// NewBackend returns the SQL backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Name implements gen.Backend.
func (*Backend) Name() string {
	return "sql"
}

// GenEntity implements gen.Backend. It emits one binding type per
// configuration of e.
func (*Backend) GenEntity(f *jen.File, e *load.Entity) error {
	for _, cfg := range e.Configs {
		b, err := newBinding(e, cfg)
		if err != nil {
			return err
		}
		b.gen(f)
	}
	return nil
}

// markers are the dialect marker types of the dialect/sql package.
var markers = map[string]string{
	dialect.SQLite:   "SQLite",
	dialect.Postgres: "Postgres",
	dialect.MySQL:    "MySQL",
}

// binding is one configuration of an entity being emitted.
type binding struct {
	entity  *load.Entity
	cfg     *load.SQLConfig
	table   schema.Table
	queries Queries
}

func newBinding(e *load.Entity, cfg *load.SQLConfig) (*binding, error) {
	if _, ok := markers[cfg.Dialect]; !ok {
		return nil, fmt.Errorf("binding %s: unsupported dialect %q", cfg.Name, cfg.Dialect)
	}
	table := cfg.Table(e)
	if err := schema.Validate(table, cfg.Dialect); err != nil {
		return nil, fmt.Errorf("binding %s: %w", cfg.Name, err)
	}
	return &binding{
		entity:  e,
		cfg:     cfg,
		table:   table,
		queries: BuildQueries(cfg.Dialect, table),
	}, nil
}

func (b *binding) gen(f *jen.File) {
	b.genType(f)
	if b.cfg.Derive.Has(load.DeriveCreate) {
		b.genCreate(f)
	}
	if b.cfg.Derive.Has(load.DeriveRead) {
		b.genRead(f)
	}
	if b.cfg.Derive.Has(load.DeriveUpdate) {
		b.genUpdate(f)
	}
	if b.cfg.Derive.Has(load.DeriveDelete) {
		b.genDelete(f)
		b.genDeleteReturning(f)
	}
	if b.cfg.Derive.Has(load.DeriveTable) {
		b.genTable(f)
	}
}

// genType emits the binding type and the compile-time interface
// assertions.
func (b *binding) genType(f *jen.File) {
	name := b.cfg.Name
	doc(f, "%s stores %s entities in a %s database.", name, b.entityName(), markers[b.cfg.Dialect])
	f.Type().Id(name).Struct()

	var defs []jen.Code
	assert := func(iface jen.Code) {
		defs = append(defs, jen.Id("_").Add(iface).Op("=").Id(name).Values())
	}
	capability := func(iface string) jen.Code {
		return jen.Qual(gen.NoodlePkg, iface).Types(b.entityType(), b.storageType(), b.rawType())
	}
	crud := load.DeriveCreate | load.DeriveRead | load.DeriveUpdate | load.DeriveDelete
	if b.cfg.Derive.Has(crud) {
		assert(capability("CRUD"))
	} else {
		for _, c := range []struct {
			d     load.Derive
			iface string
		}{
			{load.DeriveCreate, "Creator"},
			{load.DeriveRead, "Reader"},
			{load.DeriveUpdate, "Updater"},
			{load.DeriveDelete, "Deleter"},
		} {
			if b.cfg.Derive.Has(c.d) {
				assert(capability(c.iface))
			}
		}
	}
	if b.cfg.Derive.Has(load.DeriveTable) {
		assert(jen.Qual(gen.SchemaPkg, "Tabler"))
	}
	if len(defs) > 0 {
		f.Line()
		f.Var().Defs(defs...)
	}
}

func (b *binding) genCreate(f *jen.File) {
	doc(f, "Create inserts entity and returns the id it is stored under.")
	f.Func().Params(jen.Id(b.cfg.Name)).Id("Create").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("storage").Add(b.storageType()),
		jen.Id("entity").Add(b.entityType()),
	).Params(b.idType(), jen.Error()).BlockFunc(func(grp *jen.Group) {
		fail := jen.Return(b.idType().Values(), b.opError("OpCreate"))
		args := b.fieldArgs()
		switch raw := b.cfg.RawID; {
		case !raw.Generated():
			grp.Id("id").Op(":=").Add(b.newClientID())
			grp.If(
				jen.List(jen.Id("_"), jen.Err()).Op(":=").Id("storage").Dot("Exec").Call(
					append([]jen.Code{jen.Id("ctx"), jen.Lit(b.queries.Insert)}, append(args, jen.Id("id"))...)...,
				),
				jen.Err().Op("!=").Nil(),
			).Block(fail)
			grp.Return(b.newID(jen.Id("id")), jen.Nil())
		case b.cfg.Dialect == dialect.MySQL:
			grp.List(jen.Id("res"), jen.Err()).Op(":=").Id("storage").Dot("Exec").Call(
				append([]jen.Code{jen.Id("ctx"), jen.Lit(b.queries.Insert)}, args...)...,
			)
			grp.If(jen.Err().Op("!=").Nil()).Block(fail)
			grp.List(jen.Id("id"), jen.Err()).Op(":=").Id("res").Dot("LastInsertId").Call()
			grp.If(jen.Err().Op("!=").Nil()).Block(fail)
			id := jen.Id("id")
			if raw.Type != schema.TypeInt64 {
				id = jen.Id(raw.Ident).Call(jen.Id("id"))
			}
			grp.Return(b.newID(id), jen.Nil())
		default:
			grp.Var().Id("id").Add(b.rawType())
			grp.If(
				jen.Err().Op(":=").Id("storage").Dot("QueryRow").Call(
					append([]jen.Code{jen.Id("ctx"), jen.Lit(b.queries.Insert)}, args...)...,
				).Dot("Scan").Call(jen.Op("&").Id("id")),
				jen.Err().Op("!=").Nil(),
			).Block(fail)
			grp.Return(b.newID(jen.Id("id")), jen.Nil())
		}
	})
}

func (b *binding) genRead(f *jen.File) {
	doc(f, "Read returns the %s stored under id, or false if there is none.", b.entity.Name)
	f.Func().Params(jen.Id(b.cfg.Name)).Id("Read").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("storage").Add(b.storageType()),
		jen.Id("id").Add(b.idType()),
	).Params(b.entityType(), jen.Bool(), jen.Error()).Block(
		jen.Var().Id("entity").Add(b.entityType()),
		jen.Err().Op(":=").Id("storage").Dot("QueryRow").Call(jen.Id("ctx"), jen.Lit(b.queries.Select), jen.Id("id")).
			Dot("Scan").Call(b.scanTargets()...),
		b.switchNoRows(
			jen.Return(b.entityType().Values(), jen.False(), jen.Nil()),
			jen.Return(b.entityType().Values(), jen.False(), b.opError("OpRead")),
		),
		jen.Return(jen.Id("entity"), jen.True(), jen.Nil()),
	)
}

func (b *binding) genUpdate(f *jen.File) {
	doc(f, "Update replaces the %s stored under id. It reports false, and writes\nnothing, if there is no such %s.", b.entity.Name, b.entity.Name)
	f.Func().Params(jen.Id(b.cfg.Name)).Id("Update").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("storage").Add(b.storageType()),
		jen.Id("id").Add(b.idType()),
		jen.Id("entity").Add(b.entityType()),
	).Params(jen.Bool(), jen.Error()).BlockFunc(func(grp *jen.Group) {
		if b.queries.Update == "" {
			// No data columns: probe for existence.
			grp.Err().Op(":=").Id("storage").Dot("QueryRow").Call(jen.Id("ctx"), jen.Lit(b.queries.Select), jen.Id("id")).
				Dot("Scan").Call(jen.New(b.rawType()))
			grp.Add(b.switchNoRows(
				jen.Return(jen.False(), jen.Nil()),
				jen.Return(jen.False(), b.opError("OpUpdate")),
			))
			grp.Return(jen.True(), jen.Nil())
			return
		}
		args := append([]jen.Code{jen.Id("ctx"), jen.Lit(b.queries.Update)}, b.fieldArgs()...)
		args = append(args, jen.Id("id"))
		if b.queries.Exists == "" {
			b.rowsAffected(grp, jen.Id("storage").Dot("Exec").Call(args...), "OpUpdate")
			return
		}
		b.affected(grp, jen.Id("storage").Dot("Exec").Call(args...), "OpUpdate")
		grp.If(jen.Id("n").Op(">").Lit(0)).Block(jen.Return(jen.True(), jen.Nil()))
		grp.Comment("Unchanged rows are not affected unless the connection sets clientFoundRows.")
		grp.Err().Op("=").Id("storage").Dot("QueryRow").Call(jen.Id("ctx"), jen.Lit(b.queries.Exists), jen.Id("id")).
			Dot("Scan").Call(jen.New(b.rawType()))
		grp.Add(b.switchNoRows(
			jen.Return(jen.False(), jen.Nil()),
			jen.Return(jen.False(), b.opError("OpUpdate")),
		))
		grp.Return(jen.True(), jen.Nil())
	})
}

func (b *binding) genDelete(f *jen.File) {
	doc(f, "Delete removes the %s stored under id. It reports false if there was\nno such %s.", b.entity.Name, b.entity.Name)
	f.Func().Params(jen.Id(b.cfg.Name)).Id("Delete").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("storage").Add(b.storageType()),
		jen.Id("id").Add(b.idType()),
	).Params(jen.Bool(), jen.Error()).BlockFunc(func(grp *jen.Group) {
		b.rowsAffected(grp, jen.Id("storage").Dot("Exec").Call(jen.Id("ctx"), jen.Lit(b.queries.Delete), jen.Id("id")), "OpDelete")
	})
}

func (b *binding) genDeleteReturning(f *jen.File) {
	doc(f, "DeleteReturning removes the %s stored under id and returns its last\nvalue, or false if there was no such %s.", b.entity.Name, b.entity.Name)
	fn := f.Func().Params(jen.Id(b.cfg.Name)).Id("DeleteReturning").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("storage").Add(b.storageType()),
		jen.Id("id").Add(b.idType()),
	).Params(b.entityType(), jen.Bool(), jen.Error())
	if b.cfg.Dialect != dialect.MySQL {
		fn.Block(
			jen.Var().Id("entity").Add(b.entityType()),
			jen.Err().Op(":=").Id("storage").Dot("QueryRow").Call(jen.Id("ctx"), jen.Lit(b.queries.DeleteReturning), jen.Id("id")).
				Dot("Scan").Call(b.scanTargets()...),
			b.switchNoRows(
				jen.Return(b.entityType().Values(), jen.False(), jen.Nil()),
				jen.Return(b.entityType().Values(), jen.False(), b.opError("OpDelete")),
			),
			jen.Return(jen.Id("entity"), jen.True(), jen.Nil()),
		)
		return
	}
	// MySQL has no RETURNING: lock the row, read it, then delete it.
	fn.Block(
		jen.Var().Defs(
			jen.Id("entity").Add(b.entityType()),
			jen.Id("found").Bool(),
		),
		jen.Err().Op(":=").Id("storage").Dot("InTx").Call(
			jen.Id("ctx"),
			jen.Func().Params(jen.Id("tx").Op("*").Qual(gen.SQLPkg, "Tx")).Error().Block(
				jen.Err().Op(":=").Id("tx").Dot("QueryRow").Call(jen.Id("ctx"), jen.Lit(b.queries.SelectForUpdate), jen.Id("id")).
					Dot("Scan").Call(b.scanTargets()...),
				b.switchNoRows(jen.Return(jen.Nil()), jen.Return(jen.Err())),
				jen.If(
					jen.List(jen.Id("_"), jen.Err()).Op(":=").Id("tx").Dot("Exec").Call(jen.Id("ctx"), jen.Lit(b.queries.Delete), jen.Id("id")),
					jen.Err().Op("!=").Nil(),
				).Block(jen.Return(jen.Err())),
				jen.Id("found").Op("=").True(),
				jen.Return(jen.Nil()),
			),
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Return(b.entityType().Values(), jen.False(), b.opError("OpDelete")),
		),
		jen.Return(jen.Id("entity"), jen.Id("found"), jen.Nil()),
	)
}

// doc emits a blank line followed by the doc comment of the next
// declaration.
func doc(f *jen.File, format string, args ...any) {
	f.Line()
	f.Comment("// " + strings.ReplaceAll(fmt.Sprintf(format, args...), "\n", "\n// "))
}

var multiline = jen.Options{Open: "{", Close: "}", Separator: ",", Multi: true}

func (b *binding) genTable(f *jen.File) {
	doc(f, "Table describes the table of %s.", b.entity.Name)
	f.Func().Params(jen.Id(b.cfg.Name)).Id("Table").Params().Qual(gen.SchemaPkg, "Table").Block(
		jen.Return(jen.Qual(gen.SchemaPkg, "Table").Custom(multiline,
			jen.Id("Name").Op(":").Lit(b.table.Name),
			jen.Id("Columns").Op(":").Index().Qual(gen.SchemaPkg, "Column").CustomFunc(multiline, func(grp *jen.Group) {
				for _, c := range b.table.Columns {
					grp.ValuesFunc(func(grp *jen.Group) {
						grp.Id("Name").Op(":").Lit(c.Name)
						grp.Id("Type").Op(":").Qual(gen.SchemaPkg, c.Type.ConstName())
						if c.Kind == schema.PrimaryKey {
							grp.Id("Kind").Op(":").Qual(gen.SchemaPkg, "PrimaryKey")
						}
						if c.AutoIncrement {
							grp.Id("AutoIncrement").Op(":").True()
						}
					})
				}
			}),
		)),
	)
}

// rowsAffected emits the execution of exec and reports whether it
// affected any row.
func (b *binding) rowsAffected(grp *jen.Group, exec *jen.Statement, op string) {
	b.affected(grp, exec, op)
	grp.Return(jen.Id("n").Op(">").Lit(0), jen.Nil())
}

// affected emits exec and declares n, the number of rows it affected.
func (b *binding) affected(grp *jen.Group, exec *jen.Statement, op string) {
	fail := jen.Return(jen.False(), b.opError(op))
	grp.List(jen.Id("res"), jen.Err()).Op(":=").Add(exec)
	grp.If(jen.Err().Op("!=").Nil()).Block(fail)
	grp.List(jen.Id("n"), jen.Err()).Op(":=").Id("res").Dot("RowsAffected").Call()
	grp.If(jen.Err().Op("!=").Nil()).Block(fail)
}

// switchNoRows emits a switch over err telling a missing row from a
// failure.
func (b *binding) switchNoRows(absent, failed jen.Code) jen.Code {
	return jen.Switch().Block(
		jen.Case(jen.Qual("errors", "Is").Call(jen.Err(), jen.Qual(gen.SQLPkg, "ErrNoRows"))).Block(absent),
		jen.Case(jen.Err().Op("!=").Nil()).Block(failed),
	)
}

func (b *binding) opError(op string) jen.Code {
	return jen.Qual(gen.NoodlePkg, "NewOpError").Call(
		jen.Id("storage").Dot("Name").Call(),
		jen.Qual(gen.NoodlePkg, op),
		jen.Lit(b.entity.Name),
		jen.Err(),
	)
}

// fieldArgs returns the statement arguments of the data columns.
func (b *binding) fieldArgs() []jen.Code {
	args := make([]jen.Code, len(b.entity.Fields))
	for i, f := range b.entity.Fields {
		args[i] = jen.Id("entity").Dot(f.Name)
	}
	return args
}

// scanTargets returns the Scan destinations of the select list.
func (b *binding) scanTargets() []jen.Code {
	if len(b.entity.Fields) == 0 {
		return []jen.Code{jen.New(b.rawType())}
	}
	targets := make([]jen.Code, len(b.entity.Fields))
	for i, f := range b.entity.Fields {
		targets[i] = jen.Op("&").Id("entity").Dot(f.Name)
	}
	return targets
}

func (b *binding) newClientID() jen.Code {
	if b.cfg.RawID.Type == schema.TypeUUID {
		return jen.Qual(gen.UUIDPkg, "New").Call()
	}
	return jen.Qual(gen.UUIDPkg, "NewString").Call()
}

func (b *binding) newID(raw jen.Code) jen.Code {
	return jen.Qual(gen.NoodlePkg, "NewAssocID").Types(b.entityType()).Call(raw)
}

func (b *binding) rawType() *jen.Statement {
	if raw := b.cfg.RawID; raw.PkgPath != "" {
		return jen.Qual(raw.PkgPath, raw.Ident)
	}
	return jen.Id(b.cfg.RawID.Ident)
}

// entityType is the entity type with the raw id type parameter
// substituted.
func (b *binding) entityType() *jen.Statement {
	if !b.entity.Generic() {
		return jen.Id(b.entity.Name)
	}
	return jen.Id(b.entity.Name).Types(b.rawType())
}

func (b *binding) entityName() string {
	if !b.entity.Generic() {
		return b.entity.Name
	}
	return b.entity.Name + "[" + b.cfg.RawID.String() + "]"
}

func (b *binding) storageType() *jen.Statement {
	return jen.Op("*").Qual(gen.SQLPkg, "Backing").Types(jen.Qual(gen.SQLPkg, markers[b.cfg.Dialect]), b.rawType())
}

func (b *binding) idType() *jen.Statement {
	return jen.Qual(gen.NoodlePkg, "AssocID").Types(b.entityType(), b.rawType())
}
