package load

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/glowcouch/storage-noodle/dialect"
	"github.com/glowcouch/storage-noodle/dialect/sql/schema"
)

const (
	noodlePkg = "github.com/glowcouch/storage-noodle"
	uuidPkg   = "github.com/google/uuid"
)

// DefaultSuffix is the file name suffix of generated files.
const DefaultSuffix = "_noodle.go"

// Config configures package loading.
type Config struct {
	// Dir is the directory patterns are resolved in. Defaults to the
	// current directory.
	Dir string
	// BuildFlags are passed to the build system, e.g. "-tags=integration".
	BuildFlags []string
	// Suffix is the file name suffix of generated files. Type errors in
	// such files are ignored, so a stale generated file does not prevent
	// regeneration. Defaults to DefaultSuffix.
	Suffix string
}

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
	packages.NeedTypes | packages.NeedTypesInfo

// Load loads the packages matching patterns and returns those declaring at
// least one entity. Configuration errors of all packages are collected and
// returned together as Diagnostics.
func Load(cfg *Config, patterns ...string) ([]*Package, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	suffix := cfg.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	pkgs, err := packages.Load(&packages.Config{
		Mode:       loadMode,
		Dir:        cfg.Dir,
		BuildFlags: cfg.BuildFlags,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError && strings.Contains(e.Pos, suffix+":") {
				continue
			}
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("load: %w", errors.Join(errs...))
	}
	var (
		out []*Package
		d   diagnoser
	)
	for _, pkg := range pkgs {
		d.fset = pkg.Fset
		p := &Package{Name: pkg.Name, PkgPath: pkg.PkgPath}
		if len(pkg.GoFiles) > 0 {
			p.Dir = filepath.Dir(pkg.GoFiles[0])
		}
		l := &loader{pkg: pkg, d: &d}
		for _, file := range pkg.Syntax {
			p.Entities = append(p.Entities, l.file(file)...)
		}
		l.checkNames(p.Entities)
		if len(p.Entities) > 0 {
			out = append(out, p)
		}
	}
	if err := d.diags.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// loader extracts the entities of one package.
type loader struct {
	pkg *packages.Package
	d   *diagnoser
}

func (l *loader) file(f *ast.File) []*Entity {
	var entities []*Entity
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if !gen.Lparen.IsValid() {
				doc = gen.Doc
			}
			ds := directives(doc)
			if len(ds) == 0 {
				continue
			}
			if e := l.entity(ts, ds); e != nil {
				entities = append(entities, e)
			}
		}
	}
	return entities
}

// entity builds the entity declared by ts. It returns nil if the
// declaration has no valid configuration.
func (l *loader) entity(ts *ast.TypeSpec, ds []directive) *Entity {
	e := &Entity{Name: ts.Name.Name, Pos: l.d.fset.Position(ts.Name.Pos())}
	var rawIDPos token.Pos
	for _, dir := range ds {
		switch dir.kind {
		case kindSQL:
			if cfg := parseSQL(l.d, dir); cfg != nil {
				e.Configs = append(e.Configs, cfg)
			}
		case kindRawID:
			if e.RawIDParam != "" {
				l.d.errorf(dir.pos, "duplicate //noodle:rawid directive")
				continue
			}
			if !token.IsIdentifier(dir.args) {
				l.d.errorf(dir.pos, "//noodle:rawid wants a type parameter name, got %q", dir.args)
				continue
			}
			e.RawIDParam, rawIDPos = dir.args, dir.pos
		default:
			l.d.errorf(dir.pos, "unknown directive //noodle:%s", dir.kind)
		}
	}
	obj, ok := l.pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return nil
	}
	named, ok := types.Unalias(obj.Type()).(*types.Named)
	if !ok {
		l.d.errorf(ts.Name.Pos(), "%s is an alias; declare the entity as a defined struct type", e.Name)
		return nil
	}
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		l.d.errorf(ts.Name.Pos(), "%s is not a struct type", e.Name)
		return nil
	}
	l.typeParams(e, named, rawIDPos)
	for i := range st.NumFields() {
		if f := l.field(e, st.Field(i), i); f != nil {
			e.Fields = append(e.Fields, f)
		}
	}
	if len(e.Configs) == 0 {
		return nil
	}
	l.checkReserved(e)
	return e
}

// checkReserved reports entity and field names that a configured dialect
// does not accept as unquoted table or column names.
func (l *loader) checkReserved(e *Entity) {
	check := func(kind, name string, pos token.Position) {
		var in []string
		for _, cfg := range e.Configs {
			if dialect.Reserved(cfg.Dialect, name) && !slices.Contains(in, cfg.Dialect) {
				in = append(in, cfg.Dialect)
			}
		}
		if len(in) > 0 {
			l.d.errorAt(pos, "%s name %s is a reserved word in %s", kind, name, strings.Join(in, ", "))
		}
	}
	check("table", e.Name, e.Pos)
	for _, f := range e.Fields {
		check("column", f.Name, f.Pos)
	}
}

// typeParams records the type parameters of e and checks that the only
// one is the raw id parameter, and that every configured raw id type
// satisfies its constraint.
func (l *loader) typeParams(e *Entity, named *types.Named, rawIDPos token.Pos) {
	tparams := named.TypeParams()
	var rawParam *types.TypeParam
	for i := range tparams.Len() {
		tp := tparams.At(i)
		e.TypeParams = append(e.TypeParams, tp.Obj().Name())
		if tp.Obj().Name() == e.RawIDParam {
			rawParam = tp
			continue
		}
		if e.RawIDParam == "" {
			l.d.errorf(tp.Obj().Pos(), "generic type %s needs a //noodle:rawid directive naming its raw id type parameter", e.Name)
			continue
		}
		l.d.errorf(tp.Obj().Pos(), "type parameter %s of %s can not be bound; only the raw id parameter %s is substituted", tp.Obj().Name(), e.Name, e.RawIDParam)
	}
	if e.RawIDParam == "" {
		return
	}
	if rawParam == nil {
		l.d.errorf(rawIDPos, "%s has no type parameter %s", e.Name, e.RawIDParam)
		return
	}
	iface, ok := rawParam.Constraint().Underlying().(*types.Interface)
	if !ok {
		return
	}
	for _, cfg := range e.Configs {
		t := l.rawIDType(cfg.RawID)
		if t != nil && !types.Satisfies(t, iface) {
			l.d.errorAt(cfg.Pos, "raw id type %s does not satisfy the constraint %s of %s", cfg.RawID, rawParam.Constraint(), e.RawIDParam)
		}
	}
}

// rawIDType returns the Go type of r, or nil if it is not known to the
// loaded package.
func (l *loader) rawIDType(r RawID) types.Type {
	if r.PkgPath == "" {
		return types.Universe.Lookup(r.Ident).Type()
	}
	for _, imp := range l.pkg.Types.Imports() {
		if imp.Path() == r.PkgPath {
			if obj := imp.Scope().Lookup(r.Ident); obj != nil {
				return obj.Type()
			}
		}
	}
	return nil
}

func (l *loader) field(e *Entity, v *types.Var, index int) *Field {
	f := &Field{Name: v.Name(), Index: index, Pos: l.d.fset.Position(v.Pos())}
	if f.Name == "_" {
		f.Name = fmt.Sprintf("_%d", index)
		l.d.errorAt(f.Pos, "blank field %s of %s can not be bound to a column", f.Name, e.Name)
		return nil
	}
	if strings.EqualFold(f.Name, schema.IDColumn) {
		l.d.errorAt(f.Pos, "field %s of %s collides with the primary key column %s", f.Name, e.Name, schema.IDColumn)
		return nil
	}
	typ, rawID, ref, err := classify(v.Type(), e.RawIDParam)
	if err != nil {
		l.d.errorAt(f.Pos, "field %s of %s: %v", f.Name, e.Name, err)
		return nil
	}
	f.Type, f.RawID, f.Ref = typ, rawID, ref
	return f
}

// checkNames resolves default binding names and reports names used twice
// in one package.
func (l *loader) checkNames(entities []*Entity) {
	used := make(map[string]string)
	for _, e := range entities {
		for _, cfg := range e.Configs {
			if !cfg.named {
				cfg.Name = e.Name + "CRUD"
				if len(e.Configs) > 1 {
					cfg.Name = e.Name + dialectTitles[cfg.Dialect] + "CRUD"
				}
			}
			if owner, ok := used[cfg.Name]; ok {
				l.d.errorAt(cfg.Pos, "binding name %s is already used by %s; set name=", cfg.Name, owner)
				continue
			}
			used[cfg.Name] = e.Name
		}
	}
}
