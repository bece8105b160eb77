package load

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/glowcouch/storage-noodle/dialect"
)

const directivePrefix = "//noodle:"

// Directive kinds.
const (
	kindSQL   = "sql"
	kindRawID = "rawid"
)

// directive is one //noodle: comment line.
type directive struct {
	pos  token.Pos
	kind string
	args string
}

// directives returns the //noodle: lines of the given comment groups.
func directives(groups ...*ast.CommentGroup) []directive {
	var ds []directive
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			text, ok := strings.CutPrefix(c.Text, directivePrefix)
			if !ok {
				continue
			}
			kind, args, _ := strings.Cut(text, " ")
			ds = append(ds, directive{pos: c.Slash, kind: strings.TrimSpace(kind), args: strings.TrimSpace(args)})
		}
	}
	return ds
}

// parseSQL parses the arguments of a //noodle:sql directive. Problems are
// reported to d and a nil config is returned if any was found.
func parseSQL(d *diagnoser, dir directive) *SQLConfig {
	cfg := &SQLConfig{Pos: d.fset.Position(dir.pos), Derive: DeriveAll}
	before := len(d.diags)
	seen := make(map[string]bool)
	for _, arg := range strings.Fields(dir.args) {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || value == "" {
			d.errorf(dir.pos, "malformed argument %q: want key=value", arg)
			continue
		}
		if seen[key] {
			d.errorf(dir.pos, "duplicate argument %q", key)
			continue
		}
		seen[key] = true
		switch key {
		case "dialect":
			if !dialect.Valid(value) {
				d.errorf(dir.pos, "unknown dialect %q: want one of %s", value, strings.Join(dialect.Names, ", "))
				continue
			}
			cfg.Dialect = value
		case "rawid":
			r, ok := rawIDs[value]
			if !ok {
				d.errorf(dir.pos, "unsupported raw id type %q: want one of int, int32, int64, uint, uint32, uint64, string, uuid", value)
				continue
			}
			cfg.RawID = r
		case "name":
			if !token.IsIdentifier(value) {
				d.errorf(dir.pos, "binding name %q is not a Go identifier", value)
				continue
			}
			cfg.Name, cfg.named = value, true
		case "derive":
			derive, bad := parseDerive(value)
			if bad != "" {
				d.errorf(dir.pos, "unknown capability %q in derive: want create, read, update, delete or table", bad)
				continue
			}
			cfg.Derive = derive
		default:
			d.errorf(dir.pos, "unknown argument %q", key)
		}
	}
	if !seen["dialect"] {
		d.errorf(dir.pos, "missing dialect argument")
	}
	if !seen["rawid"] {
		d.errorf(dir.pos, "missing rawid argument")
	}
	if len(d.diags) > before {
		return nil
	}
	return cfg
}

// parseDerive parses a comma separated capability list. It returns the
// first unknown name, if any.
func parseDerive(s string) (Derive, string) {
	var derive Derive
	for _, name := range strings.Split(s, ",") {
		found := false
		for _, n := range deriveNames {
			if n.name == name {
				derive |= n.d
				found = true
				break
			}
		}
		if !found {
			return 0, name
		}
	}
	return derive, ""
}
