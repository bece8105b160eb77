package load

import (
	"cmp"
	"fmt"
	"go/token"
	"slices"
	"strings"
)

// Diagnostic is a configuration error at a source position.
type Diagnostic struct {
	Pos token.Position
	Msg string
}

// Error implements the error interface. The format is the one of the Go
// toolchain: file:line:col: message.
func (d Diagnostic) Error() string {
	if !d.Pos.IsValid() {
		return d.Msg
	}
	return d.Pos.String() + ": " + d.Msg
}

// Diagnostics is a list of configuration errors. It implements error.
type Diagnostics []Diagnostic

// Error returns one diagnostic per line.
func (ds Diagnostics) Error() string {
	var b strings.Builder
	for i, d := range ds {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.Error())
	}
	return b.String()
}

// Err returns ds sorted by position, or nil if ds is empty.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	ds.Sort()
	return ds
}

// Sort sorts ds by file, line and column.
func (ds Diagnostics) Sort() {
	slices.SortStableFunc(ds, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Pos.Filename, b.Pos.Filename),
			cmp.Compare(a.Pos.Line, b.Pos.Line),
			cmp.Compare(a.Pos.Column, b.Pos.Column),
		)
	})
}

// diagnoser collects diagnostics while loading.
type diagnoser struct {
	fset  *token.FileSet
	diags Diagnostics
}

func (d *diagnoser) errorf(pos token.Pos, format string, args ...any) {
	d.errorAt(d.fset.Position(pos), format, args...)
}

func (d *diagnoser) errorAt(pos token.Position, format string, args ...any) {
	d.diags = append(d.diags, Diagnostic{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}
