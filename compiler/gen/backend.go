package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/glowcouch/storage-noodle/compiler/load"
)

// Backend emits persistence bindings. A Generator creates one file per
// entity and hands it to the backend, which adds the bindings of every
// configuration of the entity.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string
	// GenEntity adds the bindings of e to f.
	GenEntity(f *jen.File, e *load.Entity) error
}
