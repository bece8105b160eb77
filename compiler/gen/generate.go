package gen

import (
	"context"
	"path/filepath"
	"slices"
	"time"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/sync/errgroup"

	"github.com/glowcouch/storage-noodle/compiler/load"
)

// Import paths and names of the packages generated code refers to.
const (
	NoodlePkg = "github.com/glowcouch/storage-noodle"
	SQLPkg    = "github.com/glowcouch/storage-noodle/dialect/sql"
	SchemaPkg = "github.com/glowcouch/storage-noodle/dialect/sql/schema"
	UUIDPkg   = "github.com/google/uuid"
)

// Generator writes the bindings of loaded entities next to their
// declarations, one file per entity.
type Generator struct {
	cfg *Config
}

// NewGenerator returns a Generator for cfg.
func NewGenerator(cfg *Config) (*Generator, error) {
	if cfg == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	if cfg.Backend == nil {
		return nil, NewConfigError("Backend", nil, "no backend set: use WithBackend")
	}
	if cfg.Workers < 1 {
		return nil, NewConfigError("Workers", cfg.Workers, "at least one worker is required: use WithWorkers")
	}
	if cfg.Logger == nil {
		return nil, NewConfigError("Logger", nil, "no logger set: use WithLogger")
	}
	return &Generator{cfg: cfg}, nil
}

// Run loads the packages matching patterns and generates their bindings.
func (g *Generator) Run(ctx context.Context, patterns ...string) (*Report, error) {
	pkgs, err := load.Load(&load.Config{
		BuildFlags: g.cfg.BuildFlags,
		Suffix:     g.cfg.Suffix,
	}, patterns...)
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx, pkgs)
}

// Generate writes the bindings of every entity of pkgs. Files are rendered
// and written in parallel.
func (g *Generator) Generate(ctx context.Context, pkgs []*load.Package) (*Report, error) {
	start := time.Now()
	report := &Report{}
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.cfg.Workers)
	for _, pkg := range pkgs {
		for _, e := range pkg.Entities {
			errg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return g.generateEntity(ctx, pkg, e, report)
			})
		}
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	slices.Sort(report.Files)
	g.cfg.Logger.InfoContext(ctx, "generation finished",
		"backend", g.cfg.Backend.Name(),
		"files", len(report.Files),
		"written", report.Written,
		"bindings", report.Bindings,
		"duration", time.Since(start),
	)
	return report, nil
}

func (g *Generator) generateEntity(ctx context.Context, pkg *load.Package, e *load.Entity, report *Report) error {
	path := filepath.Join(pkg.Dir, FileName(e.Name, g.cfg.Suffix))
	f, err := g.Render(pkg, e)
	if err != nil {
		return NewGenerationError(e.Name, path, "", err)
	}
	written, size, err := writeFile(f, path)
	if err != nil {
		return NewGenerationError(e.Name, path, "", err)
	}
	report.add(path, len(e.Configs), written, size)
	g.cfg.Logger.DebugContext(ctx, "file generated", "entity", e.Name, "path", path, "written", written, "bytes", size)
	return nil
}

// Render returns the file holding the bindings of e.
func (g *Generator) Render(pkg *load.Package, e *load.Entity) (*jen.File, error) {
	f := jen.NewFilePathName(pkg.PkgPath, pkg.Name)
	f.HeaderComment(g.cfg.Header)
	f.ImportAlias(NoodlePkg, "noodle")
	f.ImportName(SQLPkg, "sql")
	f.ImportName(SchemaPkg, "schema")
	f.ImportName(UUIDPkg, "uuid")
	if err := g.cfg.Backend.GenEntity(f, e); err != nil {
		return nil, err
	}
	return f, nil
}

// FileName returns the name of the generated file of the entity name.
func FileName(name, suffix string) string {
	return inflect.Underscore(name) + suffix
}
