package gen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowcouch/storage-noodle/compiler/load"
)

var errBackend = errors.New("backend failed")

// fakeBackend emits one empty struct per configuration.
type fakeBackend struct {
	fail string
}

func (*fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) GenEntity(f *jen.File, e *load.Entity) error {
	if e.Name == b.fail {
		return errBackend
	}
	for _, cfg := range e.Configs {
		f.Commentf("%s binds %s.", cfg.Name, e.Name)
		f.Type().Id(cfg.Name).Struct()
		f.Var().Id("_").Op("=").Qual(NoodlePkg, "NewAssocID").Types(jen.Id(e.Name)).Call(jen.Lit(1))
	}
	return nil
}

func newTestGenerator(t *testing.T, b Backend, opts ...Option) *Generator {
	t.Helper()
	opts = append([]Option{
		WithBackend(b),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithWorkers(2),
	}, opts...)
	g, err := NewGenerator(MustNewConfig(opts...))
	require.NoError(t, err)
	return g
}

func bakeryPackage(dir string) *load.Package {
	return &load.Package{
		Name:    "bakery",
		PkgPath: "example.com/bakery",
		Dir:     dir,
		Entities: []*load.Entity{
			{Name: "Recipe", Configs: []*load.SQLConfig{{Name: "RecipeCRUD"}}},
			{Name: "BakeryTicket", Configs: []*load.SQLConfig{{Name: "TicketSQLiteCRUD"}, {Name: "TicketPostgresCRUD"}}},
		},
	}
}

func TestNewGenerator(t *testing.T) {
	_, err := NewGenerator(nil)
	assert.True(t, IsConfigError(err))

	_, err = NewGenerator(MustNewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WithBackend")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tests := []struct {
		name  string
		cfg   *Config
		field string
	}{
		{"zero workers", &Config{Backend: &fakeBackend{}, Header: DefaultHeader, Suffix: load.DefaultSuffix, Logger: logger}, "Workers"},
		{"negative workers", &Config{Backend: &fakeBackend{}, Workers: -1, Logger: logger}, "Workers"},
		{"nil logger", &Config{Backend: &fakeBackend{}, Header: DefaultHeader, Suffix: load.DefaultSuffix, Workers: 1}, "Logger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator(tt.cfg)
			assert.Nil(t, g)
			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.field, cerr.Option)
		})
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	g := newTestGenerator(t, &fakeBackend{})

	report, err := g.Generate(context.Background(), []*load.Package{bakeryPackage(dir)})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "bakery_ticket_noodle.go"),
		filepath.Join(dir, "recipe_noodle.go"),
	}, report.Files)
	assert.Equal(t, 2, report.Written)
	assert.Equal(t, 3, report.Bindings)
	assert.Positive(t, report.Bytes)

	code, err := os.ReadFile(filepath.Join(dir, "bakery_ticket_noodle.go"))
	require.NoError(t, err)
	for _, want := range []string{
		"// Code generated by noodlegen. DO NOT EDIT.",
		"package bakery",
		`noodle "github.com/glowcouch/storage-noodle"`,
		"type TicketSQLiteCRUD struct{}",
		"type TicketPostgresCRUD struct{}",
		"noodle.NewAssocID[BakeryTicket](1)",
	} {
		assert.Contains(t, string(code), want)
	}

	t.Run("unchanged files are not rewritten", func(t *testing.T) {
		report, err := g.Generate(context.Background(), []*load.Package{bakeryPackage(dir)})
		require.NoError(t, err)
		assert.Len(t, report.Files, 2)
		assert.Zero(t, report.Written)
	})
}

func TestGenerateHeader(t *testing.T) {
	dir := t.TempDir()
	g := newTestGenerator(t, &fakeBackend{}, WithHeader("Code generated by bakery. DO NOT EDIT."), WithSuffix(".gen.go"))

	_, err := g.Generate(context.Background(), []*load.Package{bakeryPackage(dir)})
	require.NoError(t, err)
	code, err := os.ReadFile(filepath.Join(dir, "recipe.gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(code), "// Code generated by bakery. DO NOT EDIT.")
}

func TestGenerateErrors(t *testing.T) {
	t.Run("backend", func(t *testing.T) {
		dir := t.TempDir()
		g := newTestGenerator(t, &fakeBackend{fail: "Recipe"})

		_, err := g.Generate(context.Background(), []*load.Package{bakeryPackage(dir)})
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
		assert.ErrorIs(t, err, errBackend)
		assert.Contains(t, err.Error(), "for Recipe")
		assert.NoFileExists(t, filepath.Join(dir, "recipe_noodle.go"))
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		g := newTestGenerator(t, &fakeBackend{})

		_, err := g.Generate(ctx, []*load.Package{bakeryPackage(t.TempDir())})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("missing directory", func(t *testing.T) {
		g := newTestGenerator(t, &fakeBackend{})

		_, err := g.Generate(context.Background(), []*load.Package{bakeryPackage(filepath.Join(t.TempDir(), "gone"))})
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
	})
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Cookie", "cookie_noodle.go"},
		{"BakeryTicket", "bakery_ticket_noodle.go"},
		{"Oven", "oven_noodle.go"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.name, load.DefaultSuffix))
		})
	}
}
