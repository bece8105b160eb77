package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowcouch/storage-noodle/compiler/gen"
	"github.com/glowcouch/storage-noodle/compiler/load"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "noodlegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseOptionsDefaults(t *testing.T) {
	o, err := parseOptions(nil, map[string]string{}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, &Options{
		Header:   gen.DefaultHeader,
		Suffix:   load.DefaultSuffix,
		Packages: []string{"."},
	}, o)
	assert.Nil(t, o.BuildFlags())
}

func TestParseOptionsPrecedence(t *testing.T) {
	path := writeConfig(t, `
header: Code generated by the bakery. DO NOT EDIT.
suffix: _bakery.go
workers: 2
tags: [sqlite]
packages: [./internal/bakery]
`)

	t.Run("file", func(t *testing.T) {
		o, err := parseOptions([]string{"--config", path}, map[string]string{}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "Code generated by the bakery. DO NOT EDIT.", o.Header)
		assert.Equal(t, "_bakery.go", o.Suffix)
		assert.Equal(t, 2, o.Workers)
		assert.Equal(t, []string{"-tags=sqlite"}, o.BuildFlags())
		assert.Equal(t, []string{"./internal/bakery"}, o.Packages)
		assert.Equal(t, path, o.Config)
	})

	t.Run("environment over file", func(t *testing.T) {
		o, err := parseOptions(nil, map[string]string{
			"NOODLEGEN_CONFIG":  path,
			"NOODLEGEN_WORKERS": "4",
			"NOODLEGEN_TAGS":    "sqlite,integration",
			"NOODLEGEN_VERBOSE": "true",
		}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "_bakery.go", o.Suffix)
		assert.Equal(t, 4, o.Workers)
		assert.Equal(t, []string{"-tags=sqlite,integration"}, o.BuildFlags())
		assert.True(t, o.Verbose)
	})

	t.Run("flags over environment", func(t *testing.T) {
		o, err := parseOptions(
			[]string{"-c", path, "--workers=8", "--suffix", "_gen.go", "-w", "./a", "./b"},
			map[string]string{"NOODLEGEN_WORKERS": "4", "NOODLEGEN_SUFFIX": "_env.go"},
			&bytes.Buffer{},
		)
		require.NoError(t, err)
		assert.Equal(t, 8, o.Workers)
		assert.Equal(t, "_gen.go", o.Suffix)
		assert.True(t, o.Watch)
		assert.Equal(t, []string{"./a", "./b"}, o.Packages)
		assert.Equal(t, "Code generated by the bakery. DO NOT EDIT.", o.Header)
	})
}

func TestParseOptionsErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		environ map[string]string
		want    string
	}{
		{"unknown flag", []string{"--oven"}, nil, "unknown flag: --oven"},
		{"missing file", []string{"-c", "/nonexistent/noodlegen.yaml"}, nil, "read config"},
		{"unknown key", []string{"-c", writeConfig(t, "flavour: chocolate\n")}, nil, "field flavour not found"},
		{"bad environment", nil, map[string]string{"NOODLEGEN_WORKERS": "many"}, "parse environment"},
		{"negative workers", []string{"--workers=-1"}, nil, "invalid number of workers -1"},
		{"no packages", []string{"-c", writeConfig(t, "packages: []\n")}, nil, "no packages to generate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			environ := tt.environ
			if environ == nil {
				environ = map[string]string{}
			}
			_, err := parseOptions(tt.args, environ, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseOptionsHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := parseOptions([]string{"--help"}, map[string]string{}, &out)
	assert.ErrorIs(t, err, pflag.ErrHelp)
	assert.Contains(t, out.String(), "usage: noodlegen [flags] [packages]")
	assert.Contains(t, out.String(), "--watch")
}

func TestGenOptions(t *testing.T) {
	o := &Options{Header: "h", Suffix: "_x.go", Workers: 3, Tags: []string{"a", "b"}}
	cfg := &gen.Config{}
	require.NoError(t, cfg.ApplyAll(o.GenOptions()...))
	assert.Equal(t, "h", cfg.Header)
	assert.Equal(t, "_x.go", cfg.Suffix)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, []string{"-tags=a,b"}, cfg.BuildFlags)
}
