package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"help", []string{"-h"}, exitSuccess, "usage: noodlegen"},
		{"bad flag", []string{"--oven"}, exitUsage, "noodlegen: unknown flag: --oven"},
		{"empty header", []string{"--header="}, exitUsage, "header cannot be empty"},
		{"test suffix", []string{"--suffix", "_noodle_test.go", "--workers", "0"}, exitUsage, "suffix must end in .go"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			code := run(context.Background(), tt.args, map[string]string{}, &stderr)
			assert.Equal(t, tt.code, code)
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}
