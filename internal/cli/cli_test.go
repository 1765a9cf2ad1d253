package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, exit, err := Parse([]string{
		"-i", "input.hcl",
		"--log-level", "DEBUG",
		"--log-format", "json",
		"--unused", "error",
		"--error-override",
		"--mesh-only",
		"Mesh/nx=20",
		"Executioner/num_steps=5",
	}, out)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "input.hcl", cfg.InputPath)
	assert.Equal(t, []string{"Mesh/nx=20", "Executioner/num_steps=5"}, cfg.Overrides)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "error", cfg.Unused)
	assert.True(t, cfg.ErrorOverride)
	assert.True(t, cfg.MeshOnly)
	assert.False(t, cfg.DumpSyntax)
	assert.Empty(t, out.String())
}

func TestParse_PositionalInput(t *testing.T) {
	cfg, exit, err := Parse([]string{"Mesh/dim=3", "input.yaml"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, "input.yaml", cfg.InputPath)
	assert.Equal(t, []string{"Mesh/dim=3"}, cfg.Overrides)
	assert.Equal(t, "warn", cfg.Unused)
}

func TestParse_DumpSyntaxNeedsNoInput(t *testing.T) {
	cfg, exit, err := Parse([]string{"--dump-syntax", "--sort-alpha"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	assert.True(t, cfg.DumpSyntax)
	assert.True(t, cfg.SortAlpha)
}

func TestParse_ShouldExit(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"--help"}, {}} {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse(args, out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_UsageErrors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown flag", []string{"--bogus"}, "unknown flag: --bogus"},
		{"bad log level", []string{"-i", "in.hcl", "--log-level", "loud"}, `invalid log level "loud"`},
		{"bad policy", []string{"-i", "in.hcl", "--unused", "sometimes"}, "invalid policy mode"},
		{"two inputs", []string{"a.hcl", "b.hcl"}, `unexpected argument "b.hcl"`},
		{"bad override", []string{"-i", "in.hcl", "nx=3"}, `invalid override "nx=3"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, exit, err := Parse(tc.args, &bytes.Buffer{})
			assert.False(t, exit)
			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr), "got %v", err)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantErr)
		})
	}
}
