package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/simforge/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRun_Success(t *testing.T) {
	t.Parallel()

	path := writeInput(t, "input.hcl", `
Mesh {
  dim = 1
  nx  = 8
}
Variables "u" {}
Kernels "diff" {
  type     = "Diffusion"
  variable = "u"
}
Outputs "console" {}
Executioner {
  type = "Steady"
}
`)
	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-i", path, "--log-level", "warn", "Mesh/nx=16"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[Executioner] finished after 1 steps: time = 1\n")
}

func TestRun_InputError(t *testing.T) {
	t.Parallel()

	// Missing closing brace.
	path := writeInput(t, "input.hcl", "Mesh {\n  dim = 1\n")
	err := run(context.Background(), &bytes.Buffer{}, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-h"})
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_DumpSyntax(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out, []string{"--dump-syntax", "--log-level", "error"}))
	assert.Contains(t, out.String(), "# Syntax\n")
	assert.Contains(t, out.String(), "[GaussianProcess]\n")
}
