package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/skymodel/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_ShowsModel(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	model := `
vela (extended source):
  spatial_shape:
    disk_on_sphere:
      lon0: {value: 128.8}
      lat0: {value: -45.2}
      radius: {value: 1}
  spectrum:
    main:
      constant: {k: {value: 1}}
`
	filePath := filepath.Join(t.TempDir(), "vela.yaml")
	require.NoError(t, os.WriteFile(filePath, []byte(model), 0600), "failed to set up test file")
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"show", filePath})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "vela (extended source)")
	require.Contains(t, out.String(), "  spatial_shape (disk_on_sphere)")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error for help")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"--this-is-not-a-valid-flag"}

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, cli.CodeUsage, exitErr.Code)
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_SyntaxErrorExitCode(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	filePath := filepath.Join(t.TempDir(), "main.yaml")
	require.NoError(t, os.WriteFile(filePath, []byte("crab (point source):\n  spectrum:\n    [broken\n"), 0600))

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"show", filePath})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr), "got %v", err)
	require.Equal(t, cli.CodeFailure, exitErr.Code)
}
