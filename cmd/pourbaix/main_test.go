package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karelplanken/pourbaix/internal/cli"
	"github.com/karelplanken/pourbaix/internal/entrystore"
	"github.com/karelplanken/pourbaix/internal/pourbaix"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should see `shouldExit=true` and return a nil error.
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should propagate the error from cli.Parse.
	err := run(out, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_EmptySelection(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, nil)

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.Code)
	require.Contains(t, exitErr.Message, "at least one element symbol")
}

func TestRun_UnknownElement(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"Blorp"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}

func TestRun_MissingJobPath(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-f", filepath.Join(t.TempDir(), "missing.hcl")})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load job")
}

func TestRun_RendersFromWarmCache(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// With the cache pre-filled, a full run needs no credentials and no
	// network.
	dir := t.TempDir()
	store := entrystore.New(filepath.Join(dir, "entries"))
	entries := []pourbaix.Entry{
		{
			EntryID:     "mp-13",
			Name:        "Fe(s)",
			Composition: map[string]float64{"Fe": 1},
			Energy:      0,
			Phase:       pourbaix.PhaseSolid,
		},
		{
			EntryID:     "mp-19770",
			Name:        "Fe2O3(s)",
			Composition: map[string]float64{"Fe": 2, "O": 3},
			Energy:      -7.9,
			Phase:       pourbaix.PhaseSolid,
		},
	}
	require.NoError(t, store.Save("Fe", entries))

	args := []string{
		"--entries-dir", filepath.Join(dir, "entries"),
		"--diagrams-dir", filepath.Join(dir, "diagrams"),
		"Fe",
	}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "diagrams", "Fe.png"))
}
