package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karelplanken/pourbaix/internal/app"
)

func TestParse_Elements(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse([]string{"Fe", "Cu"}, out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, []string{"Fe", "Cu"}, cfg.Elements)
	assert.Empty(t, cfg.JobPath)
	assert.Equal(t, app.DefaultEntriesDir, cfg.EntriesDir)
	assert.Equal(t, app.DefaultDiagramsDir, cfg.DiagramsDir)
	assert.Equal(t, app.DefaultConcentration, cfg.Concentration)
	assert.False(t, cfg.NoFilterSolids)
	assert.False(t, cfg.Show)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_Flags(t *testing.T) {
	out := &bytes.Buffer{}
	args := []string{
		"--concentration", "1e-6",
		"--show",
		"--no-filter-solids",
		"--entries-dir", "my_entries",
		"--diagrams-dir", "my_diagrams",
		"--log-format", "json",
		"--log-level", "debug",
		"Fe",
	}

	cfg, shouldExit, err := Parse(args, out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, []string{"Fe"}, cfg.Elements)
	assert.Equal(t, 1e-6, cfg.Concentration)
	assert.True(t, cfg.Show)
	assert.True(t, cfg.NoFilterSolids)
	assert.Equal(t, "my_entries", cfg.EntriesDir)
	assert.Equal(t, "my_diagrams", cfg.DiagramsDir)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_JobPath(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse([]string{"-f", "jobs/"}, out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Empty(t, cfg.Elements)
	assert.Equal(t, "jobs/", cfg.JobPath)

	cfg, _, err = Parse([]string{"--job", "diagrams.hcl"}, out)
	require.NoError(t, err)
	assert.Equal(t, "diagrams.hcl", cfg.JobPath)
}

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_EmptySelection(t *testing.T) {
	out := &bytes.Buffer{}

	_, _, err := Parse(nil, out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, exitErr.Message, "at least one element symbol")
	assert.Contains(t, out.String(), "Usage:", "usage is printed alongside the error")
}

func TestParse_UnknownElement(t *testing.T) {
	out := &bytes.Buffer{}

	_, _, err := Parse([]string{"Xx"}, out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, `unknown element symbol "Xx"`)
}

func TestParse_UnknownFlag(t *testing.T) {
	out := &bytes.Buffer{}

	_, _, err := Parse([]string{"--this-is-not-a-valid-flag"}, out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_InvalidLogSettings(t *testing.T) {
	out := &bytes.Buffer{}

	_, _, err := Parse([]string{"--log-level", "loud", "Fe"}, out)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)

	_, _, err = Parse([]string{"--log-format", "xml", "Fe"}, out)
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_ElementsAndJobAreExclusive(t *testing.T) {
	out := &bytes.Buffer{}

	_, _, err := Parse([]string{"-f", "job.hcl", "Fe"}, out)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "mutually exclusive")
}
