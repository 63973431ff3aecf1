package entrystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karelplanken/pourbaix/internal/pourbaix"
)

func sampleEntries() []pourbaix.Entry {
	return []pourbaix.Entry{
		{
			EntryID:     "mp-13",
			Name:        "Fe(s)",
			Composition: map[string]float64{"Fe": 1},
			Energy:      0,
			Phase:       pourbaix.PhaseSolid,
		},
		{
			EntryID:       "ion-0",
			Name:          "Fe[2+]",
			Composition:   map[string]float64{"Fe": 1},
			Energy:        -0.4,
			Charge:        2,
			Phase:         pourbaix.PhaseIon,
			Concentration: 1e-6,
		},
	}
}

func TestStorePath(t *testing.T) {
	s := New("pourbaix_entries")
	assert.Equal(t, filepath.Join("pourbaix_entries", "Fe.json"), s.Path("Fe"))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	want := sampleEntries()

	require.NoError(t, s.Save("Fe", want))

	got, err := s.Load("Fe")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "entries")
	s := New(dir)

	require.NoError(t, s.Save("Cu", sampleEntries()))

	exists, err := s.Exists("Cu")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSaveOverwrites(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Save("Fe", sampleEntries()))

	replacement := sampleEntries()[:1]
	require.NoError(t, s.Save("Fe", replacement))

	got, err := s.Load("Fe")
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}

func TestExists(t *testing.T) {
	s := New(t.TempDir())

	exists, err := s.Exists("Fe")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Save("Fe", sampleEntries()))

	exists, err = s.Exists("Fe")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLoadMissingFile(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.Load("Fe")
	require.ErrorContains(t, err, "failed to read cache file for Fe")
}

func TestLoadCorruptFile(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, os.MkdirAll(s.Dir(), 0755))
	require.NoError(t, os.WriteFile(s.Path("Fe"), []byte("not json"), 0644))

	_, err := s.Load("Fe")
	require.ErrorContains(t, err, "failed to decode cache file for Fe")
}
