package cache

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karelplanken/pourbaix/internal/entrystore"
	"github.com/karelplanken/pourbaix/internal/pourbaix"
)

// countingFetcher records calls and serves a fixed entry list.
type countingFetcher struct {
	calls   int
	entries []pourbaix.Entry
	err     error
}

func (f *countingFetcher) PourbaixEntries(ctx context.Context, element string) ([]pourbaix.Entry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func ironEntries() []pourbaix.Entry {
	return []pourbaix.Entry{
		{
			EntryID:     "mp-13",
			Name:        "Fe(s)",
			Composition: map[string]float64{"Fe": 1},
			Phase:       pourbaix.PhaseSolid,
		},
	}
}

func TestEnsure_FetchesWhenMissing(t *testing.T) {
	// --- Arrange ---
	store := entrystore.New(t.TempDir())
	fetcher := &countingFetcher{entries: ironEntries()}
	c := New(store, fetcher)

	// --- Act ---
	err := c.Ensure(context.Background(), "Fe")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)

	// The file is on disk and decodes back to the fetched collection.
	got, err := store.Load("Fe")
	require.NoError(t, err)
	assert.Equal(t, ironEntries(), got)
}

func TestEnsure_SkipsWhenPresent(t *testing.T) {
	// --- Arrange ---
	store := entrystore.New(t.TempDir())
	require.NoError(t, store.Save("Fe", ironEntries()))

	before, err := os.ReadFile(store.Path("Fe"))
	require.NoError(t, err)

	fetcher := &countingFetcher{entries: nil}
	c := New(store, fetcher)

	// --- Act ---
	err = c.Ensure(context.Background(), "Fe")

	// --- Assert ---
	require.NoError(t, err)
	assert.Zero(t, fetcher.calls, "a present file must suppress the fetch")

	after, readErr := os.ReadFile(store.Path("Fe"))
	require.NoError(t, readErr)
	assert.Equal(t, before, after, "the cached file must be left untouched")
}

func TestEnsure_FetchFailureLeavesNoFile(t *testing.T) {
	store := entrystore.New(t.TempDir())
	fetcher := &countingFetcher{err: errors.New("network unreachable")}
	c := New(store, fetcher)

	err := c.Ensure(context.Background(), "Fe")
	require.ErrorContains(t, err, "failed to fill cache for Fe")

	exists, err := store.Exists("Fe")
	require.NoError(t, err)
	assert.False(t, exists)
}
