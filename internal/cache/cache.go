// Package cache fills the local entry store from the remote database on
// demand. Presence of a cache file is the only freshness criterion: an
// element that already has one is never refetched.
package cache

import (
	"context"
	"fmt"

	"github.com/karelplanken/pourbaix/internal/ctxlog"
	"github.com/karelplanken/pourbaix/internal/pourbaix"
)

// Fetcher retrieves the entries of one element from the remote database.
type Fetcher interface {
	PourbaixEntries(ctx context.Context, element string) ([]pourbaix.Entry, error)
}

// Store is the subset of the entry store the cache needs.
type Store interface {
	Exists(element string) (bool, error)
	Save(element string, entries []pourbaix.Entry) error
	Path(element string) string
}

// Cache pairs a store with a fetcher.
type Cache struct {
	store   Store
	fetcher Fetcher
}

// New returns a cache over the given store and fetcher.
func New(store Store, fetcher Fetcher) *Cache {
	return &Cache{store: store, fetcher: fetcher}
}

// Ensure guarantees a cache file exists for the element, fetching and saving
// it when absent. A fetch or save failure leaves no file behind.
func (c *Cache) Ensure(ctx context.Context, element string) error {
	logger := ctxlog.FromContext(ctx)

	exists, err := c.store.Exists(element)
	if err != nil {
		return err
	}
	if exists {
		logger.Debug("Cache file present, skipping fetch.", "element", element, "path", c.store.Path(element))
		return nil
	}

	logger.Info("Fetching entries from the materials database.", "element", element)
	entries, err := c.fetcher.PourbaixEntries(ctx, element)
	if err != nil {
		return fmt.Errorf("failed to fill cache for %s: %w", element, err)
	}

	if err := c.store.Save(element, entries); err != nil {
		return err
	}

	logger.Info("Cached entries.", "element", element, "count", len(entries), "path", c.store.Path(element))
	return nil
}
