package entrystore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/karelplanken/pourbaix/internal/pourbaix"
)

// Store persists the fetched entries of each element as one JSON file per
// element inside a single directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir. The directory is created lazily on the
// first save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the cache file path for one element.
func (s *Store) Path(element string) string {
	return filepath.Join(s.dir, element+".json")
}

// Exists reports whether a cache file for the element is present. Presence is
// the only freshness signal the store knows about.
func (s *Store) Exists(element string) (bool, error) {
	_, err := os.Stat(s.Path(element))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat cache file for %s: %w", element, err)
}

// Save writes the entries of one element, replacing any previous file.
func (s *Store) Save(element string, entries []pourbaix.Entry) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode entries for %s: %w", element, err)
	}

	if err := os.WriteFile(s.Path(element), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file for %s: %w", element, err)
	}
	return nil
}

// Load reads and decodes the entries of one element.
func (s *Store) Load(element string) ([]pourbaix.Entry, error) {
	data, err := os.ReadFile(s.Path(element))
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file for %s: %w", element, err)
	}

	var entries []pourbaix.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode cache file for %s: %w", element, err)
	}
	return entries, nil
}
