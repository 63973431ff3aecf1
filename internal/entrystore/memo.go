package entrystore

import (
	"sync"

	"github.com/karelplanken/pourbaix/internal/pourbaix"
)

// Loader loads the cached entries of one element.
type Loader interface {
	Load(element string) ([]pourbaix.Entry, error)
}

// Memo wraps a Loader and remembers successful loads, so a run producing
// several diagrams reads each element file from disk once. Failed loads are
// not remembered and will be retried.
type Memo struct {
	loader Loader
	loaded sync.Map // Key: element symbol, Value: []pourbaix.Entry
}

// NewMemo returns a memoizing wrapper around the given loader.
func NewMemo(loader Loader) *Memo {
	return &Memo{loader: loader}
}

// Load returns the entries for the element, fetching them from the underlying
// loader on the first call.
func (m *Memo) Load(element string) ([]pourbaix.Entry, error) {
	if cached, ok := m.loaded.Load(element); ok {
		return cached.([]pourbaix.Entry), nil
	}

	entries, err := m.loader.Load(element)
	if err != nil {
		return nil, err
	}
	m.loaded.Store(element, entries)
	return entries, nil
}
