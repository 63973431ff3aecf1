// Package entrystore persists fetched entries on the local filesystem, one
// JSON file per element.
//
// # Layout
//
// A Store owns a flat directory of <Element>.json files, each holding the
// JSON array of entries exactly as fetched. The file name is derived from the
// element symbol, so two runs asking for the same element share one file.
//
// # Freshness
//
// The store deliberately has no notion of staleness: a file that exists is
// considered current, and refreshing means deleting the file by hand. This
// matches how the data behaves in practice, since the thermodynamic entries
// for an element change only when the upstream database republishes them.
//
// The Memo wrapper adds an in-process, thread-safe cache over Load using
// sync.Map, so building several diagrams in one run decodes each file once.
package entrystore
