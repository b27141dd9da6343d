// Package store defines the key-value storage abstraction that posting lists
// persist into, plus the backends that implement it. The inverted index only
// ever sees the Store interface, so backends are interchangeable: an in-memory
// map that forgets everything on exit, a bbolt bucket, or a Redis namespace.
package store

import "errors"

// ErrKeyNotFound is returned by Get for a key that was never put. Callers that
// need to distinguish "absent" from "present but empty" check this error (or
// call Has) rather than relying on a silent empty value.
var ErrKeyNotFound = errors.New("store: key not found")

// Store is opaque byte-string storage. Implementations must provide
// read-after-write visibility: a Get following a successful Put observes that
// Put. Keys are never evicted implicitly, so Has is monotonic once true.
type Store interface {
	// Put upserts value under key, overwriting any existing value.
	Put(key, value []byte) error

	// Get returns the most recently put value for key, or ErrKeyNotFound.
	Get(key []byte) ([]byte, error)

	// Has reports whether an entry for key exists.
	Has(key []byte) (bool, error)
}

// Dropper is implemented by stores that can delete their entire namespace.
// The engine uses it when an index is deleted.
type Dropper interface {
	Drop() error
}
