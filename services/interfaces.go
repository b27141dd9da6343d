package services

import (
	"time"

	"github.com/gcbaptista/go-posting-index/index"
)

// TermIndexer defines operations for adding terms to an index and reading
// posting lists back.
type TermIndexer interface {
	// AddTerm records that docID contains term. Idempotent per (docID, term).
	AddTerm(docID index.DocID, term string) error

	// DocVector returns the ascending, duplicate-free posting list for term.
	// The bool is false for a term that was never added.
	DocVector(term string) (index.PostingList, bool, error)

	// HasTerm reports whether term was ever added.
	HasTerm(term string) (bool, error)
}

// IndexAccessor is the per-index surface handed out by the engine.
type IndexAccessor interface {
	TermIndexer
	Settings() IndexSettings
}

// IndexSettings describes one named index.
type IndexSettings struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// IndexManager manages the lifecycle of indexes.
type IndexManager interface {
	CreateIndex(name string) error
	GetIndex(name string) (IndexAccessor, error)
	DeleteIndex(name string) error
	ListIndexes() []string
}
