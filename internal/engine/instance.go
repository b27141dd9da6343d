package engine

import (
	"fmt"

	"github.com/gcbaptista/go-posting-index/index"
	"github.com/gcbaptista/go-posting-index/internal/indexing"
	"github.com/gcbaptista/go-posting-index/services"
	"github.com/gcbaptista/go-posting-index/store"
)

// IndexInstance holds the components of a single named index: its settings,
// its key-value namespace, and the indexing service that operates on it.
// It implements the services.IndexAccessor interface.
type IndexInstance struct {
	settings services.IndexSettings
	kv       store.Store
	indexer  *indexing.Service
}

// NewIndexInstance creates and initializes a new IndexInstance over kv.
func NewIndexInstance(settings services.IndexSettings, kv store.Store) (*IndexInstance, error) {
	if settings.Name == "" {
		return nil, fmt.Errorf("index name cannot be empty in settings")
	}
	indexer, err := indexing.NewService(kv)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexer service: %w", err)
	}
	return &IndexInstance{
		settings: settings,
		kv:       kv,
		indexer:  indexer,
	}, nil
}

// AddTerm delegates to the underlying indexing service.
func (i *IndexInstance) AddTerm(docID index.DocID, term string) error {
	return i.indexer.AddTerm(docID, term)
}

// DocVector delegates to the underlying indexing service.
func (i *IndexInstance) DocVector(term string) (index.PostingList, bool, error) {
	return i.indexer.DocVector(term)
}

// HasTerm delegates to the underlying indexing service.
func (i *IndexInstance) HasTerm(term string) (bool, error) {
	return i.indexer.HasTerm(term)
}

// Settings returns a copy of this index's settings.
func (i *IndexInstance) Settings() services.IndexSettings {
	return i.settings
}

// dropStore deletes the index's key-value namespace if the backend supports it.
func (i *IndexInstance) dropStore() error {
	if dropper, ok := i.kv.(store.Dropper); ok {
		return dropper.Drop()
	}
	return nil
}
