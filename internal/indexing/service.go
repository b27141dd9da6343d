package indexing

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gcbaptista/go-posting-index/index"
	"github.com/gcbaptista/go-posting-index/store"
)

// Service implements the term indexing logic for a single index over an
// injected key-value store. It fulfills the services.TermIndexer interface.
//
// A term's lifecycle only ever moves forward: absent, then present with a
// growing posting list. There is no API to remove a term or a document id.
type Service struct {
	kv store.Store

	// mu serializes the read-decode-mutate-encode-write sequence in AddTerm.
	// Without it two concurrent writers of the same term would each read the
	// old list and the second write would drop the first writer's id.
	mu sync.RWMutex
}

// NewService creates a new indexing Service over the given store.
func NewService(kv store.Store) (*Service, error) {
	if kv == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	return &Service{kv: kv}, nil
}

// AddTerm records that the document identified by docID contains term. The
// term's posting list stays strictly ascending and duplicate-free; adding the
// same (docID, term) pair again is a no-op. Every call performs at most one
// store read and at most one store write.
func (s *Service) AddTerm(docID index.DocID, term string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := []byte(term)
	existing, err := s.kv.Get(key)
	if errors.Is(err, store.ErrKeyNotFound) {
		// A brand-new term cannot already contain docID.
		return s.kv.Put(key, index.EncodePostings(index.PostingList{docID}))
	}
	if err != nil {
		return fmt.Errorf("failed to read postings for term '%s': %w", term, err)
	}

	list, err := index.DecodePostings(existing)
	if err != nil {
		return fmt.Errorf("failed to decode postings for term '%s': %w", term, err)
	}

	list, inserted := list.Insert(docID)
	if !inserted {
		return nil
	}
	return s.kv.Put(key, index.EncodePostings(list))
}

// DocVector returns the posting list for term: the set of all distinct doc ids
// ever added for it, in ascending order. The second return value is false for
// a term that was never added. The returned list is a decoded copy; mutating
// it does not affect stored state.
func (s *Service) DocVector(term string) (index.PostingList, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buf, err := s.kv.Get([]byte(term))
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read postings for term '%s': %w", term, err)
	}

	list, err := index.DecodePostings(buf)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode postings for term '%s': %w", term, err)
	}
	return list, true, nil
}

// HasTerm reports whether term was ever added to the index.
func (s *Service) HasTerm(term string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found, err := s.kv.Has([]byte(term))
	if err != nil {
		return false, fmt.Errorf("failed to check term '%s': %w", term, err)
	}
	return found, nil
}
