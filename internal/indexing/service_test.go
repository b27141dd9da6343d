package indexing

import (
	"errors"
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"github.com/gcbaptista/go-posting-index/index"
	indexerrors "github.com/gcbaptista/go-posting-index/internal/errors"
	"github.com/gcbaptista/go-posting-index/store"
)

func newTestService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()
	kv := store.NewMemoryStore()
	s, err := NewService(kv)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return s, kv
}

func mustDocVector(t *testing.T, s *Service, term string) index.PostingList {
	t.Helper()
	list, found, err := s.DocVector(term)
	if err != nil {
		t.Fatalf("DocVector(%q) error = %v", term, err)
	}
	if !found {
		t.Fatalf("DocVector(%q) not found", term)
	}
	return list
}

func TestNewService(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Error("NewService(nil) expected error, got nil")
	}
}

func TestAddTermAndDocVector(t *testing.T) {
	s, _ := newTestService(t)

	// The classic walk-through: ids arrive out of order per term.
	inserts := []struct {
		id   index.DocID
		term string
	}{
		{0, "dog"}, {0, "cat"}, {1, "cat"}, {1, "mouse"}, {1, "house"},
		{2, "cat"}, {2, "dog"}, {2, "tree"}, {1, "tree"},
	}
	for _, in := range inserts {
		if err := s.AddTerm(in.id, in.term); err != nil {
			t.Fatalf("AddTerm(%d, %q) error = %v", in.id, in.term, err)
		}
	}

	want := map[string]index.PostingList{
		"cat":   {0, 1, 2},
		"mouse": {1},
		"dog":   {0, 2},
		"house": {1},
		"tree":  {1, 2},
	}
	for term, wantList := range want {
		got := mustDocVector(t, s, term)
		if !reflect.DeepEqual(got, wantList) {
			t.Errorf("DocVector(%q) = %v, want %v", term, got, wantList)
		}
	}
}

func TestAddTermIdempotent(t *testing.T) {
	s, _ := newTestService(t)

	for i := 0; i < 3; i++ {
		if err := s.AddTerm(7, "repeat"); err != nil {
			t.Fatalf("AddTerm() error = %v", err)
		}
	}

	got := mustDocVector(t, s, "repeat")
	if !reflect.DeepEqual(got, index.PostingList{7}) {
		t.Errorf("DocVector(repeat) = %v, want [7]", got)
	}
}

func TestAddTermOrderIndependence(t *testing.T) {
	ids := []index.DocID{9, 1, 30, 4, 17, 2, 25}
	want := index.PostingList{1, 2, 4, 9, 17, 25, 30}

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 10; trial++ {
		s, _ := newTestService(t)

		perm := rng.Perm(len(ids))
		for _, i := range perm {
			if err := s.AddTerm(ids[i], "word"); err != nil {
				t.Fatalf("AddTerm() error = %v", err)
			}
		}

		got := mustDocVector(t, s, "word")
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("permutation %v: DocVector = %v, want %v", perm, got, want)
		}
	}
}

func TestAddTermConcurrentWriters(t *testing.T) {
	s, _ := newTestService(t)

	// Without serialization, concurrent read-modify-write cycles on the same
	// term would drop ids. Every writer must land.
	const writers = 64
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(id index.DocID) {
			defer wg.Done()
			errs <- s.AddTerm(id, "busy")
		}(index.DocID(i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("AddTerm() error = %v", err)
		}
	}

	got := mustDocVector(t, s, "busy")
	if len(got) != writers {
		t.Fatalf("DocVector(busy) has %d ids, want %d", len(got), writers)
	}
	for i, id := range got {
		if id != index.DocID(i) {
			t.Errorf("DocVector(busy)[%d] = %d, want %d", i, id, i)
		}
	}
}

func TestDocVectorAbsentTerm(t *testing.T) {
	s, _ := newTestService(t)

	list, found, err := s.DocVector("never-added")
	if err != nil {
		t.Fatalf("DocVector() error = %v", err)
	}
	if found {
		t.Error("DocVector() found = true for absent term")
	}
	if list != nil {
		t.Errorf("DocVector() = %v for absent term, want nil", list)
	}
}

func TestDocVectorReturnsCopy(t *testing.T) {
	s, _ := newTestService(t)
	if err := s.AddTerm(1, "stable"); err != nil {
		t.Fatalf("AddTerm() error = %v", err)
	}

	got := mustDocVector(t, s, "stable")
	got[0] = 99

	again := mustDocVector(t, s, "stable")
	if !reflect.DeepEqual(again, index.PostingList{1}) {
		t.Errorf("stored postings changed through a returned list: %v", again)
	}
}

func TestHasTerm(t *testing.T) {
	s, _ := newTestService(t)
	if err := s.AddTerm(1, "present"); err != nil {
		t.Fatalf("AddTerm() error = %v", err)
	}

	found, err := s.HasTerm("present")
	if err != nil || !found {
		t.Errorf("HasTerm(present) = %v, %v, want true, nil", found, err)
	}
	found, err = s.HasTerm("absent")
	if err != nil || found {
		t.Errorf("HasTerm(absent) = %v, %v, want false, nil", found, err)
	}
}

func TestCorruptPostingsSurface(t *testing.T) {
	s, kv := newTestService(t)

	// Plant a value shorter than its declared length.
	if err := kv.Put([]byte("broken"), []byte{3, 0, 0, 0, 0, 0, 0, 0, 1}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if _, _, err := s.DocVector("broken"); !errors.Is(err, indexerrors.ErrCorruptData) {
		t.Errorf("DocVector() error = %v, want ErrCorruptData", err)
	}
	if err := s.AddTerm(1, "broken"); !errors.Is(err, indexerrors.ErrCorruptData) {
		t.Errorf("AddTerm() error = %v, want ErrCorruptData", err)
	}
}

// countingStore wraps a Store and counts reads and writes.
type countingStore struct {
	store.Store
	gets int
	puts int
}

func (c *countingStore) Get(key []byte) ([]byte, error) {
	c.gets++
	return c.Store.Get(key)
}

func (c *countingStore) Put(key, value []byte) error {
	c.puts++
	return c.Store.Put(key, value)
}

func TestAddTermStoreTraffic(t *testing.T) {
	kv := &countingStore{Store: store.NewMemoryStore()}
	s, err := NewService(kv)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	// New term: one read (miss) and one write.
	if err := s.AddTerm(1, "traffic"); err != nil {
		t.Fatalf("AddTerm() error = %v", err)
	}
	if kv.gets != 1 || kv.puts != 1 {
		t.Errorf("new term: gets=%d puts=%d, want 1/1", kv.gets, kv.puts)
	}

	// Duplicate add: the read still happens, but no write.
	kv.gets, kv.puts = 0, 0
	if err := s.AddTerm(1, "traffic"); err != nil {
		t.Fatalf("AddTerm() error = %v", err)
	}
	if kv.gets != 1 || kv.puts != 0 {
		t.Errorf("duplicate add: gets=%d puts=%d, want 1/0", kv.gets, kv.puts)
	}
}

// failingStore always errors, simulating an unavailable backend.
type failingStore struct{ err error }

func (f *failingStore) Put(key, value []byte) error    { return f.err }
func (f *failingStore) Get(key []byte) ([]byte, error) { return nil, f.err }
func (f *failingStore) Has(key []byte) (bool, error)   { return false, f.err }

func TestStoreErrorsPropagate(t *testing.T) {
	s, err := NewService(&failingStore{err: indexerrors.ErrStoreUnavailable})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	if err := s.AddTerm(1, "x"); !errors.Is(err, indexerrors.ErrStoreUnavailable) {
		t.Errorf("AddTerm() error = %v, want ErrStoreUnavailable", err)
	}
	if _, _, err := s.DocVector("x"); !errors.Is(err, indexerrors.ErrStoreUnavailable) {
		t.Errorf("DocVector() error = %v, want ErrStoreUnavailable", err)
	}
	if _, err := s.HasTerm("x"); !errors.Is(err, indexerrors.ErrStoreUnavailable) {
		t.Errorf("HasTerm() error = %v, want ErrStoreUnavailable", err)
	}
}
