package index

import "sort"

// DocID is an opaque 64-bit document identifier. Document identity and content
// live entirely outside this engine.
type DocID uint64

// PostingList is the sequence of document ids associated with a term.
// Invariant: strictly ascending, which also guarantees uniqueness. The list is
// maintained incrementally at every insertion; there is no batch re-sort.
type PostingList []DocID

// Contains reports whether the list holds id. The list must be sorted.
func (pl PostingList) Contains(id DocID) bool {
	i := sort.Search(len(pl), func(i int) bool { return pl[i] >= id })
	return i < len(pl) && pl[i] == id
}

// Insert returns the list with id added at its lower-bound position, keeping
// the list strictly ascending. The second return value is false when id was
// already present and the list is returned unchanged.
func (pl PostingList) Insert(id DocID) (PostingList, bool) {
	i := sort.Search(len(pl), func(i int) bool { return pl[i] >= id })
	if i < len(pl) && pl[i] == id {
		return pl, false
	}
	pl = append(pl, 0)
	copy(pl[i+1:], pl[i:])
	pl[i] = id
	return pl, true
}

// Clone returns an independent copy of the list.
func (pl PostingList) Clone() PostingList {
	if pl == nil {
		return nil
	}
	out := make(PostingList, len(pl))
	copy(out, pl)
	return out
}
