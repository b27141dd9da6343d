package index

import (
	"encoding/binary"
	"math"

	"github.com/gcbaptista/go-posting-index/internal/errors"
)

// Posting lists persist as a fixed-width binary value: an 8-byte little-endian
// unsigned count followed by one 8-byte little-endian integer per document id,
// in list order. The codec never sorts; callers hand it an already-ascending
// list. No compression, no varints, and the layout is private to this process.

const idWidth = 8

// EncodePostings serializes list into a fresh byte buffer. An empty (or nil)
// list encodes to just the zeroed length field.
func EncodePostings(list PostingList) []byte {
	buf := make([]byte, idWidth+len(list)*idWidth)
	binary.LittleEndian.PutUint64(buf[0:idWidth], uint64(len(list)))
	for i, id := range list {
		binary.LittleEndian.PutUint64(buf[idWidth+i*idWidth:], uint64(id))
	}
	return buf
}

// DecodePostings is the exact inverse of EncodePostings. It returns a
// CorruptDataError when buf is shorter than the length field, or shorter than
// the payload the length field declares.
func DecodePostings(buf []byte) (PostingList, error) {
	if len(buf) < idWidth {
		return nil, errors.NewCorruptDataError(idWidth, len(buf))
	}
	n := binary.LittleEndian.Uint64(buf[0:idWidth])
	if uint64(len(buf)-idWidth)/idWidth < n {
		// Clamp the declared size so an absurd count cannot wrap int in the
		// error report.
		need := math.MaxInt
		if n < uint64(math.MaxInt/idWidth) {
			need = idWidth + int(n)*idWidth
		}
		return nil, errors.NewCorruptDataError(need, len(buf))
	}
	list := make(PostingList, n)
	for i := range list {
		list[i] = DocID(binary.LittleEndian.Uint64(buf[idWidth+i*idWidth:]))
	}
	return list, nil
}
