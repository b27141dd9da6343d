package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestBoltStore(t *testing.T, bucket string) *BoltStore {
	t.Helper()
	db, err := OpenBolt(filepath.Join(t.TempDir(), "postings.db"))
	require.NoError(t, err, "failed to open bolt database")
	t.Cleanup(func() { _ = db.Close() })

	kv, err := NewBoltStore(db, bucket)
	require.NoError(t, err, "failed to create bolt store")
	return kv
}

func TestBoltStoreContract(t *testing.T) {
	storeContract(t, newTestBoltStore(t, "contract"))
}

func TestBoltStoreBucketIsolation(t *testing.T) {
	db, err := OpenBolt(filepath.Join(t.TempDir(), "postings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	a, err := NewBoltStore(db, "index-a")
	require.NoError(t, err)
	b, err := NewBoltStore(db, "index-b")
	require.NoError(t, err)

	require.NoError(t, a.Put([]byte("term"), []byte("a-value")))
	require.NoError(t, b.Put([]byte("term"), []byte("b-value")))

	got, err := a.Get([]byte("term"))
	require.NoError(t, err)
	require.Equal(t, "a-value", string(got))

	// Dropping one bucket leaves the other untouched.
	require.NoError(t, a.Drop())
	_, err = b.Get([]byte("term"))
	require.NoError(t, err)
}

func TestBoltStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "postings.db")

	db, err := OpenBolt(path)
	require.NoError(t, err)
	kv, err := NewBoltStore(db, "idx")
	require.NoError(t, err)
	require.NoError(t, kv.Put([]byte("cat"), []byte{1, 2, 3}))
	require.NoError(t, db.Close())

	db, err = OpenBolt(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	kv, err = NewBoltStore(db, "idx")
	require.NoError(t, err)

	got, err := kv.Get([]byte("cat"))
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, got)
}

func TestBoltStoreDropThenRecreate(t *testing.T) {
	db, err := OpenBolt(filepath.Join(t.TempDir(), "postings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	kv, err := NewBoltStore(db, "idx")
	require.NoError(t, err)
	require.NoError(t, kv.Put([]byte("k"), []byte("v")))
	require.NoError(t, kv.Drop())

	// A dropped namespace can be recreated empty.
	kv, err = NewBoltStore(db, "idx")
	require.NoError(t, err)
	_, err = kv.Get([]byte("k"))
	require.True(t, errors.Is(err, ErrKeyNotFound), "expected ErrKeyNotFound, got %v", err)
}
