package store

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/gcbaptista/go-posting-index/internal/errors"
)

// BoltStore is a Store backed by one bucket of a shared bbolt database. Each
// index owns a bucket, so deleting an index never touches another index's
// postings. The *bbolt.DB is owned by the caller (the engine opens and closes
// one database file for all indexes).
type BoltStore struct {
	db     *bbolt.DB
	bucket []byte
}

// OpenBolt opens (or creates) the bbolt database file at path.
func OpenBolt(path string) (*bbolt.DB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database %s: %w", path, err)
	}
	return db, nil
}

// NewBoltStore binds a store to the named bucket, creating the bucket if it
// does not exist yet.
func NewBoltStore(db *bbolt.DB, bucket string) (*BoltStore, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create bucket '%s': %v", errors.ErrStoreUnavailable, bucket, err)
	}
	return &BoltStore{db: db, bucket: []byte(bucket)}, nil
}

// Put upserts value under key inside the store's bucket.
func (b *BoltStore) Put(key, value []byte) error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(b.bucket).Put(key, value)
	})
	if err != nil {
		return fmt.Errorf("%w: bolt put: %v", errors.ErrStoreUnavailable, err)
	}
	return nil
}

// Get returns a copy of the value for key, or ErrKeyNotFound. The copy is
// required because bbolt values are only valid inside the transaction.
func (b *BoltStore) Get(key []byte) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(b.bucket).Get(key)
		if v == nil {
			return ErrKeyNotFound
		}
		out = make([]byte, len(v))
		copy(out, v)
		return nil
	})
	if err == ErrKeyNotFound {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: bolt get: %v", errors.ErrStoreUnavailable, err)
	}
	return out, nil
}

// Has reports whether key exists in the store's bucket.
func (b *BoltStore) Has(key []byte) (bool, error) {
	var found bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(b.bucket).Get(key) != nil
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: bolt has: %v", errors.ErrStoreUnavailable, err)
	}
	return found, nil
}

// Drop deletes the store's bucket and everything in it.
func (b *BoltStore) Drop() error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(b.bucket)
	})
	if err != nil && err != bbolt.ErrBucketNotFound {
		return fmt.Errorf("%w: bolt drop: %v", errors.ErrStoreUnavailable, err)
	}
	return nil
}
