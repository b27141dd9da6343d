package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gcbaptista/go-posting-index/internal/errors"
)

const redisOpTimeout = 5 * time.Second

// RedisStore is a Store backed by a key prefix in a shared Redis database.
// Entries are written without TTL; the index never expires postings.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisClient creates a Redis client and verifies the connection with a PING.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: redis ping failed: %v", errors.ErrStoreUnavailable, err)
	}
	return rdb, nil
}

// NewRedisStore binds a store to the given key prefix on an existing client.
// The *redis.Client is owned by the caller.
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (r *RedisStore) redisKey(key []byte) string {
	return r.prefix + string(key)
}

// Put upserts value under key.
func (r *RedisStore) Put(key, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := r.rdb.Set(ctx, r.redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", errors.ErrStoreUnavailable, err)
	}
	return nil
}

// Get returns the value for key, or ErrKeyNotFound.
func (r *RedisStore) Get(key []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	v, err := r.rdb.Get(ctx, r.redisKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis get: %v", errors.ErrStoreUnavailable, err)
	}
	return v, nil
}

// Has reports whether key exists.
func (r *RedisStore) Has(key []byte) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	n, err := r.rdb.Exists(ctx, r.redisKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: redis exists: %v", errors.ErrStoreUnavailable, err)
	}
	return n > 0, nil
}

// Drop scans for every key under the store's prefix and deletes it.
func (r *RedisStore) Drop() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	iter := r.rdb.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("%w: redis del %s: %v", errors.ErrStoreUnavailable, iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: redis scan: %v", errors.ErrStoreUnavailable, err)
	}
	return nil
}
