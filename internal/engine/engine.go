package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.etcd.io/bbolt"

	"github.com/gcbaptista/go-posting-index/config"
	indexerrors "github.com/gcbaptista/go-posting-index/internal/errors"
	"github.com/gcbaptista/go-posting-index/internal/persistence"
	"github.com/gcbaptista/go-posting-index/services"
	"github.com/gcbaptista/go-posting-index/store"
)

const (
	dataDirPerm  = 0755
	settingsFile = "settings.gob"
	boltDBFile   = "postings.db"
)

// Engine manages multiple named posting indexes over a shared store backend.
// It implements the services.IndexManager interface.
//
// Each index gets its own namespace in the backend: a fresh map for the memory
// backend, a bucket for bolt, a key prefix for redis. Index settings are
// written as gob files under the data directory so indexes are rediscovered on
// restart; with the memory backend the postings themselves do not survive
// process exit, matching the reference behavior.
type Engine struct {
	mu      sync.RWMutex
	indexes map[string]*IndexInstance
	cfg     config.Config

	bdb *bbolt.DB     // set when the backend is bolt
	rdb *redis.Client // set when the backend is redis
}

// NewEngine creates a new engine on the configured backend and reloads any
// indexes whose settings are found in the data directory.
func NewEngine(cfg config.Config) (*Engine, error) {
	eng := &Engine{
		indexes: make(map[string]*IndexInstance),
		cfg:     cfg,
	}

	if err := os.MkdirAll(cfg.Store.DataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.Store.DataDir, err)
	}

	switch cfg.Store.Backend {
	case config.BackendBolt:
		bdb, err := store.OpenBolt(filepath.Join(cfg.Store.DataDir, boltDBFile))
		if err != nil {
			return nil, err
		}
		eng.bdb = bdb
	case config.BackendRedis:
		rdb, err := store.NewRedisClient(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB)
		if err != nil {
			return nil, err
		}
		eng.rdb = rdb
	}

	if err := eng.loadIndexesFromDisk(); err != nil {
		eng.Close()
		return nil, err
	}
	return eng, nil
}

// Close releases the backend resources. Safe to call once, after which the
// engine must not be used.
func (e *Engine) Close() {
	if e.bdb != nil {
		if err := e.bdb.Close(); err != nil {
			log.Printf("Warning: failed to close bolt database: %v", err)
		}
	}
	if e.rdb != nil {
		if err := e.rdb.Close(); err != nil {
			log.Printf("Warning: failed to close redis client: %v", err)
		}
	}
}

func (e *Engine) loadIndexesFromDisk() error {
	items, err := os.ReadDir(e.cfg.Store.DataDir)
	if err != nil {
		return fmt.Errorf("failed to read data directory %s: %w", e.cfg.Store.DataDir, err)
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		indexName := item.Name()
		settingsPath := filepath.Join(e.cfg.Store.DataDir, indexName, settingsFile)

		var settings services.IndexSettings
		if err := persistence.LoadGob(settingsPath, &settings); err != nil {
			log.Printf("Warning: failed to load settings for index %s from %s: %v. Skipping this index.", indexName, settingsPath, err)
			continue
		}
		if settings.Name != indexName {
			log.Printf("Warning: index name in settings ('%s') does not match directory name ('%s'). Skipping this index.", settings.Name, indexName)
			continue
		}

		kv, err := e.newStore(indexName)
		if err != nil {
			log.Printf("Warning: failed to open store for index %s: %v. Skipping this index.", indexName, err)
			continue
		}
		instance, err := NewIndexInstance(settings, kv)
		if err != nil {
			log.Printf("Warning: failed to initialize index %s: %v. Skipping this index.", indexName, err)
			continue
		}
		e.indexes[indexName] = instance
		log.Printf("Loaded index: %s", indexName)
	}
	return nil
}

// newStore creates the key-value namespace for one index on the configured
// backend.
func (e *Engine) newStore(indexName string) (store.Store, error) {
	switch e.cfg.Store.Backend {
	case config.BackendBolt:
		return store.NewBoltStore(e.bdb, indexName)
	case config.BackendRedis:
		return store.NewRedisStore(e.rdb, "idx:"+indexName+":"), nil
	default:
		return store.NewMemoryStore(), nil
	}
}

// CreateIndex creates a new empty index with the given name and persists its
// settings.
func (e *Engine) CreateIndex(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if name == "" {
		return indexerrors.NewValidationError("name", "index name cannot be empty")
	}
	if _, exists := e.indexes[name]; exists {
		return indexerrors.NewIndexAlreadyExistsError(name)
	}

	kv, err := e.newStore(name)
	if err != nil {
		return fmt.Errorf("failed to create store for index '%s': %w", name, err)
	}

	settings := services.IndexSettings{Name: name, CreatedAt: time.Now().UTC()}
	instance, err := NewIndexInstance(settings, kv)
	if err != nil {
		return fmt.Errorf("failed to create index instance for '%s': %w", name, err)
	}

	settingsPath := filepath.Join(e.cfg.Store.DataDir, name, settingsFile)
	if err := persistence.SaveGob(settingsPath, settings); err != nil {
		return fmt.Errorf("failed to save settings for index '%s': %w", name, err)
	}

	e.indexes[name] = instance
	log.Printf("Index '%s' created.", name)
	return nil
}

// GetIndex retrieves an index by its name.
func (e *Engine) GetIndex(name string) (services.IndexAccessor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.indexes[name]
	if !exists {
		return nil, indexerrors.NewIndexNotFoundError(name)
	}
	return instance, nil
}

// DeleteIndex removes an index: its in-memory instance, its store namespace,
// and its settings directory.
func (e *Engine) DeleteIndex(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.indexes[name]
	if !exists {
		return indexerrors.NewIndexNotFoundError(name)
	}
	delete(e.indexes, name)

	if err := instance.dropStore(); err != nil {
		return fmt.Errorf("failed to drop store for index '%s': %w", name, err)
	}
	indexPath := filepath.Join(e.cfg.Store.DataDir, name)
	if err := os.RemoveAll(indexPath); err != nil {
		return fmt.Errorf("failed to delete index data directory %s: %w", indexPath, err)
	}
	log.Printf("Index '%s' deleted.", name)
	return nil
}

// ListIndexes returns the names of all existing indexes.
func (e *Engine) ListIndexes() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.indexes))
	for name := range e.indexes {
		names = append(names, name)
	}
	return names
}
