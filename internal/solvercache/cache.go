package solvercache

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"
)

// Cache wraps a BadgerDB instance keyed by a puzzle's shape-text hash
// (the same hash internal/assemblybook uses), storing whatever opaque
// payload the caller supplies — the solver package owns encoding its own
// Solution/outcome into bytes; this package just persists them.
type Cache struct {
	db *badger.DB
}

// Open opens (creating if needed) the solve cache at the platform data
// directory.
func Open() (*Cache, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dir)
}

// OpenAt opens the cache at an explicit directory, useful for tests.
func OpenAt(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func keyBytes(key uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, key)
	return b
}

// Get looks up the payload stored for key. ok is false on a cache miss;
// a nil Cache always misses.
func (c *Cache) Get(key uint64) (value []byte, ok bool, err error) {
	if c == nil {
		return nil, false, nil
	}

	err = c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyBytes(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		ok = true
		return item.Value(func(val []byte) error {
			value = append([]byte(nil), val...)
			return nil
		})
	})
	return value, ok, err
}

// Put stores payload under key, overwriting any prior value. A nil Cache
// silently no-ops, matching the nil-safety of the teacher's book.Probe.
func (c *Cache) Put(key uint64, payload []byte) error {
	if c == nil {
		return nil
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyBytes(key), payload)
	})
}
